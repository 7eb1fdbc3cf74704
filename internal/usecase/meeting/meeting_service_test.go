package meeting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/crm-backend/internal/adapter/repository"
	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/infrastructure/cache"
	"github.com/johnquangdev/crm-backend/internal/infrastructure/mail"
	usecaseErrors "github.com/johnquangdev/crm-backend/internal/usecase/errors"
	"github.com/johnquangdev/crm-backend/internal/usecase/notification"
)

type recordingSender struct {
	messages []*mail.Message
}

func (r *recordingSender) Send(_ context.Context, msg *mail.Message) error {
	r.messages = append(r.messages, msg)
	return nil
}

func (r *recordingSender) last(t *testing.T) *mail.Message {
	t.Helper()
	if len(r.messages) == 0 {
		t.Fatal("no message sent")
	}
	return r.messages[len(r.messages)-1]
}

type harness struct {
	db      *gorm.DB
	service *MeetingService
	sender  *recordingSender
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Company{},
		&entities.Contact{},
		&entities.Deal{},
		&entities.Meeting{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	sender := &recordingSender{}
	dispatcher := notification.NewDispatcher(sender, repository.NewUserRepository(db), "crm@example.com", zap.NewNop())
	service := NewMeetingService(
		repository.NewMeetingRepository(db),
		repository.NewContactRepository(db),
		dispatcher,
		cache.NewMemoryStore(),
		zap.NewNop(),
	)

	return &harness{db: db, service: service, sender: sender}
}

func (h *harness) seedContact(t *testing.T, email string) entities.Contact {
	t.Helper()
	c := entities.Contact{FirstName: "Test", LastName: "Contact", Email: email}
	if err := h.db.Create(&c).Error; err != nil {
		t.Fatalf("failed to seed contact: %v", err)
	}
	return c
}

func validCreateInput(actorEmail string) CreateMeetingInput {
	return CreateMeetingInput{
		Title:       "Quarterly sync",
		DateTime:    time.Now().Add(24 * time.Hour),
		Duration:    60,
		MeetingType: entities.MeetingTypeVirtual,
		Status:      entities.MeetingStatusScheduled,
		ActorEmail:  actorEmail,
	}
}

func TestCreateMeetingIncludesCaller(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	a := h.seedContact(t, "a@example.com")
	b := h.seedContact(t, "b@example.com")
	caller := h.seedContact(t, "me@example.com")

	input := validCreateInput("me@example.com")
	input.ParticipantIDs = []uint{a.ID, b.ID}

	m, err := h.service.CreateMeeting(ctx, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := h.service.GetMeeting(ctx, m.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	ids := found.ParticipantIDs()
	if len(ids) != 3 {
		t.Fatalf("participants = %v, want caller included", ids)
	}
	hasCaller := false
	for _, id := range ids {
		if id == caller.ID {
			hasCaller = true
		}
	}
	if !hasCaller {
		t.Fatalf("caller contact %d missing from %v", caller.ID, ids)
	}

	msg := h.sender.last(t)
	if msg.Subject != "Meeting Created: Quarterly sync" {
		t.Fatalf("subject = %q", msg.Subject)
	}
	if len(msg.Recipients) != 3 {
		t.Fatalf("recipients = %v", msg.Recipients)
	}
}

func TestCreateMeetingCallerNotDuplicated(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	caller := h.seedContact(t, "me@example.com")

	input := validCreateInput("me@example.com")
	input.ParticipantIDs = []uint{caller.ID}

	m, err := h.service.CreateMeeting(ctx, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, _ := h.service.GetMeeting(ctx, m.ID)
	if ids := found.ParticipantIDs(); len(ids) != 1 {
		t.Fatalf("participants = %v, want exactly one entry", ids)
	}
}

func TestCreateMeetingValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	badType := validCreateInput("")
	badType.MeetingType = "seance"
	if _, err := h.service.CreateMeeting(ctx, badType); !errors.Is(err, usecaseErrors.ErrInvalidMeetingType) {
		t.Fatalf("got %v, want invalid meeting type", err)
	}

	badDuration := validCreateInput("")
	badDuration.Duration = 0
	if _, err := h.service.CreateMeeting(ctx, badDuration); !errors.Is(err, usecaseErrors.ErrInvalidDuration) {
		t.Fatalf("got %v, want invalid duration", err)
	}
}

func TestUpdateMeetingPatchLeavesOtherFields(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seedContact(t, "me@example.com")

	m, err := h.service.CreateMeeting(ctx, validCreateInput("me@example.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	originalTime := m.DateTime

	location := "Room 4"
	updated, err := h.service.UpdateMeeting(ctx, m.ID, UpdateMeetingInput{
		Location:   &location,
		ActorEmail: "me@example.com",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Location != "Room 4" {
		t.Fatalf("location = %q", updated.Location)
	}
	if !updated.DateTime.Equal(originalTime) {
		t.Fatalf("date_time changed by a location-only patch")
	}
	if updated.Title != "Quarterly sync" {
		t.Fatalf("title changed by a location-only patch")
	}

	msg := h.sender.last(t)
	if msg.Subject != "Meeting Updated: Quarterly sync" {
		t.Fatalf("subject = %q, want plain update notice", msg.Subject)
	}
}

func TestUpdateMeetingRescheduleNotifies(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seedContact(t, "me@example.com")

	m, err := h.service.CreateMeeting(ctx, validCreateInput("me@example.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newTime := m.DateTime.Add(48 * time.Hour)
	if _, err := h.service.UpdateMeeting(ctx, m.ID, UpdateMeetingInput{
		DateTime:   &newTime,
		ActorEmail: "me@example.com",
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	msg := h.sender.last(t)
	if msg.Subject != "Meeting Created: Quarterly sync" {
		t.Fatalf("subject = %q, want reschedule styled as created", msg.Subject)
	}
	if !strings.Contains(msg.Body, "rescheduled from") {
		t.Fatalf("body = %q, want reschedule phrasing", msg.Body)
	}
}

func TestUpdateMeetingClearsDealOnExplicitNull(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	company := entities.Company{Name: "Acme"}
	if err := h.db.Create(&company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	deal := entities.Deal{Title: "Pilot", Amount: 500, Stage: entities.DealStageLead, CompanyID: company.ID}
	if err := h.db.Create(&deal).Error; err != nil {
		t.Fatalf("seed deal: %v", err)
	}

	input := validCreateInput("")
	input.DealID = &deal.ID
	m, err := h.service.CreateMeeting(ctx, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := h.service.UpdateMeeting(ctx, m.ID, UpdateMeetingInput{
		DealSet: true,
		DealID:  nil,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.DealID != nil {
		t.Fatalf("deal = %v, want cleared", *updated.DealID)
	}

	found, _ := h.service.GetMeeting(ctx, m.ID)
	if found.DealID != nil {
		t.Fatal("cleared deal reference came back from the store")
	}
}

func TestUpdateMeetingRejectsIllegalTransition(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	input := validCreateInput("")
	input.Status = entities.MeetingStatusCompleted
	m, err := h.service.CreateMeeting(ctx, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	scheduled := entities.MeetingStatusScheduled
	if _, err := h.service.UpdateMeeting(ctx, m.ID, UpdateMeetingInput{Status: &scheduled}); !errors.Is(err, usecaseErrors.ErrInvalidTransition) {
		t.Fatalf("got %v, want invalid transition", err)
	}
}

func TestCancelMeetingIsSoftDelete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seedContact(t, "me@example.com")

	m, err := h.service.CreateMeeting(ctx, validCreateInput("me@example.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := h.service.CancelMeeting(ctx, m.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// The record survives with status cancelled.
	found, err := h.service.GetMeeting(ctx, m.ID)
	if err != nil {
		t.Fatalf("cancelled meeting must stay retrievable: %v", err)
	}
	if found.Status != entities.MeetingStatusCancelled {
		t.Fatalf("status = %s, want cancelled", found.Status)
	}

	msg := h.sender.last(t)
	if msg.Subject != "Meeting Cancelled: Quarterly sync" {
		t.Fatalf("subject = %q", msg.Subject)
	}
}

func TestCancelMeetingCompletedIsRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	input := validCreateInput("")
	input.Status = entities.MeetingStatusCompleted
	m, err := h.service.CreateMeeting(ctx, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := h.service.CancelMeeting(ctx, m.ID); !errors.Is(err, usecaseErrors.ErrInvalidTransition) {
		t.Fatalf("got %v, want invalid transition", err)
	}

	found, _ := h.service.GetMeeting(ctx, m.ID)
	if found.Status != entities.MeetingStatusCompleted {
		t.Fatalf("status = %s, completed must stay terminal", found.Status)
	}
}

func TestCancelMeetingTwiceNotifiesOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seedContact(t, "me@example.com")

	m, err := h.service.CreateMeeting(ctx, validCreateInput("me@example.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := h.service.CancelMeeting(ctx, m.ID); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	sentAfterFirst := len(h.sender.messages)

	if err := h.service.CancelMeeting(ctx, m.ID); err != nil {
		t.Fatalf("second cancel must be a no-op, got %v", err)
	}
	if len(h.sender.messages) != sentAfterFirst {
		t.Fatalf("second cancel re-sent the cancellation notice")
	}
}

func TestCancelMeetingNotFound(t *testing.T) {
	h := newHarness(t)
	if err := h.service.CancelMeeting(context.Background(), 9999); !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("got %v, want meeting not found", err)
	}
}

func TestTodayCount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	now := time.Date(2026, 7, 15, 11, 0, 0, 0, time.Local)
	h.service.now = func() time.Time { return now }

	seed := func(dt time.Time, status entities.MeetingStatus) {
		m := entities.Meeting{Title: "m", DateTime: dt, Duration: 30, MeetingType: entities.MeetingTypeVirtual, Status: status}
		if err := h.db.Create(&m).Error; err != nil {
			t.Fatalf("seed meeting: %v", err)
		}
	}
	seed(now.Add(2*time.Hour), entities.MeetingStatusScheduled)
	seed(now.Add(-3*time.Hour), entities.MeetingStatusScheduled)
	seed(now.Add(2*time.Hour), entities.MeetingStatusCancelled)
	seed(now.Add(26*time.Hour), entities.MeetingStatusScheduled)

	count, date, err := h.service.TodayCount(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if date != "2026-07-15" {
		t.Fatalf("date = %q", date)
	}

	// Second call is served from cache and stays consistent.
	again, _, err := h.service.TodayCount(ctx)
	if err != nil {
		t.Fatalf("cached count failed: %v", err)
	}
	if again != 2 {
		t.Fatalf("cached count = %d, want 2", again)
	}
}
