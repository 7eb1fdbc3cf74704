package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// foreign_keys is off by default in sqlite; without it the ON DELETE
	// behavior under test is silently skipped.
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get db handle: %v", err)
	}
	// Each sqlite connection gets its own in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&entities.Company{},
		&entities.Contact{},
		&entities.Deal{},
		&entities.Meeting{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func seedContacts(t *testing.T, db *gorm.DB, emails ...string) []entities.Contact {
	t.Helper()
	contacts := make([]entities.Contact, 0, len(emails))
	for i, email := range emails {
		c := entities.Contact{
			FirstName: "Contact",
			LastName:  string(rune('A' + i)),
			Email:     email,
		}
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("failed to seed contact: %v", err)
		}
		contacts = append(contacts, c)
	}
	return contacts
}

func TestMeetingCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	m := &entities.Meeting{
		Title:       "Kickoff",
		DateTime:    time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
		Duration:    30,
		MeetingType: entities.MeetingTypeVirtual,
		Status:      entities.MeetingStatusScheduled,
	}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if m.ID == 0 {
		t.Fatal("expected generated id")
	}

	found, err := repo.FindByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Title != "Kickoff" || found.Status != entities.MeetingStatusScheduled {
		t.Fatalf("unexpected meeting: %+v", found)
	}
}

func TestMeetingReplaceParticipants(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	contacts := seedContacts(t, db, "a@x.com", "b@x.com", "c@x.com")

	m := &entities.Meeting{
		Title:       "Sync",
		DateTime:    time.Now().Add(time.Hour),
		Duration:    30,
		MeetingType: entities.MeetingTypePhone,
		Status:      entities.MeetingStatusScheduled,
	}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.ReplaceParticipants(ctx, m, []uint{contacts[0].ID, contacts[1].ID}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	// Replace, not add.
	if err := repo.ReplaceParticipants(ctx, m, []uint{contacts[2].ID}); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}

	found, err := repo.FindByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	ids := found.ParticipantIDs()
	if len(ids) != 1 || ids[0] != contacts[2].ID {
		t.Fatalf("participants = %v, want [%d]", ids, contacts[2].ID)
	}
}

func TestMeetingListFiltersAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	company := entities.Company{Name: "Acme"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	deal := entities.Deal{Title: "Big deal", Amount: 1000, Stage: entities.DealStageLead, CompanyID: company.ID}
	if err := db.Create(&deal).Error; err != nil {
		t.Fatalf("seed deal: %v", err)
	}

	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	meetings := []*entities.Meeting{
		{Title: "Later", DateTime: base.Add(2 * time.Hour), Duration: 30, MeetingType: entities.MeetingTypeVirtual, Status: entities.MeetingStatusScheduled, DealID: &deal.ID},
		{Title: "Earlier", DateTime: base, Duration: 30, MeetingType: entities.MeetingTypeVirtual, Status: entities.MeetingStatusScheduled, CompanyID: &company.ID},
		{Title: "Cancelled", DateTime: base.Add(time.Hour), Duration: 30, MeetingType: entities.MeetingTypeVirtual, Status: entities.MeetingStatusCancelled},
	}
	for _, m := range meetings {
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	all, err := repo.List(ctx, repositories.MeetingFilters{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d meetings, want 3", len(all))
	}
	if all[0].Title != "Earlier" || all[2].Title != "Later" {
		t.Fatalf("wrong order: %s, %s, %s", all[0].Title, all[1].Title, all[2].Title)
	}

	status := entities.MeetingStatusScheduled
	scheduled, err := repo.List(ctx, repositories.MeetingFilters{Status: &status})
	if err != nil {
		t.Fatalf("filter by status failed: %v", err)
	}
	if len(scheduled) != 2 {
		t.Fatalf("got %d scheduled, want 2", len(scheduled))
	}

	byDeal, err := repo.List(ctx, repositories.MeetingFilters{DealID: &deal.ID})
	if err != nil {
		t.Fatalf("filter by deal failed: %v", err)
	}
	if len(byDeal) != 1 || byDeal[0].Title != "Later" {
		t.Fatalf("deal filter returned %d meetings", len(byDeal))
	}
}

func TestMeetingFindDue(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	meetings := []*entities.Meeting{
		{Title: "Past scheduled", DateTime: now.Add(-time.Hour), Duration: 30, MeetingType: entities.MeetingTypeVirtual, Status: entities.MeetingStatusScheduled},
		{Title: "Past cancelled", DateTime: now.Add(-time.Hour), Duration: 30, MeetingType: entities.MeetingTypeVirtual, Status: entities.MeetingStatusCancelled},
		{Title: "Future", DateTime: now.Add(time.Hour), Duration: 30, MeetingType: entities.MeetingTypeVirtual, Status: entities.MeetingStatusScheduled},
	}
	for _, m := range meetings {
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	due, err := repo.FindDue(ctx, now)
	if err != nil {
		t.Fatalf("find due failed: %v", err)
	}
	if len(due) != 1 || due[0].Title != "Past scheduled" {
		t.Fatalf("due = %d meetings, want just the past scheduled one", len(due))
	}
}

func TestMeetingCompleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	m := &entities.Meeting{
		Title:       "Done",
		DateTime:    time.Now().Add(-2 * time.Hour),
		Duration:    30,
		MeetingType: entities.MeetingTypeVirtual,
		Status:      entities.MeetingStatusScheduled,
	}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Complete(ctx, m.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	// Second delivery must be a harmless no-op.
	if err := repo.Complete(ctx, m.ID); err != nil {
		t.Fatalf("repeat complete failed: %v", err)
	}

	found, err := repo.FindByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Status != entities.MeetingStatusCompleted {
		t.Fatalf("status = %s, want completed", found.Status)
	}
}

func TestMeetingCompleteSkipsCancelled(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	m := &entities.Meeting{
		Title:       "Was cancelled",
		DateTime:    time.Now().Add(-2 * time.Hour),
		Duration:    30,
		MeetingType: entities.MeetingTypeVirtual,
		Status:      entities.MeetingStatusCancelled,
	}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Complete(ctx, m.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	found, err := repo.FindByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Status != entities.MeetingStatusCancelled {
		t.Fatalf("cancelled meeting must stay cancelled, got %s", found.Status)
	}
}

func TestMeetingCountScheduledBetween(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	meetings := []*entities.Meeting{
		{Title: "Morning", DateTime: day.Add(9 * time.Hour), Duration: 30, MeetingType: entities.MeetingTypeVirtual, Status: entities.MeetingStatusScheduled},
		{Title: "Evening", DateTime: day.Add(18 * time.Hour), Duration: 30, MeetingType: entities.MeetingTypeVirtual, Status: entities.MeetingStatusScheduled},
		{Title: "Cancelled", DateTime: day.Add(12 * time.Hour), Duration: 30, MeetingType: entities.MeetingTypeVirtual, Status: entities.MeetingStatusCancelled},
		{Title: "Tomorrow", DateTime: day.Add(25 * time.Hour), Duration: 30, MeetingType: entities.MeetingTypeVirtual, Status: entities.MeetingStatusScheduled},
	}
	for _, m := range meetings {
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	count, err := repo.CountScheduledBetween(ctx, day, day.AddDate(0, 0, 1), entities.MeetingStatusScheduled)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestMeetingSurvivesReferenceDeletes(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	company := entities.Company{Name: "Acme"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	deal := entities.Deal{Title: "Pilot", Amount: 1000, Stage: entities.DealStageLead, CompanyID: company.ID}
	if err := db.Create(&deal).Error; err != nil {
		t.Fatalf("seed deal: %v", err)
	}
	contacts := seedContacts(t, db, "a@example.com", "b@example.com")

	m := &entities.Meeting{
		Title:       "Pilot review",
		DateTime:    time.Now().Add(24 * time.Hour),
		Duration:    30,
		MeetingType: entities.MeetingTypeVirtual,
		Status:      entities.MeetingStatusScheduled,
		DealID:      &deal.ID,
		CompanyID:   &company.ID,
	}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.ReplaceParticipants(ctx, m, []uint{contacts[0].ID, contacts[1].ID}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	// Deleting the deal nullifies the reference, the meeting survives.
	if err := db.Delete(&entities.Deal{}, deal.ID).Error; err != nil {
		t.Fatalf("delete deal: %v", err)
	}
	found, err := repo.FindByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("find after deal delete: %v", err)
	}
	if found.DealID != nil {
		t.Fatalf("deal_id = %v, want nullified", *found.DealID)
	}

	// Deleting a contact drops only its participant row.
	if err := db.Delete(&entities.Contact{}, contacts[0].ID).Error; err != nil {
		t.Fatalf("delete contact: %v", err)
	}
	found, err = repo.FindByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("find after contact delete: %v", err)
	}
	if ids := found.ParticipantIDs(); len(ids) != 1 || ids[0] != contacts[1].ID {
		t.Fatalf("participants = %v, want only %d", ids, contacts[1].ID)
	}

	// Same for the company.
	if err := db.Delete(&entities.Company{}, company.ID).Error; err != nil {
		t.Fatalf("delete company: %v", err)
	}
	found, err = repo.FindByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("find after company delete: %v", err)
	}
	if found.CompanyID != nil {
		t.Fatalf("company_id = %v, want nullified", *found.CompanyID)
	}
	if found.Status != entities.MeetingStatusScheduled {
		t.Fatalf("status = %s, meeting must be untouched", found.Status)
	}
}
