package meeting

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
	"github.com/johnquangdev/crm-backend/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/crm-backend/internal/usecase/errors"
	"github.com/johnquangdev/crm-backend/internal/usecase/notification"
	"github.com/johnquangdev/crm-backend/pkg/metrics"
)

// todayCountTTL bounds staleness of the cached today-count between
// invalidations from other processes.
const todayCountTTL = 60 * time.Second

// MeetingService handles meeting business logic: CRUD orchestration,
// participant reconciliation and notification dispatch.
type MeetingService struct {
	meetings   repositories.MeetingRepository
	contacts   repositories.ContactRepository
	dispatcher *notification.Dispatcher
	store      cache.Store
	logger     *zap.Logger

	// now is swapped out in tests
	now func() time.Time
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetings repositories.MeetingRepository,
	contacts repositories.ContactRepository,
	dispatcher *notification.Dispatcher,
	store cache.Store,
	logger *zap.Logger,
) *MeetingService {
	return &MeetingService{
		meetings:   meetings,
		contacts:   contacts,
		dispatcher: dispatcher,
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateMeetingInput represents input for creating a meeting. All values are
// taken verbatim; nothing is defaulted server-side beyond what the caller omits.
type CreateMeetingInput struct {
	Title          string
	Description    string
	DateTime       time.Time
	Duration       int
	Location       string
	MeetingType    entities.MeetingType
	Status         entities.MeetingStatus
	DealID         *uint
	CompanyID      *uint
	ParticipantIDs []uint

	// ActorEmail is the authenticated caller's email; their contact record,
	// if one exists, is always included in the participant set.
	ActorEmail string
}

// CreateMeeting creates a meeting, reconciles its participant set and sends
// the created notification.
func (s *MeetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error) {
	if !input.MeetingType.IsValid() {
		return nil, usecaseErrors.ErrInvalidMeetingType
	}
	if !input.Status.IsValid() {
		return nil, usecaseErrors.ErrInvalidMeetingStatus
	}
	if input.Duration <= 0 {
		return nil, usecaseErrors.ErrInvalidDuration
	}
	if input.DateTime.IsZero() {
		return nil, usecaseErrors.ErrInvalidDateTime
	}

	meeting := &entities.Meeting{
		Title:       input.Title,
		Description: input.Description,
		DateTime:    input.DateTime,
		Duration:    input.Duration,
		Location:    input.Location,
		MeetingType: input.MeetingType,
		Status:      input.Status,
		DealID:      input.DealID,
		CompanyID:   input.CompanyID,
	}

	if err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	participantIDs := s.withActorContact(ctx, input.ParticipantIDs, input.ActorEmail)
	if len(participantIDs) > 0 {
		if err := s.meetings.ReplaceParticipants(ctx, meeting, participantIDs); err != nil {
			return nil, fmt.Errorf("failed to set participants: %w", err)
		}
	}

	metrics.MeetingsCreated.Inc()
	s.invalidateTodayCount(ctx, meeting.DateTime)
	s.dispatcher.Dispatch(ctx, meeting, notification.ActionCreated, nil)

	s.logger.Info("meeting.created",
		zap.Uint("meeting_id", meeting.ID),
		zap.Time("date_time", meeting.DateTime),
	)
	return meeting, nil
}

// GetMeeting retrieves a single meeting with its associations
func (s *MeetingService) GetMeeting(ctx context.Context, id uint) (*entities.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	return meeting, nil
}

// ListMeetings retrieves all meetings ordered by scheduled time
func (s *MeetingService) ListMeetings(ctx context.Context) ([]*entities.Meeting, error) {
	return s.meetings.List(ctx, repositories.MeetingFilters{})
}

// FilterMeetings retrieves meetings matching the given constraints
func (s *MeetingService) FilterMeetings(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, error) {
	return s.meetings.List(ctx, filters)
}

// ActorContactID resolves the caller's own contact record id, or false when
// no contact carries their email.
func (s *MeetingService) ActorContactID(ctx context.Context, email string) (uint, bool) {
	if email == "" {
		return 0, false
	}
	contact, err := s.contacts.FindByEmail(ctx, email)
	if err != nil {
		return 0, false
	}
	return contact.ID, true
}

// UpdateMeetingInput represents a partial patch. Nil pointer means the field
// was absent from the payload and must not be touched. Deal, company and
// participants additionally distinguish "absent" from "explicitly cleared".
type UpdateMeetingInput struct {
	Title       *string
	Description *string
	DateTime    *time.Time
	Duration    *int
	Location    *string
	MeetingType *entities.MeetingType
	Status      *entities.MeetingStatus

	DealSet bool
	DealID  *uint

	CompanySet bool
	CompanyID  *uint

	ParticipantsSet bool
	ParticipantIDs  []uint

	ActorEmail string
}

// UpdateMeeting applies a partial patch. A patch containing date_time yields
// a reschedule notification carrying the prior time; any other patch yields a
// plain updated notification.
func (s *MeetingService) UpdateMeeting(ctx context.Context, id uint, input UpdateMeetingInput) (*entities.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}

	var previousTime *time.Time
	if input.DateTime != nil {
		prev := meeting.DateTime
		previousTime = &prev
	}

	if input.Title != nil {
		meeting.Title = *input.Title
	}
	if input.Description != nil {
		meeting.Description = *input.Description
	}
	if input.DateTime != nil {
		if input.DateTime.IsZero() {
			return nil, usecaseErrors.ErrInvalidDateTime
		}
		s.invalidateTodayCount(ctx, meeting.DateTime)
		meeting.DateTime = *input.DateTime
	}
	if input.Duration != nil {
		if *input.Duration <= 0 {
			return nil, usecaseErrors.ErrInvalidDuration
		}
		meeting.Duration = *input.Duration
	}
	if input.Location != nil {
		meeting.Location = *input.Location
	}
	if input.MeetingType != nil {
		if !input.MeetingType.IsValid() {
			return nil, usecaseErrors.ErrInvalidMeetingType
		}
		meeting.MeetingType = *input.MeetingType
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, usecaseErrors.ErrInvalidMeetingStatus
		}
		if *input.Status != meeting.Status && !meeting.CanTransitionTo(*input.Status) {
			return nil, usecaseErrors.ErrInvalidTransition
		}
		meeting.Status = *input.Status
	}
	if input.DealSet {
		meeting.DealID = input.DealID
		meeting.Deal = nil
	}
	if input.CompanySet {
		meeting.CompanyID = input.CompanyID
		meeting.Company = nil
	}

	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	if input.ParticipantsSet {
		participantIDs := s.withActorContact(ctx, input.ParticipantIDs, input.ActorEmail)
		if err := s.meetings.ReplaceParticipants(ctx, meeting, participantIDs); err != nil {
			return nil, fmt.Errorf("failed to set participants: %w", err)
		}
	}

	s.invalidateTodayCount(ctx, meeting.DateTime)

	if previousTime != nil {
		s.dispatcher.Dispatch(ctx, meeting, notification.ActionCreated, previousTime)
	} else {
		s.dispatcher.Dispatch(ctx, meeting, notification.ActionUpdated, nil)
	}

	s.logger.Info("meeting.updated", zap.Uint("meeting_id", meeting.ID))
	return meeting, nil
}

// CancelMeeting is the delete operation: a soft transition to cancelled. The
// row is never removed so the cancelled record stays retrievable. Cancelling
// an already-cancelled meeting is a no-op; a completed meeting cannot be
// cancelled.
func (s *MeetingService) CancelMeeting(ctx context.Context, id uint) error {
	meeting, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrMeetingNotFound
		}
		return fmt.Errorf("failed to find meeting: %w", err)
	}

	if meeting.Status == entities.MeetingStatusCancelled {
		return nil
	}
	if !meeting.CanTransitionTo(entities.MeetingStatusCancelled) {
		return usecaseErrors.ErrInvalidTransition
	}

	s.dispatcher.Dispatch(ctx, meeting, notification.ActionCancelled, nil)

	meeting.Cancel()
	if err := s.meetings.Update(ctx, meeting); err != nil {
		return fmt.Errorf("failed to cancel meeting: %w", err)
	}

	metrics.MeetingsCancelled.Inc()
	s.invalidateTodayCount(ctx, meeting.DateTime)

	s.logger.Info("meeting.cancelled", zap.Uint("meeting_id", meeting.ID))
	return nil
}

// TodayCount counts scheduled meetings falling within the local calendar day.
// The count is served from cache when a fresh value is available.
func (s *MeetingService) TodayCount(ctx context.Context) (int64, string, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	date := start.Format("2006-01-02")

	key := todayCountKey(date)
	if cached, ok, err := s.store.Get(ctx, key); err == nil && ok {
		if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return count, date, nil
		}
	}

	count, err := s.meetings.CountScheduledBetween(ctx, start, end, entities.MeetingStatusScheduled)
	if err != nil {
		return 0, "", fmt.Errorf("failed to count meetings: %w", err)
	}

	if err := s.store.Set(ctx, key, strconv.FormatInt(count, 10), todayCountTTL); err != nil {
		s.logger.Warn("meeting.today_count: cache write failed", zap.Error(err))
	}

	return count, date, nil
}

// withActorContact appends the caller's own contact id when a contact with
// their email exists and the id is not already present.
func (s *MeetingService) withActorContact(ctx context.Context, ids []uint, actorEmail string) []uint {
	actorID, ok := s.ActorContactID(ctx, actorEmail)
	if !ok {
		return ids
	}
	for _, id := range ids {
		if id == actorID {
			return ids
		}
	}
	return append(ids, actorID)
}

// invalidateTodayCount drops the cached count for the calendar day the given
// time falls on, if that day is the current local day.
func (s *MeetingService) invalidateTodayCount(ctx context.Context, at time.Time) {
	now := s.now()
	local := at.Local()
	if local.Year() != now.Year() || local.YearDay() != now.YearDay() {
		return
	}
	date := local.Format("2006-01-02")
	if err := s.store.Delete(ctx, todayCountKey(date)); err != nil {
		s.logger.Warn("meeting.today_count: cache invalidation failed", zap.Error(err))
	}
}

func todayCountKey(date string) string {
	return "meetings:today_count:" + date
}
