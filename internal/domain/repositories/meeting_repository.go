package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting with its deal, company and participants
	FindByID(ctx context.Context, id uint) (*entities.Meeting, error)

	// Update persists all fields of an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// ReplaceParticipants replaces the entire participant set of a meeting
	ReplaceParticipants(ctx context.Context, meeting *entities.Meeting, contactIDs []uint) error

	// List retrieves meetings matching the filters, ordered by date_time ascending
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, error)

	// CountScheduledBetween counts meetings with the given status whose
	// date_time falls within [from, to)
	CountScheduledBetween(ctx context.Context, from, to time.Time, status entities.MeetingStatus) (int64, error)

	// FindDue retrieves meetings still in a live status whose start time has passed
	FindDue(ctx context.Context, now time.Time) ([]*entities.Meeting, error)

	// Complete atomically transitions a live meeting to completed. Completing
	// an already-completed meeting is a no-op, which keeps concurrent sweeps safe.
	Complete(ctx context.Context, id uint) error
}

// MeetingFilters represents filter options for listing meetings.
// All set filters are combined with AND semantics.
type MeetingFilters struct {
	DealID    *uint
	CompanyID *uint
	Status    *entities.MeetingStatus
}
