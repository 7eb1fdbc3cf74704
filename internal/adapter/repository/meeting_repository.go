package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Omit("Participants").Create(meeting).Error
}

// FindByID retrieves a meeting by its ID with associations loaded
func (r *meetingRepository) FindByID(ctx context.Context, id uint) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Deal").
		Preload("Company").
		Preload("Participants").
		Where("id = ?", id).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Update persists all fields of an existing meeting. The participant set is
// managed separately through ReplaceParticipants.
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Omit("Participants", "Deal", "Company").Save(meeting).Error
}

// ReplaceParticipants replaces the entire participant set (not additive)
func (r *meetingRepository) ReplaceParticipants(ctx context.Context, meeting *entities.Meeting, contactIDs []uint) error {
	var contacts []entities.Contact
	if len(contactIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", contactIDs).Find(&contacts).Error; err != nil {
			return err
		}
	}

	if err := r.db.WithContext(ctx).Model(meeting).Association("Participants").Replace(contacts); err != nil {
		return err
	}
	meeting.Participants = contacts
	return nil
}

// List retrieves meetings matching the filters, ordered by date_time ascending
func (r *meetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting

	query := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Preload("Deal").
		Preload("Company").
		Preload("Participants")

	if filters.DealID != nil {
		query = query.Where("deal_id = ?", *filters.DealID)
	}
	if filters.CompanyID != nil {
		query = query.Where("company_id = ?", *filters.CompanyID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	err := query.Order("date_time ASC").Find(&meetings).Error
	return meetings, err
}

// CountScheduledBetween counts meetings with the given status whose date_time
// falls within [from, to)
func (r *meetingRepository) CountScheduledBetween(ctx context.Context, from, to time.Time, status entities.MeetingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("date_time >= ? AND date_time < ? AND status = ?", from, to, status).
		Count(&count).Error
	return count, err
}

// FindDue retrieves meetings still in a live status whose start time has passed
func (r *meetingRepository) FindDue(ctx context.Context, now time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("status IN ? AND date_time < ?",
			[]entities.MeetingStatus{entities.MeetingStatusScheduled, entities.MeetingStatusInProgress}, now).
		Order("date_time ASC").
		Find(&meetings).Error
	return meetings, err
}

// Complete atomically transitions a live meeting to completed. The status
// guard in the WHERE clause makes repeated completion a harmless no-op.
func (r *meetingRepository) Complete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND status IN ?", id,
			[]entities.MeetingStatus{entities.MeetingStatusScheduled, entities.MeetingStatusInProgress}).
		Update("status", entities.MeetingStatusCompleted).
		Error
}
