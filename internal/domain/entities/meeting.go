package entities

import (
	"time"
)

// MeetingType represents how a meeting is held
type MeetingType string

const (
	MeetingTypeInPerson MeetingType = "in_person"
	MeetingTypeVirtual  MeetingType = "virtual"
	MeetingTypePhone    MeetingType = "phone"
)

// IsValid checks if the meeting type is a known value
func (t MeetingType) IsValid() bool {
	switch t {
	case MeetingTypeInPerson, MeetingTypeVirtual, MeetingTypePhone:
		return true
	}
	return false
}

// MeetingStatus represents the current status of a meeting
type MeetingStatus string

const (
	MeetingStatusScheduled  MeetingStatus = "scheduled"
	MeetingStatusInProgress MeetingStatus = "in_progress"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusCancelled  MeetingStatus = "cancelled"
)

// IsValid checks if the meeting status is a known value
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusScheduled, MeetingStatusInProgress, MeetingStatusCompleted, MeetingStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCompleted || s == MeetingStatusCancelled
}

// Meeting represents a CRM meeting with a deal, a company and contact participants
type Meeting struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Title       string        `gorm:"type:varchar(200);not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	DateTime    time.Time     `gorm:"column:date_time;not null;index" json:"date_time"`
	Duration    int           `gorm:"not null;default:60" json:"duration"` // minutes
	Location    string        `gorm:"type:text;default:''" json:"location"`
	MeetingType MeetingType   `gorm:"type:varchar(20);not null;default:'in_person'" json:"meeting_type"`
	Status      MeetingStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`

	// Weak references: removing the deal or company nullifies the pointer,
	// it never deletes the meeting.
	DealID    *uint    `gorm:"index" json:"deal,omitempty"`
	Deal      *Deal    `gorm:"foreignKey:DealID;constraint:OnDelete:SET NULL" json:"-"`
	CompanyID *uint    `gorm:"index" json:"company,omitempty"`
	Company   *Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL" json:"-"`

	// Removing a contact drops it from the join table only.
	Participants []Contact `gorm:"many2many:meeting_participants;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// EndTime is derived from the start and the duration; it is never stored.
func (m *Meeting) EndTime() time.Time {
	return m.DateTime.Add(time.Duration(m.Duration) * time.Minute)
}

// IsUpcoming reports whether the meeting starts in the future and is still live
func (m *Meeting) IsUpcoming() bool {
	return m.DateTime.After(time.Now()) && !m.Status.IsTerminal()
}

// CanTransitionTo reports whether moving to next is a legal status transition.
// Legal moves: scheduled -> in_progress -> completed, and any non-terminal
// state -> cancelled.
func (m *Meeting) CanTransitionTo(next MeetingStatus) bool {
	if m.Status.IsTerminal() {
		return false
	}
	if next == MeetingStatusCancelled {
		return true
	}
	switch m.Status {
	case MeetingStatusScheduled:
		return next == MeetingStatusInProgress || next == MeetingStatusCompleted
	case MeetingStatusInProgress:
		return next == MeetingStatusCompleted
	}
	return false
}

// Cancel marks the meeting as cancelled. Cancellation is the delete path:
// the row is never removed.
func (m *Meeting) Cancel() {
	m.Status = MeetingStatusCancelled
}

// ParticipantIDs returns the contact ids of the loaded participant set
func (m *Meeting) ParticipantIDs() []uint {
	ids := make([]uint, 0, len(m.Participants))
	for _, c := range m.Participants {
		ids = append(ids, c.ID)
	}
	return ids
}

// RecipientEmails returns the non-empty participant email addresses
func (m *Meeting) RecipientEmails() []string {
	emails := make([]string, 0, len(m.Participants))
	for _, c := range m.Participants {
		if c.Email != "" {
			emails = append(emails, c.Email)
		}
	}
	return emails
}
