package meeting

import (
	"encoding/json"
	"time"
)

// CurrentUserMarker is the sentinel appended to a participant list when the
// requesting user's own contact is not already part of the set. Clients use
// it to distinguish self from others.
const CurrentUserMarker = "current_user"

// ParticipantRef is either a contact id or the current-user sentinel. It
// serializes as a bare integer or as the marker string.
type ParticipantRef struct {
	ContactID   uint
	CurrentUser bool
}

// MarshalJSON emits the contact id or the sentinel string
func (p ParticipantRef) MarshalJSON() ([]byte, error) {
	if p.CurrentUser {
		return json.Marshal(CurrentUserMarker)
	}
	return json.Marshal(p.ContactID)
}

// UnmarshalJSON accepts either form
func (p *ParticipantRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.CurrentUser = s == CurrentUserMarker
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	p.ContactID = id
	return nil
}

// MeetingResponse represents a meeting in list and detail responses
type MeetingResponse struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	DateTime     time.Time        `json:"date_time"`
	Duration     int              `json:"duration"`
	Location     string           `json:"location"`
	MeetingType  string           `json:"meeting_type"`
	Status       string           `json:"status"`
	Deal         *uint            `json:"deal"`
	DealTitle    *string          `json:"deal_title"`
	Company      *uint            `json:"company"`
	CompanyName  *string          `json:"company_name"`
	Participants []ParticipantRef `json:"participants"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	IsUpcoming   bool             `json:"is_upcoming"`
}

// FilteredMeetingResponse is the reduced projection served by the filter
// endpoint: no denormalized display fields, no timestamps.
type FilteredMeetingResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	DateTime     time.Time `json:"date_time"`
	Duration     int       `json:"duration"`
	MeetingType  string    `json:"meeting_type"`
	Status       string    `json:"status"`
	Deal         *uint     `json:"deal"`
	Company      *uint     `json:"company"`
	Participants []uint    `json:"participants"`
}

// MutationResponse acknowledges a create or update
type MutationResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MeetingID uint   `json:"meeting_id"`
}

// CancelResponse acknowledges a cancellation
type CancelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TodayCountResponse reports the number of meetings scheduled today
type TodayCountResponse struct {
	Success bool   `json:"success"`
	Count   int64  `json:"count"`
	Date    string `json:"date"`
}
