package meeting

import (
	"encoding/json"
	"fmt"
	"time"
)

// Accepted timestamp layouts for date_time. Offset-qualified values keep
// their zone; naive values are interpreted in server local time.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDateTime parses an incoming date_time string
func ParseDateTime(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date_time %q", value)
}

// CreateMeetingRequest represents the request to create a meeting.
// Participants is raw on purpose: non-integer entries are silently dropped
// rather than rejected.
type CreateMeetingRequest struct {
	Title        string        `json:"title" validate:"required,min=1,max=200"`
	Description  string        `json:"description"`
	DateTime     string        `json:"date_time" validate:"required"`
	Duration     int           `json:"duration" validate:"required,min=1"`
	Location     string        `json:"location"`
	MeetingType  string        `json:"meeting_type" validate:"required,oneof=in_person virtual phone"`
	Status       string        `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
	Deal         *uint         `json:"deal"`
	Company      *uint         `json:"company"`
	Participants []interface{} `json:"participants"`
}

// ParticipantIDs filters the raw participant list down to integer ids
func (r *CreateMeetingRequest) ParticipantIDs() []uint {
	return filterIntegerIDs(r.Participants)
}

// UpdateMeetingRequest represents a partial patch. Presence of a key, not its
// value, decides whether a field is applied: an explicit null for deal or
// company clears the reference, while an absent key leaves it untouched.
type UpdateMeetingRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DateTime    *string `json:"date_time"`
	Duration    *int    `json:"duration" validate:"omitempty,min=1"`
	Location    *string `json:"location"`
	MeetingType *string `json:"meeting_type" validate:"omitempty,oneof=in_person virtual phone"`
	Status      *string `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`

	Deal    *uint `json:"-"`
	DealSet bool  `json:"-"`

	Company    *uint `json:"-"`
	CompanySet bool  `json:"-"`

	Participants    []interface{} `json:"-"`
	ParticipantsSet bool          `json:"-"`
}

// UnmarshalJSON records which keys were present alongside their values
func (r *UpdateMeetingRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type plain struct {
		Title        *string       `json:"title"`
		Description  *string       `json:"description"`
		DateTime     *string       `json:"date_time"`
		Duration     *int          `json:"duration"`
		Location     *string       `json:"location"`
		MeetingType  *string       `json:"meeting_type"`
		Status       *string       `json:"status"`
		Deal         *uint         `json:"deal"`
		Company      *uint         `json:"company"`
		Participants []interface{} `json:"participants"`
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	r.Title = p.Title
	r.Description = p.Description
	r.DateTime = p.DateTime
	r.Duration = p.Duration
	r.Location = p.Location
	r.MeetingType = p.MeetingType
	r.Status = p.Status
	r.Deal = p.Deal
	r.Company = p.Company
	r.Participants = p.Participants

	_, r.DealSet = raw["deal"]
	_, r.CompanySet = raw["company"]
	_, r.ParticipantsSet = raw["participants"]

	return nil
}

// ParticipantIDs filters the raw participant list down to integer ids
func (r *UpdateMeetingRequest) ParticipantIDs() []uint {
	return filterIntegerIDs(r.Participants)
}

// FilterMeetingsRequest represents the filter query parameters
type FilterMeetingsRequest struct {
	Deal    *uint   `query:"deal"`
	Company *uint   `query:"company"`
	Status  *string `query:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
}

// filterIntegerIDs keeps only whole non-negative numbers. encoding/json
// decodes all numbers as float64, so strings, fractions and negatives all
// fall through silently.
func filterIntegerIDs(raw []interface{}) []uint {
	ids := make([]uint, 0, len(raw))
	for _, v := range raw {
		f, ok := v.(float64)
		if !ok {
			continue
		}
		if f < 0 || f != float64(uint(f)) {
			continue
		}
		ids = append(ids, uint(f))
	}
	return ids
}
