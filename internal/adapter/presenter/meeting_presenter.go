package presenter

import (
	"github.com/johnquangdev/crm-backend/internal/adapter/dto/meeting"
	"github.com/johnquangdev/crm-backend/internal/domain/entities"
)

// PresentMeeting converts a meeting entity to its full response projection,
// denormalizing the deal title and company name when loaded.
func PresentMeeting(m *entities.Meeting) *meeting.MeetingResponse {
	resp := &meeting.MeetingResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		DateTime:    m.DateTime,
		Duration:    m.Duration,
		Location:    m.Location,
		MeetingType: string(m.MeetingType),
		Status:      string(m.Status),
		Deal:        m.DealID,
		Company:     m.CompanyID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		IsUpcoming:  m.IsUpcoming(),
	}

	if m.Deal != nil {
		resp.DealTitle = &m.Deal.Title
	}
	if m.Company != nil {
		resp.CompanyName = &m.Company.Name
	}

	resp.Participants = make([]meeting.ParticipantRef, 0, len(m.Participants))
	for _, id := range m.ParticipantIDs() {
		resp.Participants = append(resp.Participants, meeting.ParticipantRef{ContactID: id})
	}

	return resp
}

// PresentMeetingForViewer is PresentMeeting plus the current-user sentinel:
// when the viewer's contact record exists but is not among the participants,
// a marker entry is appended so the client can tell self apart.
func PresentMeetingForViewer(m *entities.Meeting, viewerContactID uint, hasViewerContact bool) *meeting.MeetingResponse {
	resp := PresentMeeting(m)

	if !hasViewerContact {
		return resp
	}
	for _, id := range m.ParticipantIDs() {
		if id == viewerContactID {
			return resp
		}
	}
	resp.Participants = append(resp.Participants, meeting.ParticipantRef{CurrentUser: true})
	return resp
}

// PresentMeetingList converts a list of meetings for the retrieve-all view
func PresentMeetingList(meetings []*entities.Meeting, viewerContactID uint, hasViewerContact bool) []*meeting.MeetingResponse {
	out := make([]*meeting.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, PresentMeetingForViewer(m, viewerContactID, hasViewerContact))
	}
	return out
}

// PresentFilteredMeeting converts a meeting to the reduced filter projection
func PresentFilteredMeeting(m *entities.Meeting) *meeting.FilteredMeetingResponse {
	ids := m.ParticipantIDs()
	return &meeting.FilteredMeetingResponse{
		ID:           m.ID,
		Title:        m.Title,
		DateTime:     m.DateTime,
		Duration:     m.Duration,
		MeetingType:  string(m.MeetingType),
		Status:       string(m.Status),
		Deal:         m.DealID,
		Company:      m.CompanyID,
		Participants: ids,
	}
}

// PresentFilteredMeetings converts a list for the filter view
func PresentFilteredMeetings(meetings []*entities.Meeting) []*meeting.FilteredMeetingResponse {
	out := make([]*meeting.FilteredMeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, PresentFilteredMeeting(m))
	}
	return out
}
