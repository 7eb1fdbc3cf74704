package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	meetingDto "github.com/johnquangdev/crm-backend/internal/adapter/dto/meeting"
	"github.com/johnquangdev/crm-backend/internal/adapter/presenter"
	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/crm-backend/internal/usecase/errors"
	meetingUsecase "github.com/johnquangdev/crm-backend/internal/usecase/meeting"
)

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	meetingService *meetingUsecase.MeetingService
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService *meetingUsecase.MeetingService) *Meeting {
	return &Meeting{
		meetingService: meetingService,
	}
}

// Create handles POST /v1/meetings/create/
func (h *Meeting) Create(c echo.Context) error {
	var req meetingDto.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	dateTime, err := meetingDto.ParseDateTime(req.DateTime)
	if err != nil {
		return respondBadRequest(c, "Invalid date_time")
	}

	user, ok := currentUser(c)
	if !ok {
		return respondError(c, usecaseErrors.ErrUnauthorized)
	}

	input := meetingUsecase.CreateMeetingInput{
		Title:          req.Title,
		Description:    req.Description,
		DateTime:       dateTime,
		Duration:       req.Duration,
		Location:       req.Location,
		MeetingType:    entities.MeetingType(req.MeetingType),
		Status:         entities.MeetingStatus(req.Status),
		DealID:         req.Deal,
		CompanyID:      req.Company,
		ParticipantIDs: req.ParticipantIDs(),
		ActorEmail:     user.Email,
	}

	meeting, err := h.meetingService.CreateMeeting(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, meetingDto.MutationResponse{
		Success:   true,
		Message:   "Meeting created",
		MeetingID: meeting.ID,
	})
}

// List handles GET /v1/meetings
func (h *Meeting) List(c echo.Context) error {
	meetings, err := h.meetingService.ListMeetings(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	viewerContactID, hasViewerContact := uint(0), false
	if user, ok := currentUser(c); ok {
		viewerContactID, hasViewerContact = h.meetingService.ActorContactID(c.Request().Context(), user.Email)
	}

	return c.JSON(http.StatusOK, presenter.PresentMeetingList(meetings, viewerContactID, hasViewerContact))
}

// Get handles GET /v1/meetings/:id/
func (h *Meeting) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrMeetingNotFound)
	}

	meeting, err := h.meetingService.GetMeeting(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.PresentMeeting(meeting))
}

// Update handles PUT /v1/meetings/update/:id/
func (h *Meeting) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrMeetingNotFound)
	}

	var req meetingDto.UpdateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	user, ok := currentUser(c)
	if !ok {
		return respondError(c, usecaseErrors.ErrUnauthorized)
	}

	input := meetingUsecase.UpdateMeetingInput{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Location:    req.Location,
		ActorEmail:  user.Email,
	}

	if req.DateTime != nil {
		dateTime, err := meetingDto.ParseDateTime(*req.DateTime)
		if err != nil {
			return respondBadRequest(c, "Invalid date_time")
		}
		input.DateTime = &dateTime
	}
	if req.MeetingType != nil {
		meetingType := entities.MeetingType(*req.MeetingType)
		input.MeetingType = &meetingType
	}
	if req.Status != nil {
		status := entities.MeetingStatus(*req.Status)
		input.Status = &status
	}
	if req.DealSet {
		input.DealSet = true
		input.DealID = req.Deal
	}
	if req.CompanySet {
		input.CompanySet = true
		input.CompanyID = req.Company
	}
	if req.ParticipantsSet {
		input.ParticipantsSet = true
		input.ParticipantIDs = req.ParticipantIDs()
	}

	meeting, err := h.meetingService.UpdateMeeting(c.Request().Context(), id, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, meetingDto.MutationResponse{
		Success:   true,
		Message:   "Meeting updated",
		MeetingID: meeting.ID,
	})
}

// Delete handles DELETE /v1/meetings/delete/:id/. Deletion is a soft
// transition to cancelled; the record survives.
func (h *Meeting) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrMeetingNotFound)
	}

	if err := h.meetingService.CancelMeeting(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, meetingDto.CancelResponse{
		Success: true,
		Message: "Meeting cancelled",
	})
}

// TodayCount handles GET /v1/meetings/today/count/
func (h *Meeting) TodayCount(c echo.Context) error {
	count, date, err := h.meetingService.TodayCount(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, meetingDto.TodayCountResponse{
		Success: true,
		Count:   count,
		Date:    date,
	})
}

// Filter handles GET /v1/meetings/filter/?deal=&company=&status=
func (h *Meeting) Filter(c echo.Context) error {
	var filters repositories.MeetingFilters

	if raw := c.QueryParam("deal"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return respondBadRequest(c, "Invalid deal id")
		}
		dealID := uint(id)
		filters.DealID = &dealID
	}
	if raw := c.QueryParam("company"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return respondBadRequest(c, "Invalid company id")
		}
		companyID := uint(id)
		filters.CompanyID = &companyID
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := entities.MeetingStatus(raw)
		if !status.IsValid() {
			return respondBadRequest(c, "Invalid status")
		}
		filters.Status = &status
	}

	meetings, err := h.meetingService.FilterMeetings(c.Request().Context(), filters)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.PresentFilteredMeetings(meetings))
}
