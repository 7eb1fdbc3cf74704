package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrUserNotActive      = errors.New("user is not active")
)

// Meeting errors
var (
	ErrMeetingNotFound      = errors.New("meeting not found")
	ErrInvalidMeetingType   = errors.New("invalid meeting type")
	ErrInvalidMeetingStatus = errors.New("invalid meeting status")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidDateTime      = errors.New("invalid date_time")
	ErrInvalidDuration      = errors.New("duration must be positive")
)

// CRM errors
var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrDealNotFound    = errors.New("deal not found")
	ErrTaskNotFound    = errors.New("task not found")
)
