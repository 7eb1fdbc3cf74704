package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/crm-backend/internal/adapter/dto/common"
	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/crm-backend/internal/usecase/errors"
)

// respondError maps usecase errors onto the uniform error envelope. Unknown
// errors surface their message with a 500, matching the rest of the API's
// error shape.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		status, message = http.StatusNotFound, "Meeting not found"
	case stdErrors.Is(err, usecaseErrors.ErrCompanyNotFound),
		stdErrors.Is(err, usecaseErrors.ErrContactNotFound),
		stdErrors.Is(err, usecaseErrors.ErrDealNotFound),
		stdErrors.Is(err, usecaseErrors.ErrTaskNotFound),
		stdErrors.Is(err, usecaseErrors.ErrNotFound):
		status = http.StatusNotFound
	case stdErrors.Is(err, usecaseErrors.ErrInvalidMeetingType),
		stdErrors.Is(err, usecaseErrors.ErrInvalidMeetingStatus),
		stdErrors.Is(err, usecaseErrors.ErrInvalidTransition),
		stdErrors.Is(err, usecaseErrors.ErrInvalidDateTime),
		stdErrors.Is(err, usecaseErrors.ErrInvalidDuration),
		stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case stdErrors.Is(err, usecaseErrors.ErrInvalidCredentials),
		stdErrors.Is(err, usecaseErrors.ErrTokenInvalid),
		stdErrors.Is(err, usecaseErrors.ErrTokenExpired),
		stdErrors.Is(err, usecaseErrors.ErrSessionNotFound),
		stdErrors.Is(err, usecaseErrors.ErrSessionExpired),
		stdErrors.Is(err, usecaseErrors.ErrUserNotActive),
		stdErrors.Is(err, usecaseErrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case stdErrors.Is(err, usecaseErrors.ErrForbidden):
		status = http.StatusForbidden
	}

	return c.JSON(status, common.NewErrorResponse(message))
}

// respondBadRequest sends a 400 with the given message
func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, common.NewErrorResponse(message))
}

// bindAndValidate binds the request body and runs struct validation
func bindAndValidate(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return stdErrors.New("Invalid JSON")
	}
	if err := c.Validate(v); err != nil {
		return err
	}
	return nil
}

// currentUser retrieves the authenticated user set by the auth middleware
func currentUser(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get("user").(*entities.User)
	return user, ok
}
