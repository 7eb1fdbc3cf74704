package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authDto "github.com/johnquangdev/crm-backend/internal/adapter/dto/auth"
	"github.com/johnquangdev/crm-backend/internal/adapter/presenter"
	authUsecase "github.com/johnquangdev/crm-backend/internal/usecase/auth"
	usecaseErrors "github.com/johnquangdev/crm-backend/internal/usecase/errors"
)

// Auth handles authentication HTTP requests
type Auth struct {
	authService *authUsecase.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *authUsecase.AuthService) *Auth {
	return &Auth{
		authService: authService,
	}
}

// Login handles POST /v1/auth/login
func (h *Auth) Login(c echo.Context) error {
	var req authDto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	tokens, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	setRefreshCookie(c, tokens.RefreshToken)

	return c.JSON(http.StatusOK, authDto.LoginResponse{
		User: presenter.PresentUser(user),
		Tokens: &authDto.TokenResponse{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    tokens.ExpiresIn,
		},
	})
}

// Refresh handles POST /v1/auth/refresh
func (h *Auth) Refresh(c echo.Context) error {
	token := refreshTokenFrom(c)
	if token == "" {
		return respondError(c, usecaseErrors.ErrTokenInvalid)
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		return respondError(c, err)
	}

	setRefreshCookie(c, tokens.RefreshToken)

	return c.JSON(http.StatusOK, authDto.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    tokens.ExpiresIn,
	})
}

// Logout handles POST /v1/auth/logout
func (h *Auth) Logout(c echo.Context) error {
	if token := refreshTokenFrom(c); token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			return respondError(c, err)
		}
	}

	clearRefreshCookie(c)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

// Me handles GET /v1/auth/me. Requires the auth middleware.
func (h *Auth) Me(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return respondError(c, usecaseErrors.ErrUnauthorized)
	}
	return c.JSON(http.StatusOK, presenter.PresentUser(user))
}

// refreshTokenFrom pulls the refresh token from the body, falling back to
// the cookie set at login.
func refreshTokenFrom(c echo.Context) string {
	var req authDto.RefreshRequest
	if err := c.Bind(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	if cookie, err := c.Cookie("refresh_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/v1/auth",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:   "refresh_token",
		Value:  "",
		Path:   "/v1/auth",
		MaxAge: -1,
	})
}
