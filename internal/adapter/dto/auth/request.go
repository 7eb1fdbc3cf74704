package auth

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest represents the token refresh payload. The body is optional
// when the refresh token rides in the cookie instead.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest represents the logout payload
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
