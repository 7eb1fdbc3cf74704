package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/crm-backend/internal/usecase/errors"
	"github.com/johnquangdev/crm-backend/pkg/jwt"
)

// TokenPair holds a freshly issued access/refresh token pair
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

// AuthService handles login, token refresh and session validation
type AuthService struct {
	users      repositories.UserRepository
	sessions   repositories.SessionRepository
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	jwtManager *jwt.Manager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Login verifies credentials and issues a token pair. A session row holding
// the hashed refresh token is persisted so the token can be revoked later.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, *entities.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, nil, usecaseErrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, nil, usecaseErrors.ErrUserNotActive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, usecaseErrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	user.UpdateLastLogin()
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn("auth.login: failed to record last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	s.logger.Info("auth.login", zap.Uint("user_id", user.ID))
	return pair, user, nil
}

// Refresh rotates a refresh token: the presented token must match a live
// session, which is revoked and replaced by a new one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, usecaseErrors.ErrTokenInvalid
	}

	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, usecaseErrors.ErrTokenInvalid
	}

	session, err := s.sessions.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil, usecaseErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	if !session.IsValid() || session.UserID != userID {
		return nil, usecaseErrors.ErrSessionExpired
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, usecaseErrors.ErrUserNotActive
	}

	session.Revoke()
	session.UpdateLastUsed()
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the session backing the presented refresh token. Unknown
// tokens are not an error: the end state is the same.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil
	}

	session, err := s.sessions.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up session: %w", err)
	}

	session.Revoke()
	if err := s.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.logger.Info("auth.logout", zap.Uint("user_id", session.UserID))
	return nil
}

// ValidateSession validates an access token and returns the active user
func (s *AuthService) ValidateSession(ctx context.Context, accessToken string) (*entities.User, error) {
	claims, err := s.jwtManager.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, usecaseErrors.ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, usecaseErrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, usecaseErrors.ErrUserNotActive
	}

	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *entities.User) (*TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	session := entities.NewSession(user.ID, hash, time.Now().Add(s.jwtManager.GetRefreshExpiry()))
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}
