package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/crm-backend/internal/usecase/errors"
	"github.com/johnquangdev/crm-backend/pkg/jwt"
)

type memUserRepo struct {
	byEmail map[string]*entities.User
	byID    map[uint]*entities.User
}

func newMemUserRepo(users ...*entities.User) *memUserRepo {
	r := &memUserRepo{byEmail: map[string]*entities.User{}, byID: map[uint]*entities.User{}}
	for _, u := range users {
		r.byEmail[u.Email] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u *entities.User) error {
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uint) (*entities.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entities.User) error {
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return nil
}

type memSessionRepo struct {
	byHash map[string]*entities.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{byHash: map[string]*entities.Session{}}
}

func (r *memSessionRepo) Create(_ context.Context, s *entities.Session) error {
	r.byHash[s.RefreshToken] = s
	return nil
}

func (r *memSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Session, error) {
	for _, s := range r.byHash {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, entities.ErrSessionNotFound
}

func (r *memSessionRepo) FindByTokenHash(_ context.Context, hash string) (*entities.Session, error) {
	s, ok := r.byHash[hash]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return s, nil
}

func (r *memSessionRepo) Update(_ context.Context, s *entities.Session) error {
	r.byHash[s.RefreshToken] = s
	return nil
}

func (r *memSessionRepo) RevokeAllForUser(_ context.Context, userID uint) error {
	for _, s := range r.byHash {
		if s.UserID == userID {
			s.Revoke()
		}
	}
	return nil
}

func (r *memSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func newAuthService(t *testing.T, users ...*entities.User) (*AuthService, *memSessionRepo) {
	t.Helper()
	sessions := newMemSessionRepo()
	manager := jwt.NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(newMemUserRepo(users...), sessions, manager, zap.NewNop()), sessions
}

func testUser(t *testing.T, password string, active bool) *entities.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &entities.User{
		ID:           7,
		Email:        "agent@example.com",
		Name:         "Agent Smith",
		PasswordHash: string(hash),
		IsActive:     active,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := testUser(t, "opensesame", true)
	service, sessions := newAuthService(t, user)

	pair, got, err := service.Login(context.Background(), user.Email, "opensesame")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("user id = %d, want %d", got.ID, user.ID)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token pair")
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Fatalf("expires_in = %d", pair.ExpiresIn)
	}
	if len(sessions.byHash) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions.byHash))
	}
	if user.LastLoginAt == nil {
		t.Fatal("last login not recorded")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := testUser(t, "opensesame", true)
	service, _ := newAuthService(t, user)

	if _, _, err := service.Login(context.Background(), user.Email, "wrong"); !errors.Is(err, usecaseErrors.ErrInvalidCredentials) {
		t.Fatalf("got %v, want invalid credentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service, _ := newAuthService(t)

	// Unknown accounts get the same error as a bad password.
	if _, _, err := service.Login(context.Background(), "nobody@example.com", "whatever"); !errors.Is(err, usecaseErrors.ErrInvalidCredentials) {
		t.Fatalf("got %v, want invalid credentials", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	user := testUser(t, "opensesame", false)
	service, _ := newAuthService(t, user)

	if _, _, err := service.Login(context.Background(), user.Email, "opensesame"); !errors.Is(err, usecaseErrors.ErrUserNotActive) {
		t.Fatalf("got %v, want user not active", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	user := testUser(t, "opensesame", true)
	service, sessions := newAuthService(t, user)

	pair, _, err := service.Login(context.Background(), user.Email, "opensesame")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	next, err := service.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}

	// Old session is revoked and a new one exists.
	if len(sessions.byHash) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions.byHash))
	}
	if _, err := service.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, usecaseErrors.ErrSessionExpired) {
		t.Fatalf("got %v, want session expired on replay", err)
	}
}

func TestRefreshGarbageToken(t *testing.T) {
	service, _ := newAuthService(t)

	if _, err := service.Refresh(context.Background(), "not-a-jwt"); !errors.Is(err, usecaseErrors.ErrTokenInvalid) {
		t.Fatalf("got %v, want token invalid", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	user := testUser(t, "opensesame", true)
	service, _ := newAuthService(t, user)

	pair, _, err := service.Login(context.Background(), user.Email, "opensesame")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := service.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := service.Refresh(context.Background(), pair.RefreshToken); err == nil {
		t.Fatal("refresh succeeded after logout")
	}
}

func TestLogoutUnknownTokenIsNoop(t *testing.T) {
	service, _ := newAuthService(t)

	if err := service.Logout(context.Background(), "unknown"); err != nil {
		t.Fatalf("logout of unknown token must be a noop, got %v", err)
	}
}

func TestValidateSession(t *testing.T) {
	user := testUser(t, "opensesame", true)
	service, _ := newAuthService(t, user)

	pair, _, err := service.Login(context.Background(), user.Email, "opensesame")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	got, err := service.ValidateSession(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("user id = %d, want %d", got.ID, user.ID)
	}

	if _, err := service.ValidateSession(context.Background(), "garbage"); !errors.Is(err, usecaseErrors.ErrTokenInvalid) {
		t.Fatalf("got %v, want token invalid", err)
	}
}
