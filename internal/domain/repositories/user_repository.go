package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
}

// SessionRepository defines the interface for refresh-token sessions
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Session, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error)
	Update(ctx context.Context, session *entities.Session) error
	RevokeAllForUser(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}
