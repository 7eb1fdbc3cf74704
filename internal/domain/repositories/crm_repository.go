package repositories

import (
	"context"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
)

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	Create(ctx context.Context, contact *entities.Contact) error
	FindByID(ctx context.Context, id uint) (*entities.Contact, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*entities.Contact, error)

	// FindByEmail resolves a contact by email address. This is how an
	// authenticated user is mapped to their own contact record.
	FindByEmail(ctx context.Context, email string) (*entities.Contact, error)

	List(ctx context.Context) ([]*entities.Contact, error)
	Update(ctx context.Context, contact *entities.Contact) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	Create(ctx context.Context, company *entities.Company) error
	FindByID(ctx context.Context, id uint) (*entities.Company, error)
	List(ctx context.Context) ([]*entities.Company, error)
	Update(ctx context.Context, company *entities.Company) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// DealRepository defines the interface for deal data access
type DealRepository interface {
	Create(ctx context.Context, deal *entities.Deal) error
	FindByID(ctx context.Context, id uint) (*entities.Deal, error)
	List(ctx context.Context) ([]*entities.Deal, error)
	Update(ctx context.Context, deal *entities.Deal) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)

	// SumOpenAmount sums the amounts of deals not yet won or lost
	SumOpenAmount(ctx context.Context) (float64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	FindByID(ctx context.Context, id uint) (*entities.Task, error)
	List(ctx context.Context) ([]*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, status entities.TaskStatus) (int64, error)
}
