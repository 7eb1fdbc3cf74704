package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
)

// companyRepository implements the CompanyRepository interface
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) repositories.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *entities.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) FindByID(ctx context.Context, id uint) (*entities.Company, error) {
	var company entities.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]*entities.Company, error) {
	var companies []*entities.Company
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&companies).Error
	return companies, err
}

func (r *companyRepository) Update(ctx context.Context, company *entities.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete removes the company. Referencing meetings and contacts keep their
// rows with the reference nulled out.
func (r *companyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Company{}, id).Error
}

func (r *companyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Company{}).Count(&count).Error
	return count, err
}
