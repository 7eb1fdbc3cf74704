package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
)

// contactRepository implements the ContactRepository interface
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) repositories.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *entities.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id uint) (*entities.Contact, error) {
	var contact entities.Contact
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("id = ?", id).
		First(&contact).Error

	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) FindByIDs(ctx context.Context, ids []uint) ([]*entities.Contact, error) {
	var contacts []*entities.Contact
	if len(ids) == 0 {
		return contacts, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&contacts).Error
	return contacts, err
}

func (r *contactRepository) FindByEmail(ctx context.Context, email string) (*entities.Contact, error) {
	var contact entities.Contact
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) List(ctx context.Context) ([]*entities.Contact, error) {
	var contacts []*entities.Contact
	err := r.db.WithContext(ctx).
		Preload("Company").
		Order("created_at DESC").
		Find(&contacts).Error
	return contacts, err
}

func (r *contactRepository) Update(ctx context.Context, contact *entities.Contact) error {
	return r.db.WithContext(ctx).Omit("Company").Save(contact).Error
}

// Delete removes the contact. Join rows in meeting_participants cascade away
// with it; meetings themselves are untouched.
func (r *contactRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Contact{}, id).Error
}

func (r *contactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Contact{}).Count(&count).Error
	return count, err
}
