package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
)

// dealRepository implements the DealRepository interface
type dealRepository struct {
	db *gorm.DB
}

// NewDealRepository creates a new deal repository
func NewDealRepository(db *gorm.DB) repositories.DealRepository {
	return &dealRepository{db: db}
}

func (r *dealRepository) Create(ctx context.Context, deal *entities.Deal) error {
	return r.db.WithContext(ctx).Omit("Company", "Contact").Create(deal).Error
}

func (r *dealRepository) FindByID(ctx context.Context, id uint) (*entities.Deal, error) {
	var deal entities.Deal
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Contact").
		Where("id = ?", id).
		First(&deal).Error

	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *dealRepository) List(ctx context.Context) ([]*entities.Deal, error) {
	var deals []*entities.Deal
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Contact").
		Order("created_at DESC").
		Find(&deals).Error
	return deals, err
}

func (r *dealRepository) Update(ctx context.Context, deal *entities.Deal) error {
	return r.db.WithContext(ctx).Omit("Company", "Contact").Save(deal).Error
}

// Delete removes the deal. Meetings that referenced it keep their rows with
// deal_id nulled out.
func (r *dealRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Deal{}, id).Error
}

func (r *dealRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Deal{}).Count(&count).Error
	return count, err
}

// SumOpenAmount sums the amounts of deals not yet won or lost
func (r *dealRepository) SumOpenAmount(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entities.Deal{}).
		Where("stage NOT IN ?", []entities.DealStage{entities.DealStageWon, entities.DealStageLost}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
