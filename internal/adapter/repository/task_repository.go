package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
)

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *entities.Task) error {
	return r.db.WithContext(ctx).Omit("Contact", "Deal").Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("Deal").
		Where("id = ?", id).
		First(&task).Error

	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context) ([]*entities.Task, error) {
	var tasks []*entities.Task
	err := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("Deal").
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(ctx context.Context, task *entities.Task) error {
	return r.db.WithContext(ctx).Omit("Contact", "Deal").Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Task{}, id).Error
}

func (r *taskRepository) CountByStatus(ctx context.Context, status entities.TaskStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Task{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
