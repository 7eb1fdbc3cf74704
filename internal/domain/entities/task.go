package entities

import "time"

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid checks if the task status is a known value
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid checks if the task priority is a known value
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task represents a follow-up item attached to a contact or deal
type Task struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`

	ContactID *uint    `gorm:"index" json:"contact,omitempty"`
	Contact   *Contact `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"-"`
	DealID    *uint    `gorm:"index" json:"deal,omitempty"`
	Deal      *Deal    `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// IsOverdue reports whether the task has a due date in the past and is not done
func (t *Task) IsOverdue() bool {
	return t.DueDate != nil && t.DueDate.Before(time.Now()) && t.Status != TaskStatusCompleted
}
