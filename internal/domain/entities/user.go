package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// User represents an authenticated CRM user
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string `json:"name" gorm:"type:varchar(255);not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;type:text;not null"` // Never expose in JSON
	IsActive     bool   `json:"is_active" gorm:"default:true;not null"`

	Timezone string `json:"timezone" gorm:"type:varchar(50);default:'UTC';not null"`

	// Preferences (stored as JSONB in PostgreSQL)
	NotificationPreferences datatypes.JSON `json:"notification_preferences" gorm:"type:jsonb;default:'{}'"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with default preferences
func NewUser(email, name, passwordHash string) *User {
	notifPrefs, _ := json.Marshal(map[string]interface{}{
		"email": true,
	})

	return &User{
		Email:                   email,
		Name:                    name,
		PasswordHash:            passwordHash,
		IsActive:                true,
		Timezone:                "UTC",
		NotificationPreferences: notifPrefs,
	}
}

// UpdateLastLogin updates the last login timestamp
func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

// WantsEmail reports whether the user has email notifications enabled.
// Missing or malformed preferences default to enabled.
func (u *User) WantsEmail() bool {
	if len(u.NotificationPreferences) == 0 {
		return true
	}
	var prefs map[string]interface{}
	if err := json.Unmarshal(u.NotificationPreferences, &prefs); err != nil {
		return true
	}
	if enabled, ok := prefs["email"].(bool); ok {
		return enabled
	}
	return true
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.Name == "" {
		return ErrInvalidName
	}
	return nil
}
