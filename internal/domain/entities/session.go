package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session represents a refresh-token session
type Session struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	UserID       uint       `json:"user_id" gorm:"not null;index"`
	RefreshToken string     `json:"-" gorm:"column:refresh_token;type:text;uniqueIndex;not null"` // SHA-256 hash, never the raw token
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	ExpiresAt    time.Time  `json:"expires_at" gorm:"type:timestamp;not null;index"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty" gorm:"type:timestamp"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty" gorm:"type:timestamp"`
}

// TableName specifies the table name for Session
func (Session) TableName() string {
	return "sessions"
}

// NewSession creates a new session
func NewSession(userID uint, refreshTokenHash string, expiresAt time.Time) *Session {
	return &Session{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: refreshTokenHash,
		ExpiresAt:    expiresAt,
		CreatedAt:    time.Now(),
	}
}

// IsExpired checks if session is expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsValid checks if session is valid (not expired and not revoked)
func (s *Session) IsValid() bool {
	if s == nil {
		return false
	}
	return !s.IsExpired() && s.RevokedAt == nil
}

// Revoke revokes the session
func (s *Session) Revoke() {
	now := time.Now()
	s.RevokedAt = &now
}

// UpdateLastUsed updates the last used timestamp
func (s *Session) UpdateLastUsed() {
	now := time.Now()
	s.LastUsedAt = &now
}
