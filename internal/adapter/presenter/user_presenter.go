package presenter

import (
	"github.com/johnquangdev/crm-backend/internal/adapter/dto/auth"
	"github.com/johnquangdev/crm-backend/internal/domain/entities"
)

// PresentUser converts a user entity to its response projection
func PresentUser(u *entities.User) *auth.UserResponse {
	return &auth.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Timezone:    u.Timezone,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
