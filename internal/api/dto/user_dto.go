package dto

import (
	"time"

	"github.com/prodline/workorder-tracker/internal/domain"
)

// UpdateRoleRequest payload.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role"`
}

// UpdateAccessRequest payload.
type UpdateAccessRequest struct {
	AccessGranted bool `json:"access_granted"`
}

// UpdateProfileRequest payload.
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
}

// UserResponse representation.
type UserResponse struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	FullName      string      `json:"full_name"`
	Role          domain.Role `json:"role"`
	AccessGranted bool        `json:"access_granted"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
