package dto

import (
	"time"

	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
)

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed token plus the minimum the client needs
// to route to the correct dashboard.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest registers a new account. OrganizationID is required for
// treasurers and ignored for the reviewer roles.
type CreateUserRequest struct {
	Username       string `json:"username" binding:"required"`
	Password       string `json:"password" binding:"required,min=8"`
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Role           string `json:"role" binding:"required"`
	OrganizationID string `json:"organization_id"`
}

// UpdateUserRequest updates mutable account fields; nil fields are ignored.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// UserResponse is the wire shape of an account.
type UserResponse struct {
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Role           string    `json:"role"`
	OrganizationID string    `json:"organization_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListUsersResponse wraps the user listing.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain User to its wire shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:         u.UserID,
		Username:       u.Username,
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		OrganizationID: u.OrganizationID,
		CreatedAt:      u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
