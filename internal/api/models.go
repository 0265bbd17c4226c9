package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/herobusana/tasktracker-api/internal/domain"
)

// Common request/response structures

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public view of a user, without credential fields.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// Token is the JWT bearer token used for API authorization
	Token string `json:"token"`

	// User is the authenticated user's profile
	User UserResponse `json:"user"`

	// ExpiresAt is the ISO 8601 timestamp when the token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// CreateTaskRequest defines the payload for creating a task.
// Status and priority are optional and default to Not_Started / Medium.
type CreateTaskRequest struct {
	Title        string     `json:"title"        validate:"required"`
	Description  string     `json:"description"`
	AssignedTo   string     `json:"assigned_to"  validate:"required"`
	Status       string     `json:"status"       validate:"omitempty,oneof=Not_Started In_Progress Completed"`
	Priority     string     `json:"priority"`
	StartDate    *time.Time `json:"start_date"`
	DueDate      *time.Time `json:"due_date"`
}

// UpdateTaskRequest defines the payload for a partial task update.
// Absent fields keep their stored value.
type UpdateTaskRequest struct {
	Title        *string    `json:"title"         validate:"omitempty,min=1"`
	Description  *string    `json:"description"`
	AssignedTo   *string    `json:"assigned_to"   validate:"omitempty,min=1"`
	Status       *string    `json:"status"        validate:"omitempty,oneof=Not_Started In_Progress Completed"`
	Priority     *string    `json:"priority"`
	StartDate    *time.Time `json:"start_date"`
	DueDate      *time.Time `json:"due_date"`
	ChangeReason *string    `json:"change_reason"`
}

// DeleteTaskResponse confirms a successful deletion.
type DeleteTaskResponse struct {
	Message string `json:"message"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}
}
