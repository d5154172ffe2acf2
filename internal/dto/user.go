package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a user.
type CreateUserRequest struct {
	Username string      `json:"username" binding:"required,min=3,max=100"`
	Password string      `json:"password" binding:"required,min=8,max=72"`
	FullName string      `json:"fullName" binding:"required,max=255"`
	Email    string      `json:"email" binding:"omitempty,email"`
	Role     domain.Role `json:"role" binding:"required,user_role"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	FullName *string      `json:"fullName" binding:"omitempty,min=1,max=255"`
	Email    *string      `json:"email" binding:"omitempty,email"`
	Role     *domain.Role `json:"role" binding:"omitempty,user_role"`
	IsActive *bool        `json:"isActive"`
	Password *string      `json:"password" binding:"omitempty,min=8,max=72"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string      `json:"userID"`
	Username  string      `json:"username"`
	FullName  string      `json:"fullName"`
	Email     string      `json:"email,omitempty"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
