package identity

import (
	"time"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginRequest carries login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the user profile
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest carries a new user's details
type CreateUserRequest struct {
	Username    string          `json:"username" binding:"required,min=3,max=100"`
	Password    string          `json:"password" binding:"required,min=8,max=72"`
	DisplayName string          `json:"display_name" binding:"max=200"`
	Roles       []identity.Role `json:"roles" binding:"required,min=1"`
	BranchIDs   []uuid.UUID     `json:"branch_ids"`
}

// UpdateUserRequest carries mutable user fields
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Password    *string `json:"password,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// UserResponse is the outward view of a user
type UserResponse struct {
	ID          uuid.UUID       `json:"id"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	IsActive    bool            `json:"is_active"`
	Roles       []identity.Role `json:"roles"`
	BranchIDs   []uuid.UUID     `json:"branch_ids"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToUserResponse converts a user aggregate to its response form
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.GetID(),
		Username:    user.Username,
		DisplayName: user.DisplayName,
		IsActive:    user.IsActive,
		Roles:       user.Roles,
		BranchIDs:   user.BranchIDs(),
		CreatedAt:   user.GetCreatedAt(),
		UpdatedAt:   user.GetUpdatedAt(),
	}
}

// CreateBranchRequest carries a new branch's details
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Code    string `json:"code" binding:"required,max=20"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateBranchRequest carries mutable branch fields
type UpdateBranchRequest struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// BranchResponse is the outward view of a branch
type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBranchResponse converts a branch aggregate to its response form
func ToBranchResponse(branch *identity.Branch) BranchResponse {
	return BranchResponse{
		ID:        branch.GetID(),
		Name:      branch.Name,
		Code:      branch.Code,
		Address:   branch.Address,
		IsActive:  branch.IsActive,
		CreatedAt: branch.GetCreatedAt(),
		UpdatedAt: branch.GetUpdatedAt(),
	}
}
