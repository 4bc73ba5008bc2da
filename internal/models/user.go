package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role represents a user's role in the system
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AdminLevel distinguishes regular admins from super admins
type AdminLevel string

const (
	AdminLevelAdmin      AdminLevel = "admin"
	AdminLevelSuperAdmin AdminLevel = "super_admin"
)

// User represents a back-office account
type User struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Email        string      `json:"email" db:"email"`
	PasswordHash string      `json:"-" db:"password_hash"`
	Name         string      `json:"name" db:"name"`
	Role         Role        `json:"role" db:"role"`
	AdminLevel   *AdminLevel `json:"admin_level,omitempty" db:"admin_level"`
	CreatedBy    *uuid.UUID  `json:"created_by,omitempty" db:"created_by"`
	IsActive     bool        `json:"is_active" db:"is_active"`
	LastLogin    *time.Time  `json:"last_login,omitempty" db:"last_login"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

// IsAdmin checks if the user holds an admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSuperAdmin checks if the user is a super admin
func (u *User) IsSuperAdmin() bool {
	return u.AdminLevel != nil && *u.AdminLevel == AdminLevelSuperAdmin
}

// LoginRequest represents an admin login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse carries the token pair issued on successful login
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         *User  `json:"user"`
}

// CreateUserRequest represents a super admin creating a team member
type CreateUserRequest struct {
	Email      string     `json:"email" binding:"required,email"`
	Password   string     `json:"password" binding:"required,min=8"`
	Name       string     `json:"name" binding:"required"`
	AdminLevel AdminLevel `json:"admin_level,omitempty"`
}

// Validate validates the create user request
func (r *CreateUserRequest) Validate() error {
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	if r.AdminLevel != "" && r.AdminLevel != AdminLevelAdmin && r.AdminLevel != AdminLevelSuperAdmin {
		return errors.New("admin_level must be admin or super_admin")
	}

	return nil
}

// ChangePasswordRequest replaces the authenticated admin's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UpdateUserActiveRequest toggles a team member's active flag
type UpdateUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
