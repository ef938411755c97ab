package dto

import "time"

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileResponse is the authenticated user as returned by login and
// GET /api/auth/me. The password hash never leaves the server.
type ProfileResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Role        string     `json:"role"`
	SchoolID    *int64     `json:"schoolId"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// CreateUserRequest creates a login account (superadmin/admin only).
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=superadmin admin secretariat teacher guardian student"`
	SchoolID  *int64 `json:"schoolId"`
}

// UpdateUserRequest partially updates a login account.
type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role" binding:"omitempty,oneof=superadmin admin secretariat teacher guardian student"`
	SchoolID  *int64  `json:"schoolId"`
	IsActive  *bool   `json:"isActive"`
}
