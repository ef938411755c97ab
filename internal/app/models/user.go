package models

import (
	"time"
)

// Role is the canonical role scheme. Superadmin is the only cross-tenant
// role; every other role belongs to exactly one school.
type Role string

const (
	RoleSuperadmin  Role = "superadmin"
	RoleAdmin       Role = "admin"
	RoleSecretariat Role = "secretariat"
	RoleTeacher     Role = "teacher"
	RoleGuardian    Role = "guardian"
	RoleStudent     Role = "student"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleSecretariat, RoleTeacher, RoleGuardian, RoleStudent:
		return true
	}
	return false
}

// CrossTenant reports whether the role may read data across schools.
func (r Role) CrossTenant() bool {
	return r == RoleSuperadmin
}

// IsStaff reports whether the role may manage school records.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSecretariat
}

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"admin@mymadrassa.be"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	FirstName   string     `json:"firstName" db:"first_name" example:"Yousra"`
	LastName    string     `json:"lastName" db:"last_name" example:"Azrou"`
	Role        Role       `json:"role" db:"role" example:"admin"`
	SchoolID    *int64     `json:"schoolId" db:"school_id"` // NULL only for superadmin
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	School *School `json:"school,omitempty"` // Relation, no db tag
}

// FullName returns first and last name joined for display and logs.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
