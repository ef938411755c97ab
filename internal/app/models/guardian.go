package models

import "time"

// Guardian defines the guardian model based on the 'guardians' table.
// Email is unique within a school; a guardian may be linked to several
// students.
type Guardian struct {
	ID           int64     `json:"id" db:"id"`
	SchoolID     int64     `json:"schoolId" db:"school_id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Relationship *string   `json:"relationship,omitempty" db:"relationship" example:"parent"`
	UserID       *int64    `json:"userId,omitempty" db:"user_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
