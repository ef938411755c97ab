package models

import "time"

// School defines the tenant model based on the 'schools' table. Every
// tenant-scoped entity carries a school_id referencing this table.
type School struct {
	ID             int64     `json:"id" db:"id" example:"1"`
	Name           string    `json:"name" db:"name" example:"Al Fath Brussel"`
	Address        *string   `json:"address,omitempty" db:"address"`
	Phone          *string   `json:"phone,omitempty" db:"phone"`
	Email          *string   `json:"email,omitempty" db:"email"`
	AllowDeletion  bool      `json:"allowDeletion" db:"allow_deletion"`
	EnablePayments bool      `json:"enablePayments" db:"enable_payments"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}
