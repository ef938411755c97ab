package models

import "time"

// Program defines a catalog program ("Arabisch niveau 1") based on the
// 'programs' table. Code is the natural key, unique within a school.
type Program struct {
	ID          int64     `json:"id" db:"id"`
	SchoolID    int64     `json:"schoolId" db:"school_id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code" example:"ARA-1"`
	Description *string   `json:"description,omitempty" db:"description"`
	Duration    int       `json:"duration" db:"duration"` // years
	Department  *string   `json:"department,omitempty" db:"department"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
