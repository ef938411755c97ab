package models

import "time"

// StudentStatus is the lifecycle state of a student record. Students are
// soft-disabled through this status rather than deleted.
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentInactive  StudentStatus = "inactive"
	StudentGraduated StudentStatus = "graduated"
)

// Valid reports whether s is a known student status.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentActive, StudentInactive, StudentGraduated:
		return true
	}
	return false
}

// Student defines the student model based on the 'students' table.
// Code is the human-readable natural key ("STU-001"); code and email are
// unique within a school.
type Student struct {
	ID          int64         `json:"id" db:"id"`
	SchoolID    int64         `json:"schoolId" db:"school_id"`
	Code        string        `json:"code" db:"code" example:"STU-001"`
	FirstName   string        `json:"firstName" db:"first_name"`
	LastName    string        `json:"lastName" db:"last_name"`
	Email       string        `json:"email" db:"email"`
	Phone       *string       `json:"phone,omitempty" db:"phone"`
	BirthDate   Date          `json:"birthDate,omitempty" db:"birth_date"`
	Status      StudentStatus `json:"status" db:"status" example:"active"`
	GuardianID  *int64        `json:"guardianId,omitempty" db:"guardian_id"`
	UserID      *int64        `json:"userId,omitempty" db:"user_id"` // optional login account
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`

	Guardian *Guardian `json:"guardian,omitempty"` // Relation, no db tag
}
