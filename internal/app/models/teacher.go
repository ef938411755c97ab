package models

import "time"

// TeacherStatus is the lifecycle state of a teacher record.
type TeacherStatus string

const (
	TeacherActive   TeacherStatus = "active"
	TeacherInactive TeacherStatus = "inactive"
	TeacherOnLeave  TeacherStatus = "on_leave"
)

// Valid reports whether s is a known teacher status.
func (s TeacherStatus) Valid() bool {
	switch s {
	case TeacherActive, TeacherInactive, TeacherOnLeave:
		return true
	}
	return false
}

// Teacher defines the teacher model based on the 'teachers' table.
// Code ("TCH-001") and email are unique within a school.
type Teacher struct {
	ID        int64         `json:"id" db:"id"`
	SchoolID  int64         `json:"schoolId" db:"school_id"`
	Code      string        `json:"code" db:"code" example:"TCH-001"`
	FirstName string        `json:"firstName" db:"first_name"`
	LastName  string        `json:"lastName" db:"last_name"`
	Email     string        `json:"email" db:"email"`
	Phone     *string       `json:"phone,omitempty" db:"phone"`
	Subject   *string       `json:"subject,omitempty" db:"subject"`
	HireDate  Date          `json:"hireDate,omitempty" db:"hire_date"`
	Status    TeacherStatus `json:"status" db:"status" example:"active"`
	UserID    *int64        `json:"userId,omitempty" db:"user_id"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}
