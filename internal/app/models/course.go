package models

import "time"

// Course defines a course offering based on the 'courses' table. Code is
// the natural key, unique within a school. Enrolled is derived from the
// count of active enrollments and never stored.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	SchoolID    int64     `json:"schoolId" db:"school_id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code" example:"ARA-1A"`
	Description *string   `json:"description,omitempty" db:"description"`
	ProgramID   *int64    `json:"programId,omitempty" db:"program_id"`
	TeacherID   *int64    `json:"teacherId,omitempty" db:"teacher_id"`
	MaxCapacity int       `json:"maxCapacity" db:"max_capacity"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Enrolled int      `json:"enrolled"`           // derived, no db column
	Program  *Program `json:"program,omitempty"`  // Relation, no db tag
	Teacher  *Teacher `json:"teacher,omitempty"`  // Relation, no db tag
}
