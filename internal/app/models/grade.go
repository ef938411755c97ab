package models

import "time"

// Grade is a per-assessment result based on the 'grades' table.
type Grade struct {
	ID         int64     `json:"id" db:"id"`
	SchoolID   int64     `json:"schoolId" db:"school_id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	Assessment string    `json:"assessment" db:"assessment" example:"Toets hoofdstuk 3"`
	Score      float64   `json:"score" db:"score"`
	MaxScore   float64   `json:"maxScore" db:"max_score"`
	Weight     float64   `json:"weight" db:"weight"`
	Date       Date      `json:"date" db:"date"`
	Notes      *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
