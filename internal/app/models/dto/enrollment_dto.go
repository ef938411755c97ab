package dto

import "github.com/RachidAzrou/madrassa-sub000/internal/app/models"

// CreateEnrollmentRequest is the body of POST /api/enrollments.
type CreateEnrollmentRequest struct {
	StudentID  int64       `json:"studentId" binding:"required,gt=0"`
	CourseID   int64       `json:"courseId" binding:"required,gt=0"`
	EnrolledAt models.Date `json:"enrolledAt"`
}

// UpdateEnrollmentRequest changes the status of an enrollment.
type UpdateEnrollmentRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=active completed dropped"`
}

// RecordAttendanceRequest is the body of POST /api/attendance. Recording
// the same (student, course, date) twice overwrites the earlier mark.
type RecordAttendanceRequest struct {
	StudentID int64       `json:"studentId" binding:"required,gt=0"`
	CourseID  int64       `json:"courseId" binding:"required,gt=0"`
	Date      models.Date `json:"date" binding:"required"`
	Status    string      `json:"status" binding:"required,oneof=present absent late excused"`
	Notes     *string     `json:"notes"`
}

// RecordTeacherAttendanceRequest is the body of POST /api/teacher-attendance.
type RecordTeacherAttendanceRequest struct {
	TeacherID int64       `json:"teacherId" binding:"required,gt=0"`
	Date      models.Date `json:"date" binding:"required"`
	Status    string      `json:"status" binding:"required,oneof=present absent late excused"`
	Notes     *string     `json:"notes"`
}

// CreateGradeRequest is the body of POST /api/grades.
type CreateGradeRequest struct {
	StudentID  int64       `json:"studentId" binding:"required,gt=0"`
	CourseID   int64       `json:"courseId" binding:"required,gt=0"`
	Assessment string      `json:"assessment" binding:"required"`
	Score      *float64    `json:"score" binding:"required,gte=0"`
	MaxScore   float64     `json:"maxScore" binding:"required,gt=0"`
	Weight     *float64    `json:"weight" binding:"omitempty,gt=0"`
	Date       models.Date `json:"date"`
	Notes      *string     `json:"notes"`
}

// UpdateGradeRequest is the partial-update body of PUT /api/grades/:id.
type UpdateGradeRequest struct {
	Assessment *string      `json:"assessment"`
	Score      *float64     `json:"score" binding:"omitempty,gte=0"`
	MaxScore   *float64     `json:"maxScore" binding:"omitempty,gt=0"`
	Weight     *float64     `json:"weight" binding:"omitempty,gt=0"`
	Date       *models.Date `json:"date"`
	Notes      *string      `json:"notes"`
}
