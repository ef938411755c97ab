package dto

import "github.com/RachidAzrou/madrassa-sub000/internal/app/models"

// CreateStudentRequest is the body of POST /api/students.
type CreateStudentRequest struct {
	Code       string      `json:"code" binding:"required"`
	FirstName  string      `json:"firstName" binding:"required"`
	LastName   string      `json:"lastName" binding:"required"`
	Email      string      `json:"email" binding:"required,email"`
	Phone      *string     `json:"phone"`
	BirthDate  models.Date `json:"birthDate"`
	Status     string      `json:"status" binding:"omitempty,oneof=active inactive graduated"`
	GuardianID *int64      `json:"guardianId"`
}

// UpdateStudentRequest is the partial-update body of PUT /api/students/:id.
type UpdateStudentRequest struct {
	Code       *string      `json:"code"`
	FirstName  *string      `json:"firstName"`
	LastName   *string      `json:"lastName"`
	Email      *string      `json:"email" binding:"omitempty,email"`
	Phone      *string      `json:"phone"`
	BirthDate  *models.Date `json:"birthDate"`
	Status     *string      `json:"status" binding:"omitempty,oneof=active inactive graduated"`
	GuardianID *int64       `json:"guardianId"`
}
