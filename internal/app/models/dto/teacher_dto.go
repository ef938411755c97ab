package dto

import "github.com/RachidAzrou/madrassa-sub000/internal/app/models"

// CreateTeacherRequest is the body of POST /api/teachers.
type CreateTeacherRequest struct {
	Code      string      `json:"code" binding:"required"`
	FirstName string      `json:"firstName" binding:"required"`
	LastName  string      `json:"lastName" binding:"required"`
	Email     string      `json:"email" binding:"required,email"`
	Phone     *string     `json:"phone"`
	Subject   *string     `json:"subject"`
	HireDate  models.Date `json:"hireDate"`
	Status    string      `json:"status" binding:"omitempty,oneof=active inactive on_leave"`
}

// UpdateTeacherRequest is the partial-update body of PUT /api/teachers/:id.
type UpdateTeacherRequest struct {
	Code      *string      `json:"code"`
	FirstName *string      `json:"firstName"`
	LastName  *string      `json:"lastName"`
	Email     *string      `json:"email" binding:"omitempty,email"`
	Phone     *string      `json:"phone"`
	Subject   *string      `json:"subject"`
	HireDate  *models.Date `json:"hireDate"`
	Status    *string      `json:"status" binding:"omitempty,oneof=active inactive on_leave"`
}

// CreateGuardianRequest is the body of POST /api/guardians.
type CreateGuardianRequest struct {
	FirstName    string  `json:"firstName" binding:"required"`
	LastName     string  `json:"lastName" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        *string `json:"phone"`
	Relationship *string `json:"relationship" binding:"omitempty,oneof=parent grandparent sibling other"`
}

// UpdateGuardianRequest is the partial-update body of PUT /api/guardians/:id.
type UpdateGuardianRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	Relationship *string `json:"relationship" binding:"omitempty,oneof=parent grandparent sibling other"`
}
