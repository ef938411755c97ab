package dto

// CreateProgramRequest is the body of POST /api/programs.
type CreateProgramRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Description *string `json:"description"`
	Duration    int     `json:"duration" binding:"required,gt=0"`
	Department  *string `json:"department"`
}

// UpdateProgramRequest is the partial-update body of PUT /api/programs/:id.
type UpdateProgramRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration" binding:"omitempty,gt=0"`
	Department  *string `json:"department"`
}

// CreateCourseRequest is the body of POST /api/courses.
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Description *string `json:"description"`
	ProgramID   *int64  `json:"programId"`
	TeacherID   *int64  `json:"teacherId"`
	MaxCapacity int     `json:"maxCapacity" binding:"required,gt=0"`
}

// UpdateCourseRequest is the partial-update body of PUT /api/courses/:id.
type UpdateCourseRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	ProgramID   *int64  `json:"programId"`
	TeacherID   *int64  `json:"teacherId"`
	MaxCapacity *int    `json:"maxCapacity" binding:"omitempty,gt=0"`
}
