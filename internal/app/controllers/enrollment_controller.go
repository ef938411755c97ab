package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/helpers"
)

// EnrollmentController handles student-course enrollments.
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// Create enrolls a student in a course
// @Summary Create enrollment
// @Description Fails with 400 when the course is full or the student is already enrolled
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.CreateEnrollmentRequest true "Enrollment data"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 400 {object} dto.ErrorResponse "Course full or duplicate enrollment"
// @Router /enrollments [post]
func (c *EnrollmentController) Create(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	enrollment, err := c.enrollmentService.Create(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, enrollment)
}

// Get retrieves an enrollment
// @Summary Get enrollment
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} models.Enrollment
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, enrollment)
}

// List retrieves enrollments
// @Summary List enrollments
// @Tags enrollments
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param studentId query int false "Student filter"
// @Param courseId query int false "Course filter"
// @Success 200 {object} dto.ListResponse
// @Router /enrollments [get]
func (c *EnrollmentController) List(ctx *gin.Context) {
	filter := parseFilter(ctx)
	studentID, ok := queryInt64Ptr(ctx, "studentId")
	if !ok {
		return
	}
	courseID, ok := queryInt64Ptr(ctx, "courseId")
	if !ok {
		return
	}

	enrollments, total, err := c.enrollmentService.List(ctx.Request.Context(), middleware.SchoolID(ctx), filter, studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewListResponse(enrollments, total, filter.Page, filter.Limit))
}

// Update changes the enrollment status
// @Summary Update enrollment
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param request body dto.UpdateEnrollmentRequest true "New status"
// @Success 200 {object} models.Enrollment
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/{id} [put]
func (c *EnrollmentController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	enrollment, err := c.enrollmentService.UpdateStatus(ctx.Request.Context(), middleware.SchoolID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, enrollment)
}

// Delete removes an enrollment record
// @Summary Delete enrollment
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.enrollmentService.Delete(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Enrollment deleted"})
}
