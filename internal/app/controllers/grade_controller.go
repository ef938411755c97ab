package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/helpers"
)

// GradeController handles per-assessment grades.
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// Create records a grade
// @Summary Create grade
// @Tags grades
// @Accept json
// @Produce json
// @Param request body dto.CreateGradeRequest true "Grade data"
// @Success 201 {object} models.Grade
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Router /grades [post]
func (c *GradeController) Create(ctx *gin.Context) {
	var req dto.CreateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	grade, err := c.gradeService.Create(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, grade)
}

// Get retrieves a grade
// @Summary Get grade
// @Tags grades
// @Produce json
// @Param id path int true "Grade ID"
// @Success 200 {object} models.Grade
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{id} [get]
func (c *GradeController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	grade, err := c.gradeService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grade)
}

// List retrieves grades
// @Summary List grades
// @Tags grades
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Assessment search"
// @Param studentId query int false "Student filter"
// @Param courseId query int false "Course filter"
// @Success 200 {object} dto.ListResponse
// @Router /grades [get]
func (c *GradeController) List(ctx *gin.Context) {
	filter := parseFilter(ctx)
	studentID, ok := queryInt64Ptr(ctx, "studentId")
	if !ok {
		return
	}
	courseID, ok := queryInt64Ptr(ctx, "courseId")
	if !ok {
		return
	}

	grades, total, err := c.gradeService.List(ctx.Request.Context(), middleware.SchoolID(ctx), filter, studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewListResponse(grades, total, filter.Page, filter.Limit))
}

// Update partially updates a grade
// @Summary Update grade
// @Tags grades
// @Accept json
// @Produce json
// @Param id path int true "Grade ID"
// @Param request body dto.UpdateGradeRequest true "Fields to change"
// @Success 200 {object} models.Grade
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{id} [put]
func (c *GradeController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	grade, err := c.gradeService.Update(ctx.Request.Context(), middleware.SchoolID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grade)
}

// Delete removes a grade
// @Summary Delete grade
// @Tags grades
// @Produce json
// @Param id path int true "Grade ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{id} [delete]
func (c *GradeController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.gradeService.Delete(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Grade deleted"})
}
