package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/helpers"
)

// CourseController handles course offerings.
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// Create adds a course
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} models.Course
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 400 {object} dto.ErrorResponse "Course code already exists"
// @Router /courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	course, err := c.courseService.Create(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// Get retrieves a course with its enrolled count
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// List retrieves courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Name or code search"
// @Param programId query int false "Program filter"
// @Param teacherId query int false "Teacher filter"
// @Success 200 {object} dto.ListResponse
// @Router /courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	filter := parseFilter(ctx)
	programID, ok := queryInt64Ptr(ctx, "programId")
	if !ok {
		return
	}
	teacherID, ok := queryInt64Ptr(ctx, "teacherId")
	if !ok {
		return
	}

	courses, total, err := c.courseService.List(ctx.Request.Context(), middleware.SchoolID(ctx), filter, programID, teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewListResponse(courses, total, filter.Page, filter.Limit))
}

// Update partially updates a course
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} models.Course
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 400 {object} dto.ErrorResponse "Course code already exists"
// @Router /courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	course, err := c.courseService.Update(ctx.Request.Context(), middleware.SchoolID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// Delete removes a course
// @Summary Delete course
// @Description Fails with 400 while enrollments still reference the course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 400 {object} dto.ErrorResponse "Course still has enrollments"
// @Router /courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Course deleted"})
}
