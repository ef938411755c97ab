package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/helpers"
)

// AttendanceController handles student and teacher attendance records.
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// queryDatePtr reads an optional date query parameter, nil when absent.
func queryDatePtr(ctx *gin.Context, name string) (*models.Date, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(name+" must be a date (YYYY-MM-DD)"))
		return nil, false
	}
	return &date, true
}

// Record upserts a student attendance mark
// @Summary Record attendance
// @Description Recording the same student, course and date twice overwrites the earlier mark
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.RecordAttendanceRequest true "Attendance mark"
// @Success 201 {object} models.Attendance
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Router /attendance [post]
func (c *AttendanceController) Record(ctx *gin.Context) {
	var req dto.RecordAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	attendance, err := c.attendanceService.Record(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, attendance)
}

// List retrieves student attendance records
// @Summary List attendance
// @Tags attendance
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param studentId query int false "Student filter"
// @Param courseId query int false "Course filter"
// @Param date query string false "Date filter (YYYY-MM-DD)"
// @Success 200 {object} dto.ListResponse
// @Router /attendance [get]
func (c *AttendanceController) List(ctx *gin.Context) {
	filter := parseFilter(ctx)
	studentID, ok := queryInt64Ptr(ctx, "studentId")
	if !ok {
		return
	}
	courseID, ok := queryInt64Ptr(ctx, "courseId")
	if !ok {
		return
	}
	date, ok := queryDatePtr(ctx, "date")
	if !ok {
		return
	}

	records, total, err := c.attendanceService.List(ctx.Request.Context(), middleware.SchoolID(ctx), filter, studentID, courseID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewListResponse(records, total, filter.Page, filter.Limit))
}

// Get retrieves a student attendance record
// @Summary Get attendance record
// @Tags attendance
// @Produce json
// @Param id path int true "Attendance ID"
// @Success 200 {object} models.Attendance
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Router /attendance/{id} [get]
func (c *AttendanceController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	attendance, err := c.attendanceService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attendance)
}

// Delete removes a student attendance record
// @Summary Delete attendance
// @Tags attendance
// @Produce json
// @Param id path int true "Attendance ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Router /attendance/{id} [delete]
func (c *AttendanceController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.attendanceService.Delete(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Attendance record deleted"})
}

// RecordTeacher upserts a teacher attendance mark
// @Summary Record teacher attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.RecordTeacherAttendanceRequest true "Attendance mark"
// @Success 201 {object} models.TeacherAttendance
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teacher-attendance [post]
func (c *AttendanceController) RecordTeacher(ctx *gin.Context) {
	var req dto.RecordTeacherAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	attendance, err := c.attendanceService.RecordTeacher(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, attendance)
}

// ListTeacher retrieves teacher attendance records
// @Summary List teacher attendance
// @Tags attendance
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param teacherId query int false "Teacher filter"
// @Param date query string false "Date filter (YYYY-MM-DD)"
// @Success 200 {object} dto.ListResponse
// @Router /teacher-attendance [get]
func (c *AttendanceController) ListTeacher(ctx *gin.Context) {
	filter := parseFilter(ctx)
	teacherID, ok := queryInt64Ptr(ctx, "teacherId")
	if !ok {
		return
	}
	date, ok := queryDatePtr(ctx, "date")
	if !ok {
		return
	}

	records, total, err := c.attendanceService.ListTeacher(ctx.Request.Context(), middleware.SchoolID(ctx), filter, teacherID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewListResponse(records, total, filter.Page, filter.Limit))
}

// DeleteTeacher removes a teacher attendance record
// @Summary Delete teacher attendance
// @Tags attendance
// @Produce json
// @Param id path int true "Attendance ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Router /teacher-attendance/{id} [delete]
func (c *AttendanceController) DeleteTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.attendanceService.DeleteTeacher(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Attendance record deleted"})
}
