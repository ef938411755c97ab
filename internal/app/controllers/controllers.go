package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/helpers"
)

// Controllers is the container for all controller instances.
type Controllers struct {
	Auth       *AuthController
	Users      *UserController
	Schools    *SchoolController
	Students   *StudentController
	Teachers   *TeacherController
	Guardians  *GuardianController
	Programs   *ProgramController
	Courses    *CourseController
	Enrollment *EnrollmentController
	Attendance *AttendanceController
	Grades     *GradeController
	Billing    *BillingController
	Schedule   *ScheduleController
	Dashboard  *DashboardController
}

// NewControllers wires every controller onto the service container.
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		Auth:       NewAuthController(svcs.Auth),
		Users:      NewUserController(svcs.Users),
		Schools:    NewSchoolController(svcs.Schools),
		Students:   NewStudentController(svcs.Students),
		Teachers:   NewTeacherController(svcs.Teachers),
		Guardians:  NewGuardianController(svcs.Guardians),
		Programs:   NewProgramController(svcs.Programs),
		Courses:    NewCourseController(svcs.Courses),
		Enrollment: NewEnrollmentController(svcs.Enrollment),
		Attendance: NewAttendanceController(svcs.Attendance),
		Grades:     NewGradeController(svcs.Grades),
		Billing:    NewBillingController(svcs.Billing),
		Schedule:   NewScheduleController(svcs.Schedule),
		Dashboard:  NewDashboardController(svcs.Stats),
	}
}

// parseIDParam reads the :id path parameter. On failure it writes the 400
// body and reports false.
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// queryInt64Ptr reads an optional int64 query parameter, nil when absent.
func queryInt64Ptr(ctx *gin.Context, name string) (*int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(name+" must be a positive integer"))
		return nil, false
	}
	return &v, true
}

// parseFilter assembles the common list filter from the query string.
func parseFilter(ctx *gin.Context) repositories.ListFilter {
	page, limit := helpers.ParseListParams(ctx)
	return repositories.ListFilter{
		Search: ctx.Query("search"),
		Status: ctx.Query("status"),
		Page:   page,
		Limit:  limit,
	}
}
