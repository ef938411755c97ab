package services

import (
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/auth"
)

// Services is the container for all service instances, built once at
// startup and injected into controllers.
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Schools    *SchoolService
	Students   *StudentService
	Teachers   *TeacherService
	Guardians  *GuardianService
	Programs   *ProgramService
	Courses    *CourseService
	Enrollment *EnrollmentService
	Attendance *AttendanceService
	Grades     *GradeService
	Billing    *BillingService
	Schedule   *ScheduleService
	Stats      *StatsService
}

// NewServices wires every service onto the repository container.
func NewServices(repos *repositories.Repositories, sessionCfg auth.SessionConfig) *Services {
	return &Services{
		Auth:       NewAuthService(repos.Users, repos.Sessions, sessionCfg),
		Users:      NewUserService(repos.Users, repos.Sessions),
		Schools:    NewSchoolService(repos.Schools),
		Students:   NewStudentService(repos.Students, repos.Guardians),
		Teachers:   NewTeacherService(repos.Teachers),
		Guardians:  NewGuardianService(repos.Guardians),
		Programs:   NewProgramService(repos.Programs),
		Courses:    NewCourseService(repos.Courses, repos.Programs, repos.Teachers),
		Enrollment: NewEnrollmentService(repos.Enrollments, repos.Students, repos.Courses),
		Attendance: NewAttendanceService(repos.Attendance, repos.Students, repos.Courses, repos.Teachers),
		Grades:     NewGradeService(repos.Grades, repos.Students, repos.Courses),
		Billing:    NewBillingService(repos.Billing, repos.Students),
		Schedule:   NewScheduleService(repos.Schedule, repos.Courses),
		Stats:      NewStatsService(repos.Stats),
	}
}
