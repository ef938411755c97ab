package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// newStatementBuilder returns a squirrel builder configured for Postgres
// placeholders. Every repository uses this.
func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ListFilter carries the common list-endpoint parameters. Search matches
// name-like columns case-insensitively; Status filters the entity status
// column when the entity has one.
type ListFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// searchPattern converts a raw search term to an ILIKE pattern.
func searchPattern(term string) string {
	return "%" + term + "%"
}

// Repositories is the container for all repository instances, built once
// at startup and injected into services.
type Repositories struct {
	Users       *UserRepository
	Sessions    *SessionRepository
	Schools     *SchoolRepository
	Students    *StudentRepository
	Teachers    *TeacherRepository
	Guardians   *GuardianRepository
	Programs    *ProgramRepository
	Courses     *CourseRepository
	Enrollments *EnrollmentRepository
	Attendance  *AttendanceRepository
	Grades      *GradeRepository
	Billing     *BillingRepository
	Schedule    *ScheduleRepository
	Stats       *StatsRepository
}

// NewRepositories creates all repositories over one shared pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Sessions:    NewSessionRepository(db),
		Schools:     NewSchoolRepository(db),
		Students:    NewStudentRepository(db),
		Teachers:    NewTeacherRepository(db),
		Guardians:   NewGuardianRepository(db),
		Programs:    NewProgramRepository(db),
		Courses:     NewCourseRepository(db),
		Enrollments: NewEnrollmentRepository(db),
		Attendance:  NewAttendanceRepository(db),
		Grades:      NewGradeRepository(db),
		Billing:     NewBillingRepository(db),
		Schedule:    NewScheduleRepository(db),
		Stats:       NewStatsRepository(db),
	}
}
