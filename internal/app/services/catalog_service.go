package services

import (
	"context"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

type programStore interface {
	Create(ctx context.Context, program *models.Program) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Program, error)
	List(ctx context.Context, schoolID int64, filter repositories.ListFilter) ([]*models.Program, int64, error)
	ExistsByCode(ctx context.Context, schoolID int64, code string, excludeID int64) (bool, error)
	Update(ctx context.Context, program *models.Program) error
	HasCourses(ctx context.Context, schoolID, id int64) (bool, error)
	Delete(ctx context.Context, schoolID, id int64) error
}

// ProgramService manages the program catalog within one school.
type ProgramService struct {
	programs programStore
}

// NewProgramService creates a new ProgramService
func NewProgramService(programs programStore) *ProgramService {
	return &ProgramService{programs: programs}
}

// Create adds a program to the catalog. Code must be unique within the
// school.
func (s *ProgramService) Create(ctx context.Context, schoolID int64, req dto.CreateProgramRequest) (*models.Program, error) {
	taken, err := s.programs.ExistsByCode(ctx, schoolID, req.Code, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("Program code already exists")
	}

	program := &models.Program{
		SchoolID:    schoolID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Duration:    req.Duration,
		Department:  req.Department,
	}
	if err := s.programs.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// Get retrieves a program within the school.
func (s *ProgramService) Get(ctx context.Context, schoolID, id int64) (*models.Program, error) {
	return s.programs.GetByID(ctx, schoolID, id)
}

// List retrieves programs of the school.
func (s *ProgramService) List(ctx context.Context, schoolID int64, filter repositories.ListFilter) ([]*models.Program, int64, error) {
	return s.programs.List(ctx, schoolID, filter)
}

// Update applies a partial update, re-checking the code key when it
// changes.
func (s *ProgramService) Update(ctx context.Context, schoolID, id int64, req dto.UpdateProgramRequest) (*models.Program, error) {
	program, err := s.programs.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		taken, err := s.programs.ExistsByCode(ctx, schoolID, *req.Code, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("Program code already exists")
		}
		program.Code = *req.Code
	}
	if req.Name != nil {
		program.Name = *req.Name
	}
	if req.Description != nil {
		program.Description = req.Description
	}
	if req.Duration != nil {
		program.Duration = *req.Duration
	}
	if req.Department != nil {
		program.Department = req.Department
	}

	if err := s.programs.Update(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// Delete removes a program unless courses still reference it.
func (s *ProgramService) Delete(ctx context.Context, schoolID, id int64) error {
	if _, err := s.programs.GetByID(ctx, schoolID, id); err != nil {
		return err
	}

	hasCourses, err := s.programs.HasCourses(ctx, schoolID, id)
	if err != nil {
		return err
	}
	if hasCourses {
		return apperrors.NewConflictError("Program still has courses")
	}

	return s.programs.Delete(ctx, schoolID, id)
}

type courseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Course, error)
	List(ctx context.Context, schoolID int64, filter repositories.ListFilter, programID, teacherID *int64) ([]*models.Course, int64, error)
	ExistsByCode(ctx context.Context, schoolID int64, code string, excludeID int64) (bool, error)
	Update(ctx context.Context, course *models.Course) error
	HasEnrollments(ctx context.Context, schoolID, id int64) (bool, error)
	Delete(ctx context.Context, schoolID, id int64) error
}

type teacherReader interface {
	GetByID(ctx context.Context, schoolID, id int64) (*models.Teacher, error)
}

type programReader interface {
	GetByID(ctx context.Context, schoolID, id int64) (*models.Program, error)
}

// CourseService manages course offerings within one school.
type CourseService struct {
	courses  courseStore
	programs programReader
	teachers teacherReader
}

// NewCourseService creates a new CourseService
func NewCourseService(courses courseStore, programs programReader, teachers teacherReader) *CourseService {
	return &CourseService{courses: courses, programs: programs, teachers: teachers}
}

func (s *CourseService) checkRelations(ctx context.Context, schoolID int64, programID, teacherID *int64) error {
	if programID != nil {
		if _, err := s.programs.GetByID(ctx, schoolID, *programID); err != nil {
			return err
		}
	}
	if teacherID != nil {
		if _, err := s.teachers.GetByID(ctx, schoolID, *teacherID); err != nil {
			return err
		}
	}
	return nil
}

// Create adds a course. Code must be unique within the school; referenced
// program and teacher must belong to the same school.
func (s *CourseService) Create(ctx context.Context, schoolID int64, req dto.CreateCourseRequest) (*models.Course, error) {
	taken, err := s.courses.ExistsByCode(ctx, schoolID, req.Code, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("Course code already exists")
	}

	if err := s.checkRelations(ctx, schoolID, req.ProgramID, req.TeacherID); err != nil {
		return nil, err
	}

	course := &models.Course{
		SchoolID:    schoolID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		ProgramID:   req.ProgramID,
		TeacherID:   req.TeacherID,
		MaxCapacity: req.MaxCapacity,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Get retrieves a course within the school.
func (s *CourseService) Get(ctx context.Context, schoolID, id int64) (*models.Course, error) {
	return s.courses.GetByID(ctx, schoolID, id)
}

// List retrieves courses of the school, optionally narrowed by program or
// teacher.
func (s *CourseService) List(ctx context.Context, schoolID int64, filter repositories.ListFilter, programID, teacherID *int64) ([]*models.Course, int64, error) {
	return s.courses.List(ctx, schoolID, filter, programID, teacherID)
}

// Update applies a partial update. Shrinking max capacity below the
// current active enrollment count is rejected.
func (s *CourseService) Update(ctx context.Context, schoolID, id int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		taken, err := s.courses.ExistsByCode(ctx, schoolID, *req.Code, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("Course code already exists")
		}
		course.Code = *req.Code
	}
	if err := s.checkRelations(ctx, schoolID, req.ProgramID, req.TeacherID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.ProgramID != nil {
		course.ProgramID = req.ProgramID
	}
	if req.TeacherID != nil {
		course.TeacherID = req.TeacherID
	}
	if req.MaxCapacity != nil {
		if *req.MaxCapacity < course.Enrolled {
			return nil, apperrors.NewConflictError("Max capacity cannot be lower than current enrollment")
		}
		course.MaxCapacity = *req.MaxCapacity
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course unless enrollments reference it.
func (s *CourseService) Delete(ctx context.Context, schoolID, id int64) error {
	if _, err := s.courses.GetByID(ctx, schoolID, id); err != nil {
		return err
	}

	hasEnrollments, err := s.courses.HasEnrollments(ctx, schoolID, id)
	if err != nil {
		return err
	}
	if hasEnrollments {
		return apperrors.NewConflictError("Course still has enrollments")
	}

	return s.courses.Delete(ctx, schoolID, id)
}
