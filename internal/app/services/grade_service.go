package services

import (
	"context"
	"time"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

type gradeStore interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Grade, error)
	List(ctx context.Context, schoolID int64, filter repositories.ListFilter, studentID, courseID *int64) ([]*models.Grade, int64, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, schoolID, id int64) error
}

// GradeService manages per-assessment grades within one school.
type GradeService struct {
	grades   gradeStore
	students studentReader
	courses  courseReader
}

// NewGradeService creates a new GradeService
func NewGradeService(grades gradeStore, students studentReader, courses courseReader) *GradeService {
	return &GradeService{grades: grades, students: students, courses: courses}
}

// Create records a grade. Score may not exceed the assessment's max
// score.
func (s *GradeService) Create(ctx context.Context, schoolID int64, req dto.CreateGradeRequest) (*models.Grade, error) {
	if _, err := s.students.GetByID(ctx, schoolID, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, schoolID, req.CourseID); err != nil {
		return nil, err
	}

	if *req.Score > req.MaxScore {
		return nil, apperrors.NewBadRequestError("Score cannot exceed max score")
	}

	weight := 1.0
	if req.Weight != nil {
		weight = *req.Weight
	}
	date := req.Date
	if date.IsZero() {
		date = models.DateOf(time.Now())
	}

	grade := &models.Grade{
		SchoolID:   schoolID,
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		Assessment: req.Assessment,
		Score:      *req.Score,
		MaxScore:   req.MaxScore,
		Weight:     weight,
		Date:       date,
		Notes:      req.Notes,
	}
	if err := s.grades.Create(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// Get retrieves a grade within the school.
func (s *GradeService) Get(ctx context.Context, schoolID, id int64) (*models.Grade, error) {
	return s.grades.GetByID(ctx, schoolID, id)
}

// List retrieves grades of the school, optionally narrowed by student or
// course.
func (s *GradeService) List(ctx context.Context, schoolID int64, filter repositories.ListFilter, studentID, courseID *int64) ([]*models.Grade, int64, error) {
	return s.grades.List(ctx, schoolID, filter, studentID, courseID)
}

// Update applies a partial update, keeping score within max score.
func (s *GradeService) Update(ctx context.Context, schoolID, id int64, req dto.UpdateGradeRequest) (*models.Grade, error) {
	grade, err := s.grades.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.Assessment != nil {
		grade.Assessment = *req.Assessment
	}
	if req.Score != nil {
		grade.Score = *req.Score
	}
	if req.MaxScore != nil {
		grade.MaxScore = *req.MaxScore
	}
	if grade.Score > grade.MaxScore {
		return nil, apperrors.NewBadRequestError("Score cannot exceed max score")
	}
	if req.Weight != nil {
		grade.Weight = *req.Weight
	}
	if req.Date != nil {
		grade.Date = *req.Date
	}
	if req.Notes != nil {
		grade.Notes = req.Notes
	}

	if err := s.grades.Update(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// Delete removes a grade.
func (s *GradeService) Delete(ctx context.Context, schoolID, id int64) error {
	return s.grades.Delete(ctx, schoolID, id)
}
