package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

var gradeNotFound = apperrors.NewNotFoundError("Grade not found")

type fakeGradeStore struct {
	nextID int64
	grades map[int64]*models.Grade
}

func newFakeGradeStore() *fakeGradeStore {
	return &fakeGradeStore{nextID: 1, grades: make(map[int64]*models.Grade)}
}

func (f *fakeGradeStore) Create(_ context.Context, grade *models.Grade) error {
	grade.ID = f.nextID
	f.nextID++
	f.grades[grade.ID] = grade
	return nil
}

func (f *fakeGradeStore) GetByID(_ context.Context, schoolID, id int64) (*models.Grade, error) {
	if g, ok := f.grades[id]; ok && g.SchoolID == schoolID {
		copied := *g
		return &copied, nil
	}
	return nil, gradeNotFound
}

func (f *fakeGradeStore) List(_ context.Context, schoolID int64, _ repositories.ListFilter, studentID, courseID *int64) ([]*models.Grade, int64, error) {
	var out []*models.Grade
	for _, g := range f.grades {
		if g.SchoolID != schoolID {
			continue
		}
		if studentID != nil && g.StudentID != *studentID {
			continue
		}
		if courseID != nil && g.CourseID != *courseID {
			continue
		}
		out = append(out, g)
	}
	return out, int64(len(out)), nil
}

func (f *fakeGradeStore) Update(_ context.Context, grade *models.Grade) error {
	f.grades[grade.ID] = grade
	return nil
}

func (f *fakeGradeStore) Delete(_ context.Context, schoolID, id int64) error {
	if g, ok := f.grades[id]; !ok || g.SchoolID != schoolID {
		return gradeNotFound
	}
	delete(f.grades, id)
	return nil
}

func newGradeFixture() (*GradeService, *fakeGradeStore) {
	students := &fakeStudentReader{students: map[int64]*models.Student{
		1: {ID: 1, SchoolID: testSchoolID, FirstName: "Amina", LastName: "K"},
	}}
	courses := newFakeCourseStore()
	courses.courses[1] = &models.Course{ID: 1, SchoolID: testSchoolID, Name: "Arabisch 1A", Code: "ARA-1A", MaxCapacity: 20}
	grades := newFakeGradeStore()
	return NewGradeService(grades, students, courses), grades
}

func score(v float64) *float64 { return &v }

func TestGradeServiceCreate(t *testing.T) {
	svc, _ := newGradeFixture()
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		grade, err := svc.Create(ctx, testSchoolID, dto.CreateGradeRequest{
			StudentID: 1, CourseID: 1, Assessment: "Toets hoofdstuk 1",
			Score: score(8), MaxScore: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, 1.0, grade.Weight)
		assert.Equal(t, models.DateOf(time.Now()), grade.Date)
	})

	t.Run("score above max", func(t *testing.T) {
		_, err := svc.Create(ctx, testSchoolID, dto.CreateGradeRequest{
			StudentID: 1, CourseID: 1, Assessment: "Toets",
			Score: score(11), MaxScore: 10,
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.Create(ctx, testSchoolID, dto.CreateGradeRequest{
			StudentID: 99, CourseID: 1, Assessment: "Toets",
			Score: score(5), MaxScore: 10,
		})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := svc.Create(ctx, testSchoolID, dto.CreateGradeRequest{
			StudentID: 1, CourseID: 99, Assessment: "Toets",
			Score: score(5), MaxScore: 10,
		})
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})
}

func TestGradeServiceUpdateKeepsScoreWithinMax(t *testing.T) {
	svc, _ := newGradeFixture()
	ctx := context.Background()

	grade, err := svc.Create(ctx, testSchoolID, dto.CreateGradeRequest{
		StudentID: 1, CourseID: 1, Assessment: "Examen",
		Score: score(45), MaxScore: 50,
	})
	require.NoError(t, err)

	// Lowering max below the existing score is rejected.
	lowMax := 40.0
	_, err = svc.Update(ctx, testSchoolID, grade.ID, dto.UpdateGradeRequest{MaxScore: &lowMax})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	// Rescaling both together is fine.
	newScore, newMax := 9.0, 10.0
	updated, err := svc.Update(ctx, testSchoolID, grade.ID, dto.UpdateGradeRequest{Score: &newScore, MaxScore: &newMax})
	require.NoError(t, err)
	assert.Equal(t, 9.0, updated.Score)
	assert.Equal(t, 10.0, updated.MaxScore)
}

func TestGradeServiceTenantScope(t *testing.T) {
	svc, _ := newGradeFixture()
	ctx := context.Background()

	grade, err := svc.Create(ctx, testSchoolID, dto.CreateGradeRequest{
		StudentID: 1, CourseID: 1, Assessment: "Taak",
		Score: score(7), MaxScore: 10,
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, testSchoolID+1, grade.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, testSchoolID+1, grade.ID), apperrors.ErrResourceNotFound)
}
