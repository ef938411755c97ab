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

// fakeEnrollmentStore applies the same capacity and duplicate-pair rules
// the real repository enforces in its transaction.
type fakeEnrollmentStore struct {
	nextID      int64
	enrollments map[int64]*models.Enrollment
	capacity    map[int64]int
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		nextID:      1,
		enrollments: make(map[int64]*models.Enrollment),
		capacity:    make(map[int64]int),
	}
}

func (f *fakeEnrollmentStore) activeInCourse(courseID int64) int {
	n := 0
	for _, e := range f.enrollments {
		if e.CourseID == courseID && e.Status == models.EnrollmentActive {
			n++
		}
	}
	return n
}

func (f *fakeEnrollmentStore) Create(_ context.Context, enrollment *models.Enrollment) error {
	for _, e := range f.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID && e.Status == models.EnrollmentActive {
			return apperrors.ErrDuplicateEnrollment
		}
	}
	if max, ok := f.capacity[enrollment.CourseID]; ok && max > 0 && f.activeInCourse(enrollment.CourseID) >= max {
		return apperrors.ErrCourseFull
	}

	enrollment.ID = f.nextID
	f.nextID++
	f.enrollments[enrollment.ID] = enrollment
	return nil
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, schoolID, id int64) (*models.Enrollment, error) {
	if e, ok := f.enrollments[id]; ok && e.SchoolID == schoolID {
		copied := *e
		return &copied, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) List(_ context.Context, schoolID int64, _ repositories.ListFilter, studentID, courseID *int64) ([]*models.Enrollment, int64, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if e.SchoolID != schoolID {
			continue
		}
		if studentID != nil && e.StudentID != *studentID {
			continue
		}
		if courseID != nil && e.CourseID != *courseID {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEnrollmentStore) UpdateStatus(_ context.Context, schoolID, id int64, status models.EnrollmentStatus) error {
	e, ok := f.enrollments[id]
	if !ok || e.SchoolID != schoolID {
		return apperrors.ErrEnrollmentNotFound
	}
	e.Status = status
	return nil
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, schoolID, id int64) error {
	if e, ok := f.enrollments[id]; !ok || e.SchoolID != schoolID {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.enrollments, id)
	return nil
}

func newEnrollmentFixture() (*EnrollmentService, *fakeEnrollmentStore) {
	store := newFakeEnrollmentStore()
	store.capacity[1] = 2

	students := &fakeStudentReader{students: map[int64]*models.Student{
		1: {ID: 1, SchoolID: testSchoolID, FirstName: "Amina", LastName: "K"},
		2: {ID: 2, SchoolID: testSchoolID, FirstName: "Bilal", LastName: "E"},
		3: {ID: 3, SchoolID: testSchoolID, FirstName: "Hamza", LastName: "M"},
	}}
	courses := newFakeCourseStore()
	courses.courses[1] = &models.Course{ID: 1, SchoolID: testSchoolID, Name: "Arabisch 1A", Code: "ARA-1A", MaxCapacity: 2}

	return NewEnrollmentService(store, students, courses), store
}

func TestEnrollmentServiceCreate(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	ctx := context.Background()

	enrollment, err := svc.Create(ctx, testSchoolID, dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
	assert.Equal(t, models.DateOf(time.Now()), enrollment.EnrolledAt)

	t.Run("duplicate active pair", func(t *testing.T) {
		_, err := svc.Create(ctx, testSchoolID, dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateEnrollment)
	})

	t.Run("course full", func(t *testing.T) {
		_, err := svc.Create(ctx, testSchoolID, dto.CreateEnrollmentRequest{StudentID: 2, CourseID: 1})
		require.NoError(t, err)

		_, err = svc.Create(ctx, testSchoolID, dto.CreateEnrollmentRequest{StudentID: 3, CourseID: 1})
		assert.ErrorIs(t, err, apperrors.ErrCourseFull)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.Create(ctx, testSchoolID, dto.CreateEnrollmentRequest{StudentID: 99, CourseID: 1})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := svc.Create(ctx, testSchoolID, dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 99})
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})
}

func TestEnrollmentServiceDropFreesSeat(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, testSchoolID, dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, testSchoolID, dto.CreateEnrollmentRequest{StudentID: 2, CourseID: 1})
	require.NoError(t, err)

	dropped := "dropped"
	updated, err := svc.UpdateStatus(ctx, testSchoolID, first.ID, dto.UpdateEnrollmentRequest{Status: &dropped})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentDropped, updated.Status)

	// The freed seat lets the next student in, and the dropped student
	// may re-enroll later.
	_, err = svc.Create(ctx, testSchoolID, dto.CreateEnrollmentRequest{StudentID: 3, CourseID: 1})
	assert.NoError(t, err)
	_, err = svc.Create(ctx, testSchoolID, dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1})
	assert.ErrorIs(t, err, apperrors.ErrCourseFull)
}

func TestEnrollmentServiceDelete(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	ctx := context.Background()

	enrollment, err := svc.Create(ctx, testSchoolID, dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, testSchoolID, enrollment.ID))
	assert.ErrorIs(t, svc.Delete(ctx, testSchoolID, enrollment.ID), apperrors.ErrEnrollmentNotFound)
}
