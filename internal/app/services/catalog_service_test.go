package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

type fakeProgramStore struct {
	nextID     int64
	programs   map[int64]*models.Program
	hasCourses map[int64]bool
}

func newFakeProgramStore() *fakeProgramStore {
	return &fakeProgramStore{
		nextID:     1,
		programs:   make(map[int64]*models.Program),
		hasCourses: make(map[int64]bool),
	}
}

func (f *fakeProgramStore) Create(_ context.Context, program *models.Program) error {
	program.ID = f.nextID
	f.nextID++
	f.programs[program.ID] = program
	return nil
}

func (f *fakeProgramStore) GetByID(_ context.Context, schoolID, id int64) (*models.Program, error) {
	if p, ok := f.programs[id]; ok && p.SchoolID == schoolID {
		copied := *p
		return &copied, nil
	}
	return nil, apperrors.ErrProgramNotFound
}

func (f *fakeProgramStore) List(_ context.Context, schoolID int64, _ repositories.ListFilter) ([]*models.Program, int64, error) {
	var out []*models.Program
	for _, p := range f.programs {
		if p.SchoolID == schoolID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProgramStore) ExistsByCode(_ context.Context, schoolID int64, code string, excludeID int64) (bool, error) {
	for _, p := range f.programs {
		if p.SchoolID == schoolID && strings.EqualFold(p.Code, code) && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProgramStore) Update(_ context.Context, program *models.Program) error {
	f.programs[program.ID] = program
	return nil
}

func (f *fakeProgramStore) HasCourses(_ context.Context, _, id int64) (bool, error) {
	return f.hasCourses[id], nil
}

func (f *fakeProgramStore) Delete(_ context.Context, _, id int64) error {
	delete(f.programs, id)
	return nil
}

func TestProgramServiceCodeUniqueness(t *testing.T) {
	store := newFakeProgramStore()
	svc := NewProgramService(store)
	ctx := context.Background()

	first, err := svc.Create(ctx, testSchoolID, dto.CreateProgramRequest{
		Name: "Arabisch jaar 1", Code: "ARA-1", Duration: 1,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, testSchoolID, dto.CreateProgramRequest{
		Name: "Arabisch eerste jaar", Code: "ARA-1", Duration: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Same code in another school is fine.
	_, err = svc.Create(ctx, testSchoolID+1, dto.CreateProgramRequest{
		Name: "Arabisch jaar 1", Code: "ARA-1", Duration: 1,
	})
	assert.NoError(t, err)

	second, err := svc.Create(ctx, testSchoolID, dto.CreateProgramRequest{
		Name: "Arabisch jaar 2", Code: "ARA-2", Duration: 1,
	})
	require.NoError(t, err)

	// Moving onto a taken code is rejected; keeping your own code is not.
	taken := first.Code
	_, err = svc.Update(ctx, testSchoolID, second.ID, dto.UpdateProgramRequest{Code: &taken})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	own := second.Code
	_, err = svc.Update(ctx, testSchoolID, second.ID, dto.UpdateProgramRequest{Code: &own})
	assert.NoError(t, err)
}

func TestProgramServiceDelete(t *testing.T) {
	store := newFakeProgramStore()
	svc := NewProgramService(store)
	ctx := context.Background()

	program, err := svc.Create(ctx, testSchoolID, dto.CreateProgramRequest{
		Name: "Koran", Code: "KOR-1", Duration: 2,
	})
	require.NoError(t, err)

	store.hasCourses[program.ID] = true
	err = svc.Delete(ctx, testSchoolID, program.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	store.hasCourses[program.ID] = false
	require.NoError(t, svc.Delete(ctx, testSchoolID, program.ID))

	err = svc.Delete(ctx, testSchoolID, program.ID)
	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
}

func TestProgramServiceTenantScope(t *testing.T) {
	store := newFakeProgramStore()
	svc := NewProgramService(store)
	ctx := context.Background()

	program, err := svc.Create(ctx, testSchoolID, dto.CreateProgramRequest{
		Name: "Fiqh", Code: "FIQ-1", Duration: 1,
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, testSchoolID+1, program.ID)
	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
}

type fakeCourseStore struct {
	nextID         int64
	courses        map[int64]*models.Course
	hasEnrollments map[int64]bool
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		nextID:         1,
		courses:        make(map[int64]*models.Course),
		hasEnrollments: make(map[int64]bool),
	}
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	course.ID = f.nextID
	f.nextID++
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, schoolID, id int64) (*models.Course, error) {
	if c, ok := f.courses[id]; ok && c.SchoolID == schoolID {
		copied := *c
		return &copied, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) List(_ context.Context, schoolID int64, _ repositories.ListFilter, programID, teacherID *int64) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, c := range f.courses {
		if c.SchoolID != schoolID {
			continue
		}
		if programID != nil && (c.ProgramID == nil || *c.ProgramID != *programID) {
			continue
		}
		if teacherID != nil && (c.TeacherID == nil || *c.TeacherID != *teacherID) {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourseStore) ExistsByCode(_ context.Context, schoolID int64, code string, excludeID int64) (bool, error) {
	for _, c := range f.courses {
		if c.SchoolID == schoolID && strings.EqualFold(c.Code, code) && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) HasEnrollments(_ context.Context, _, id int64) (bool, error) {
	return f.hasEnrollments[id], nil
}

func (f *fakeCourseStore) Delete(_ context.Context, _, id int64) error {
	delete(f.courses, id)
	return nil
}

type fakeTeacherReader struct {
	teachers map[int64]*models.Teacher
}

func (f *fakeTeacherReader) GetByID(_ context.Context, schoolID, id int64) (*models.Teacher, error) {
	if tr, ok := f.teachers[id]; ok && tr.SchoolID == schoolID {
		return tr, nil
	}
	return nil, apperrors.ErrTeacherNotFound
}

func newCourseFixture() (*CourseService, *fakeCourseStore) {
	programs := newFakeProgramStore()
	programs.programs[1] = &models.Program{ID: 1, SchoolID: testSchoolID, Name: "Arabisch jaar 1", Code: "ARA-1", Duration: 1}
	teachers := &fakeTeacherReader{teachers: map[int64]*models.Teacher{
		1: {ID: 1, SchoolID: testSchoolID, FirstName: "Youssef", LastName: "B"},
	}}
	courses := newFakeCourseStore()
	return NewCourseService(courses, programs, teachers), courses
}

func TestCourseServiceCreate(t *testing.T) {
	svc, _ := newCourseFixture()
	ctx := context.Background()
	programID, teacherID := int64(1), int64(1)

	t.Run("success with relations", func(t *testing.T) {
		course, err := svc.Create(ctx, testSchoolID, dto.CreateCourseRequest{
			Name: "Arabisch 1A", Code: "ARA-1A", ProgramID: &programID, TeacherID: &teacherID, MaxCapacity: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), *course.ProgramID)
	})

	t.Run("duplicate code", func(t *testing.T) {
		_, err := svc.Create(ctx, testSchoolID, dto.CreateCourseRequest{
			Name: "Arabisch 1A bis", Code: "ARA-1A", MaxCapacity: 20,
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("unknown program", func(t *testing.T) {
		missing := int64(99)
		_, err := svc.Create(ctx, testSchoolID, dto.CreateCourseRequest{
			Name: "Arabisch 1B", Code: "ARA-1B", ProgramID: &missing, MaxCapacity: 20,
		})
		assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
	})

	t.Run("unknown teacher", func(t *testing.T) {
		missing := int64(99)
		_, err := svc.Create(ctx, testSchoolID, dto.CreateCourseRequest{
			Name: "Arabisch 1B", Code: "ARA-1B", TeacherID: &missing, MaxCapacity: 20,
		})
		assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
	})
}

func TestCourseServiceCapacityShrink(t *testing.T) {
	svc, store := newCourseFixture()
	ctx := context.Background()

	course, err := svc.Create(ctx, testSchoolID, dto.CreateCourseRequest{
		Name: "Koran 2", Code: "KOR-2", MaxCapacity: 20,
	})
	require.NoError(t, err)
	store.courses[course.ID].Enrolled = 15

	below := 10
	_, err = svc.Update(ctx, testSchoolID, course.ID, dto.UpdateCourseRequest{MaxCapacity: &below})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	exact := 15
	updated, err := svc.Update(ctx, testSchoolID, course.ID, dto.UpdateCourseRequest{MaxCapacity: &exact})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.MaxCapacity)
}

func TestCourseServiceDelete(t *testing.T) {
	svc, store := newCourseFixture()
	ctx := context.Background()

	course, err := svc.Create(ctx, testSchoolID, dto.CreateCourseRequest{
		Name: "Fiqh 1", Code: "FIQ-1", MaxCapacity: 25,
	})
	require.NoError(t, err)

	store.hasEnrollments[course.ID] = true
	err = svc.Delete(ctx, testSchoolID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	store.hasEnrollments[course.ID] = false
	require.NoError(t, svc.Delete(ctx, testSchoolID, course.ID))
	assert.ErrorIs(t, svc.Delete(ctx, testSchoolID, course.ID), apperrors.ErrCourseNotFound)
}
