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

type fakeStudentStore struct {
	nextID     int64
	students   map[int64]*models.Student
	dependents map[int64]bool
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{
		nextID:     1,
		students:   make(map[int64]*models.Student),
		dependents: make(map[int64]bool),
	}
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	student.ID = f.nextID
	f.nextID++
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, schoolID, id int64) (*models.Student, error) {
	if s, ok := f.students[id]; ok && s.SchoolID == schoolID {
		copied := *s
		return &copied, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) List(_ context.Context, schoolID int64, _ repositories.ListFilter) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, s := range f.students {
		if s.SchoolID == schoolID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeStudentStore) ExistsByCodeOrEmail(_ context.Context, schoolID int64, code, email string, excludeID int64) (bool, error) {
	for _, s := range f.students {
		if s.SchoolID != schoolID || s.ID == excludeID {
			continue
		}
		if strings.EqualFold(s.Code, code) || strings.EqualFold(s.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentStore) HasDependents(_ context.Context, _, id int64) (bool, error) {
	return f.dependents[id], nil
}

func (f *fakeStudentStore) Delete(_ context.Context, _, id int64) error {
	delete(f.students, id)
	return nil
}

type fakeGuardianReader struct {
	guardians map[int64]*models.Guardian
}

func (f *fakeGuardianReader) GetByID(_ context.Context, schoolID, id int64) (*models.Guardian, error) {
	if g, ok := f.guardians[id]; ok && g.SchoolID == schoolID {
		return g, nil
	}
	return nil, apperrors.ErrGuardianNotFound
}

func newStudentFixture() (*StudentService, *fakeStudentStore) {
	store := newFakeStudentStore()
	guardians := &fakeGuardianReader{guardians: map[int64]*models.Guardian{
		1: {ID: 1, SchoolID: testSchoolID, FirstName: "Fatima", LastName: "K", Email: "fatima@example.be"},
		2: {ID: 2, SchoolID: testSchoolID + 1, FirstName: "Omar", LastName: "D", Email: "omar@example.be"},
	}}
	return NewStudentService(store, guardians), store
}

func studentReq(code, email string) dto.CreateStudentRequest {
	return dto.CreateStudentRequest{
		Code:      code,
		FirstName: "Amina",
		LastName:  "Kaddouri",
		Email:     email,
	}
}

func TestStudentServiceCreate(t *testing.T) {
	svc, _ := newStudentFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, testSchoolID, studentReq("STU-001", "amina@example.be"))
	require.NoError(t, err)
	assert.Equal(t, models.StudentActive, first.Status)

	t.Run("duplicate code", func(t *testing.T) {
		_, err := svc.Create(ctx, testSchoolID, studentReq("STU-001", "other@example.be"))
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(ctx, testSchoolID, studentReq("STU-002", "amina@example.be"))
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("same keys in another school", func(t *testing.T) {
		_, err := svc.Create(ctx, testSchoolID+1, studentReq("STU-001", "amina@example.be"))
		assert.NoError(t, err)
	})

	t.Run("guardian of another school", func(t *testing.T) {
		req := studentReq("STU-003", "hamza@example.be")
		foreign := int64(2)
		req.GuardianID = &foreign
		_, err := svc.Create(ctx, testSchoolID, req)
		assert.ErrorIs(t, err, apperrors.ErrGuardianNotFound)
	})
}

func TestStudentServiceUpdateMergesFields(t *testing.T) {
	svc, _ := newStudentFixture()
	ctx := context.Background()

	student, err := svc.Create(ctx, testSchoolID, studentReq("STU-001", "amina@example.be"))
	require.NoError(t, err)

	phone := "+32 470 11 22 33"
	status := "graduated"
	updated, err := svc.Update(ctx, testSchoolID, student.ID, dto.UpdateStudentRequest{
		Phone:  &phone,
		Status: &status,
	})
	require.NoError(t, err)

	// Untouched fields survive the partial update.
	assert.Equal(t, "STU-001", updated.Code)
	assert.Equal(t, "amina@example.be", updated.Email)
	assert.Equal(t, "Amina", updated.FirstName)
	assert.Equal(t, models.StudentGraduated, updated.Status)
	assert.Equal(t, phone, *updated.Phone)
}

func TestStudentServiceUpdateKeyConflict(t *testing.T) {
	svc, _ := newStudentFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, testSchoolID, studentReq("STU-001", "amina@example.be"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, testSchoolID, studentReq("STU-002", "bilal@example.be"))
	require.NoError(t, err)

	taken := "STU-001"
	_, err = svc.Update(ctx, testSchoolID, second.ID, dto.UpdateStudentRequest{Code: &taken})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Re-submitting your own keys is not a conflict.
	own := "STU-002"
	_, err = svc.Update(ctx, testSchoolID, second.ID, dto.UpdateStudentRequest{Code: &own})
	assert.NoError(t, err)
}

func TestStudentServiceDelete(t *testing.T) {
	svc, store := newStudentFixture()
	ctx := context.Background()

	student, err := svc.Create(ctx, testSchoolID, studentReq("STU-001", "amina@example.be"))
	require.NoError(t, err)

	store.dependents[student.ID] = true
	err = svc.Delete(ctx, testSchoolID, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	store.dependents[student.ID] = false
	require.NoError(t, svc.Delete(ctx, testSchoolID, student.ID))

	// Second delete reports the record gone.
	assert.ErrorIs(t, svc.Delete(ctx, testSchoolID, student.ID), apperrors.ErrStudentNotFound)
}
