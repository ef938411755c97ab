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

var attendanceNotFound = apperrors.NewNotFoundError("Attendance record not found")

// fakeAttendanceStore upserts the way the real repository does: one row
// per (student, course, date) and per (teacher, date).
type fakeAttendanceStore struct {
	nextID   int64
	records  map[int64]*models.Attendance
	teachers map[int64]*models.TeacherAttendance
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{
		nextID:   1,
		records:  make(map[int64]*models.Attendance),
		teachers: make(map[int64]*models.TeacherAttendance),
	}
}

func (f *fakeAttendanceStore) Record(_ context.Context, attendance *models.Attendance) error {
	for _, existing := range f.records {
		if existing.SchoolID == attendance.SchoolID &&
			existing.StudentID == attendance.StudentID &&
			existing.CourseID == attendance.CourseID &&
			existing.Date.Equal(attendance.Date.Time) {
			existing.Status = attendance.Status
			existing.Notes = attendance.Notes
			*attendance = *existing
			return nil
		}
	}
	attendance.ID = f.nextID
	f.nextID++
	f.records[attendance.ID] = attendance
	return nil
}

func (f *fakeAttendanceStore) GetByID(_ context.Context, schoolID, id int64) (*models.Attendance, error) {
	if a, ok := f.records[id]; ok && a.SchoolID == schoolID {
		copied := *a
		return &copied, nil
	}
	return nil, attendanceNotFound
}

func (f *fakeAttendanceStore) List(_ context.Context, schoolID int64, _ repositories.ListFilter, studentID, courseID *int64, date *models.Date) ([]*models.Attendance, int64, error) {
	var out []*models.Attendance
	for _, a := range f.records {
		if a.SchoolID != schoolID {
			continue
		}
		if studentID != nil && a.StudentID != *studentID {
			continue
		}
		if courseID != nil && a.CourseID != *courseID {
			continue
		}
		if date != nil && !a.Date.Equal(date.Time) {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceStore) Delete(_ context.Context, schoolID, id int64) error {
	if a, ok := f.records[id]; !ok || a.SchoolID != schoolID {
		return attendanceNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceStore) RecordTeacher(_ context.Context, attendance *models.TeacherAttendance) error {
	for _, existing := range f.teachers {
		if existing.SchoolID == attendance.SchoolID &&
			existing.TeacherID == attendance.TeacherID &&
			existing.Date.Equal(attendance.Date.Time) {
			existing.Status = attendance.Status
			existing.Notes = attendance.Notes
			*attendance = *existing
			return nil
		}
	}
	attendance.ID = f.nextID
	f.nextID++
	f.teachers[attendance.ID] = attendance
	return nil
}

func (f *fakeAttendanceStore) ListTeacher(_ context.Context, schoolID int64, _ repositories.ListFilter, teacherID *int64, date *models.Date) ([]*models.TeacherAttendance, int64, error) {
	var out []*models.TeacherAttendance
	for _, a := range f.teachers {
		if a.SchoolID != schoolID {
			continue
		}
		if teacherID != nil && a.TeacherID != *teacherID {
			continue
		}
		if date != nil && !a.Date.Equal(date.Time) {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceStore) DeleteTeacher(_ context.Context, schoolID, id int64) error {
	if a, ok := f.teachers[id]; !ok || a.SchoolID != schoolID {
		return attendanceNotFound
	}
	delete(f.teachers, id)
	return nil
}

func newAttendanceFixture() (*AttendanceService, *fakeAttendanceStore) {
	students := &fakeStudentReader{students: map[int64]*models.Student{
		1: {ID: 1, SchoolID: testSchoolID, FirstName: "Amina", LastName: "K"},
	}}
	courses := newFakeCourseStore()
	courses.courses[1] = &models.Course{ID: 1, SchoolID: testSchoolID, Name: "Arabisch 1A", Code: "ARA-1A", MaxCapacity: 20}
	teachers := &fakeTeacherReader{teachers: map[int64]*models.Teacher{
		1: {ID: 1, SchoolID: testSchoolID, FirstName: "Youssef", LastName: "B"},
	}}
	store := newFakeAttendanceStore()
	return NewAttendanceService(store, students, courses, teachers), store
}

func TestAttendanceServiceRecordOverwrites(t *testing.T) {
	svc, store := newAttendanceFixture()
	ctx := context.Background()
	day := models.NewDate(2026, time.September, 7)

	first, err := svc.Record(ctx, testSchoolID, dto.RecordAttendanceRequest{
		StudentID: 1, CourseID: 1, Date: day, Status: "present",
	})
	require.NoError(t, err)

	second, err := svc.Record(ctx, testSchoolID, dto.RecordAttendanceRequest{
		StudentID: 1, CourseID: 1, Date: day, Status: "late",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.records, 1)
	assert.Equal(t, models.AttendanceLate, store.records[first.ID].Status)

	// Another date for the same pair is a fresh record.
	other, err := svc.Record(ctx, testSchoolID, dto.RecordAttendanceRequest{
		StudentID: 1, CourseID: 1, Date: models.NewDate(2026, time.September, 8), Status: "present",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Len(t, store.records, 2)
}

func TestAttendanceServiceRecordRelations(t *testing.T) {
	svc, _ := newAttendanceFixture()
	ctx := context.Background()
	day := models.NewDate(2026, time.September, 7)

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.Record(ctx, testSchoolID, dto.RecordAttendanceRequest{
			StudentID: 99, CourseID: 1, Date: day, Status: "present",
		})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := svc.Record(ctx, testSchoolID, dto.RecordAttendanceRequest{
			StudentID: 1, CourseID: 99, Date: day, Status: "present",
		})
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})

	t.Run("student of another school", func(t *testing.T) {
		_, err := svc.Record(ctx, testSchoolID+1, dto.RecordAttendanceRequest{
			StudentID: 1, CourseID: 1, Date: day, Status: "present",
		})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})
}

func TestAttendanceServiceGetAndDelete(t *testing.T) {
	svc, _ := newAttendanceFixture()
	ctx := context.Background()

	recorded, err := svc.Record(ctx, testSchoolID, dto.RecordAttendanceRequest{
		StudentID: 1, CourseID: 1, Date: models.NewDate(2026, time.September, 7), Status: "absent",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, testSchoolID, recorded.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceAbsent, got.Status)

	_, err = svc.Get(ctx, testSchoolID+1, recorded.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	require.NoError(t, svc.Delete(ctx, testSchoolID, recorded.ID))
	assert.ErrorIs(t, svc.Delete(ctx, testSchoolID, recorded.ID), apperrors.ErrResourceNotFound)
}

func TestAttendanceServiceTeacherRecordOverwrites(t *testing.T) {
	svc, store := newAttendanceFixture()
	ctx := context.Background()
	day := models.NewDate(2026, time.September, 7)

	first, err := svc.RecordTeacher(ctx, testSchoolID, dto.RecordTeacherAttendanceRequest{
		TeacherID: 1, Date: day, Status: "present",
	})
	require.NoError(t, err)

	second, err := svc.RecordTeacher(ctx, testSchoolID, dto.RecordTeacherAttendanceRequest{
		TeacherID: 1, Date: day, Status: "excused",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.teachers, 1)
	assert.Equal(t, models.AttendanceExcused, store.teachers[first.ID].Status)

	_, err = svc.RecordTeacher(ctx, testSchoolID, dto.RecordTeacherAttendanceRequest{
		TeacherID: 99, Date: day, Status: "present",
	})
	assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
}
