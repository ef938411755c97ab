package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

var (
	roomNotFound  = apperrors.NewNotFoundError("Room not found")
	eventNotFound = apperrors.NewNotFoundError("Event not found")
)

type fakeScheduleStore struct {
	nextID    int64
	rooms     map[int64]*models.Room
	events    map[int64]*models.Event
	hasEvents map[int64]bool
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{
		nextID:    1,
		rooms:     make(map[int64]*models.Room),
		events:    make(map[int64]*models.Event),
		hasEvents: make(map[int64]bool),
	}
}

func (f *fakeScheduleStore) CreateRoom(_ context.Context, room *models.Room) error {
	room.ID = f.nextID
	f.nextID++
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeScheduleStore) GetRoomByID(_ context.Context, schoolID, id int64) (*models.Room, error) {
	if r, ok := f.rooms[id]; ok && r.SchoolID == schoolID {
		copied := *r
		return &copied, nil
	}
	return nil, roomNotFound
}

func (f *fakeScheduleStore) ListRooms(_ context.Context, schoolID int64, _ repositories.ListFilter) ([]*models.Room, int64, error) {
	var out []*models.Room
	for _, r := range f.rooms {
		if r.SchoolID == schoolID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeScheduleStore) RoomExistsByName(_ context.Context, schoolID int64, name string, excludeID int64) (bool, error) {
	for _, r := range f.rooms {
		if r.SchoolID == schoolID && strings.EqualFold(r.Name, name) && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleStore) UpdateRoom(_ context.Context, room *models.Room) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeScheduleStore) RoomHasEvents(_ context.Context, _, id int64) (bool, error) {
	return f.hasEvents[id], nil
}

func (f *fakeScheduleStore) DeleteRoom(_ context.Context, _, id int64) error {
	delete(f.rooms, id)
	return nil
}

func (f *fakeScheduleStore) CreateEvent(_ context.Context, event *models.Event) error {
	event.ID = f.nextID
	f.nextID++
	f.events[event.ID] = event
	return nil
}

func (f *fakeScheduleStore) GetEventByID(_ context.Context, schoolID, id int64) (*models.Event, error) {
	if e, ok := f.events[id]; ok && e.SchoolID == schoolID {
		copied := *e
		return &copied, nil
	}
	return nil, eventNotFound
}

func (f *fakeScheduleStore) ListEvents(_ context.Context, schoolID int64, _ repositories.ListFilter, from, to time.Time, roomID, courseID *int64) ([]*models.Event, int64, error) {
	var out []*models.Event
	for _, e := range f.events {
		if e.SchoolID != schoolID {
			continue
		}
		if !from.IsZero() && !e.EndsAt.After(from) {
			continue
		}
		if !to.IsZero() && !e.StartsAt.Before(to) {
			continue
		}
		if roomID != nil && (e.RoomID == nil || *e.RoomID != *roomID) {
			continue
		}
		if courseID != nil && (e.CourseID == nil || *e.CourseID != *courseID) {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeScheduleStore) UpdateEvent(_ context.Context, event *models.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeScheduleStore) DeleteEvent(_ context.Context, _, id int64) error {
	delete(f.events, id)
	return nil
}

func newScheduleFixture() (*ScheduleService, *fakeScheduleStore) {
	courses := newFakeCourseStore()
	courses.courses[1] = &models.Course{ID: 1, SchoolID: testSchoolID, Name: "Arabisch 1A", Code: "ARA-1A", MaxCapacity: 20}
	schedule := newFakeScheduleStore()
	return NewScheduleService(schedule, courses), schedule
}

func TestScheduleServiceRoomNameUnique(t *testing.T) {
	svc, _ := newScheduleFixture()
	ctx := context.Background()

	first, err := svc.CreateRoom(ctx, testSchoolID, dto.CreateRoomRequest{Name: "Lokaal 2.1", Capacity: 25})
	require.NoError(t, err)

	t.Run("duplicate name on create", func(t *testing.T) {
		_, err := svc.CreateRoom(ctx, testSchoolID, dto.CreateRoomRequest{Name: "lokaal 2.1", Capacity: 10})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("same name in another school", func(t *testing.T) {
		_, err := svc.CreateRoom(ctx, testSchoolID+1, dto.CreateRoomRequest{Name: "Lokaal 2.1", Capacity: 25})
		assert.NoError(t, err)
	})

	second, err := svc.CreateRoom(ctx, testSchoolID, dto.CreateRoomRequest{Name: "Lokaal 2.2", Capacity: 25})
	require.NoError(t, err)

	t.Run("rename onto a taken name", func(t *testing.T) {
		taken := first.Name
		_, err := svc.UpdateRoom(ctx, testSchoolID, second.ID, dto.UpdateRoomRequest{Name: &taken})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("rename keeping its own name", func(t *testing.T) {
		own := second.Name
		bigger := 40
		updated, err := svc.UpdateRoom(ctx, testSchoolID, second.ID, dto.UpdateRoomRequest{Name: &own, Capacity: &bigger})
		require.NoError(t, err)
		assert.Equal(t, 40, updated.Capacity)
	})
}

func TestScheduleServiceDeleteRoomInUse(t *testing.T) {
	svc, store := newScheduleFixture()
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, testSchoolID, dto.CreateRoomRequest{Name: "Lokaal 2.1", Capacity: 25})
	require.NoError(t, err)

	store.hasEvents[room.ID] = true
	err = svc.DeleteRoom(ctx, testSchoolID, room.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	store.hasEvents[room.ID] = false
	require.NoError(t, svc.DeleteRoom(ctx, testSchoolID, room.ID))
	assert.ErrorIs(t, svc.DeleteRoom(ctx, testSchoolID, room.ID), apperrors.ErrResourceNotFound)
}

func TestScheduleServiceEventWindow(t *testing.T) {
	svc, _ := newScheduleFixture()
	ctx := context.Background()
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

	t.Run("end before start on create", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, testSchoolID, dto.CreateEventRequest{
			Title: "Les Arabisch", Type: "lesson",
			StartsAt: start, EndsAt: start.Add(-time.Hour),
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("zero-length event is allowed", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, testSchoolID, dto.CreateEventRequest{
			Title: "Deadline inschrijvingen", Type: "other",
			StartsAt: start, EndsAt: start,
		})
		assert.NoError(t, err)
	})

	event, err := svc.CreateEvent(ctx, testSchoolID, dto.CreateEventRequest{
		Title: "Les Arabisch", Type: "lesson",
		StartsAt: start, EndsAt: start.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	t.Run("update cannot move the end before the start", func(t *testing.T) {
		early := start.Add(-time.Hour)
		_, err := svc.UpdateEvent(ctx, testSchoolID, event.ID, dto.UpdateEventRequest{EndsAt: &early})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("update validates the combined window", func(t *testing.T) {
		late := start.Add(3 * time.Hour)
		_, err := svc.UpdateEvent(ctx, testSchoolID, event.ID, dto.UpdateEventRequest{StartsAt: &late})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestScheduleServiceEventRelations(t *testing.T) {
	svc, _ := newScheduleFixture()
	ctx := context.Background()
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

	room, err := svc.CreateRoom(ctx, testSchoolID, dto.CreateRoomRequest{Name: "Lokaal 2.1", Capacity: 25})
	require.NoError(t, err)

	t.Run("unknown room", func(t *testing.T) {
		missing := int64(99)
		_, err := svc.CreateEvent(ctx, testSchoolID, dto.CreateEventRequest{
			Title: "Les", Type: "lesson", StartsAt: start, EndsAt: start.Add(time.Hour),
			RoomID: &missing,
		})
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("course of another school", func(t *testing.T) {
		courseID := int64(1)
		_, err := svc.CreateEvent(ctx, testSchoolID+1, dto.CreateEventRequest{
			Title: "Les", Type: "lesson", StartsAt: start, EndsAt: start.Add(time.Hour),
			CourseID: &courseID,
		})
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})

	t.Run("room and course within the school", func(t *testing.T) {
		courseID := int64(1)
		event, err := svc.CreateEvent(ctx, testSchoolID, dto.CreateEventRequest{
			Title: "Les Arabisch", Type: "lesson", StartsAt: start, EndsAt: start.Add(time.Hour),
			RoomID: &room.ID, CourseID: &courseID,
		})
		require.NoError(t, err)
		assert.Equal(t, room.ID, *event.RoomID)
	})
}
