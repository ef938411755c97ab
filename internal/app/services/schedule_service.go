package services

import (
	"context"
	"time"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

type scheduleStore interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoomByID(ctx context.Context, schoolID, id int64) (*models.Room, error)
	ListRooms(ctx context.Context, schoolID int64, filter repositories.ListFilter) ([]*models.Room, int64, error)
	RoomExistsByName(ctx context.Context, schoolID int64, name string, excludeID int64) (bool, error)
	UpdateRoom(ctx context.Context, room *models.Room) error
	RoomHasEvents(ctx context.Context, schoolID, id int64) (bool, error)
	DeleteRoom(ctx context.Context, schoolID, id int64) error

	CreateEvent(ctx context.Context, event *models.Event) error
	GetEventByID(ctx context.Context, schoolID, id int64) (*models.Event, error)
	ListEvents(ctx context.Context, schoolID int64, filter repositories.ListFilter, from, to time.Time, roomID, courseID *int64) ([]*models.Event, int64, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, schoolID, id int64) error
}

// ScheduleService manages rooms and calendar events of one school.
type ScheduleService struct {
	schedule scheduleStore
	courses  courseReader
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(schedule scheduleStore, courses courseReader) *ScheduleService {
	return &ScheduleService{schedule: schedule, courses: courses}
}

// CreateRoom adds a room. Name must be unique within the school.
func (s *ScheduleService) CreateRoom(ctx context.Context, schoolID int64, req dto.CreateRoomRequest) (*models.Room, error) {
	taken, err := s.schedule.RoomExistsByName(ctx, schoolID, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("Room name already exists")
	}

	room := &models.Room{
		SchoolID: schoolID,
		Name:     req.Name,
		Capacity: req.Capacity,
		Location: req.Location,
	}
	if err := s.schedule.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// GetRoom retrieves a room within the school.
func (s *ScheduleService) GetRoom(ctx context.Context, schoolID, id int64) (*models.Room, error) {
	return s.schedule.GetRoomByID(ctx, schoolID, id)
}

// ListRooms retrieves rooms of the school.
func (s *ScheduleService) ListRooms(ctx context.Context, schoolID int64, filter repositories.ListFilter) ([]*models.Room, int64, error) {
	return s.schedule.ListRooms(ctx, schoolID, filter)
}

// UpdateRoom applies a partial update, re-checking the name key when it
// changes.
func (s *ScheduleService) UpdateRoom(ctx context.Context, schoolID, id int64, req dto.UpdateRoomRequest) (*models.Room, error) {
	room, err := s.schedule.GetRoomByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		taken, err := s.schedule.RoomExistsByName(ctx, schoolID, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("Room name already exists")
		}
		room.Name = *req.Name
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Location != nil {
		room.Location = req.Location
	}

	if err := s.schedule.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom removes a room unless events still reference it.
func (s *ScheduleService) DeleteRoom(ctx context.Context, schoolID, id int64) error {
	if _, err := s.schedule.GetRoomByID(ctx, schoolID, id); err != nil {
		return err
	}

	hasEvents, err := s.schedule.RoomHasEvents(ctx, schoolID, id)
	if err != nil {
		return err
	}
	if hasEvents {
		return apperrors.NewConflictError("Room is still used by events")
	}

	return s.schedule.DeleteRoom(ctx, schoolID, id)
}

func validateEventWindow(startsAt, endsAt time.Time) error {
	if endsAt.Before(startsAt) {
		return apperrors.NewBadRequestError("Event cannot end before it starts")
	}
	return nil
}

// CreateEvent adds a calendar entry. The end must not precede the start,
// and a referenced room or course must belong to the school.
func (s *ScheduleService) CreateEvent(ctx context.Context, schoolID int64, req dto.CreateEventRequest) (*models.Event, error) {
	if err := validateEventWindow(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}
	if req.RoomID != nil {
		if _, err := s.schedule.GetRoomByID(ctx, schoolID, *req.RoomID); err != nil {
			return nil, err
		}
	}
	if req.CourseID != nil {
		if _, err := s.courses.GetByID(ctx, schoolID, *req.CourseID); err != nil {
			return nil, err
		}
	}

	event := &models.Event{
		SchoolID: schoolID,
		Title:    req.Title,
		Type:     req.Type,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		RoomID:   req.RoomID,
		CourseID: req.CourseID,
		Notes:    req.Notes,
	}
	if err := s.schedule.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetEvent retrieves an event within the school.
func (s *ScheduleService) GetEvent(ctx context.Context, schoolID, id int64) (*models.Event, error) {
	return s.schedule.GetEventByID(ctx, schoolID, id)
}

// ListEvents retrieves events overlapping the [from, to) window.
func (s *ScheduleService) ListEvents(ctx context.Context, schoolID int64, filter repositories.ListFilter, from, to time.Time, roomID, courseID *int64) ([]*models.Event, int64, error) {
	return s.schedule.ListEvents(ctx, schoolID, filter, from, to, roomID, courseID)
}

// UpdateEvent applies a partial update, keeping the time window valid.
func (s *ScheduleService) UpdateEvent(ctx context.Context, schoolID, id int64, req dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.schedule.GetEventByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if err := validateEventWindow(event.StartsAt, event.EndsAt); err != nil {
		return nil, err
	}

	if req.RoomID != nil {
		if _, err := s.schedule.GetRoomByID(ctx, schoolID, *req.RoomID); err != nil {
			return nil, err
		}
		event.RoomID = req.RoomID
	}
	if req.CourseID != nil {
		if _, err := s.courses.GetByID(ctx, schoolID, *req.CourseID); err != nil {
			return nil, err
		}
		event.CourseID = req.CourseID
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Type != nil {
		event.Type = *req.Type
	}
	if req.Notes != nil {
		event.Notes = req.Notes
	}

	if err := s.schedule.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes an event.
func (s *ScheduleService) DeleteEvent(ctx context.Context, schoolID, id int64) error {
	return s.schedule.DeleteEvent(ctx, schoolID, id)
}
