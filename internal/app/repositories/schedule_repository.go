package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

// ScheduleRepository handles rooms and calendar events, scoped by
// schoolID.
type ScheduleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db, sb: newStatementBuilder()}
}

const roomColumns = "id, school_id, name, capacity, location, created_at, updated_at"

func scanRoom(row pgx.Row) (*models.Room, error) {
	rm := &models.Room{}
	err := row.Scan(&rm.ID, &rm.SchoolID, &rm.Name, &rm.Capacity, &rm.Location,
		&rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rm, nil
}

// CreateRoom inserts a room.
func (r *ScheduleRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	sql, args, err := r.sb.Insert("rooms").
		Columns("school_id", "name", "capacity", "location").
		Values(room.SchoolID, room.Name, room.Capacity, room.Location).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create room query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating room: %w", err)
	}
	return nil
}

// GetRoomByID retrieves a room within a school.
func (r *ScheduleRepository) GetRoomByID(ctx context.Context, schoolID, id int64) (*models.Room, error) {
	sql, args, err := r.sb.Select(roomColumns).
		From("rooms").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get room query: %w", err)
	}

	room, err := scanRoom(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Room not found")
		}
		return nil, fmt.Errorf("error getting room by ID: %w", err)
	}
	return room, nil
}

// ListRooms retrieves rooms of a school.
func (r *ScheduleRepository) ListRooms(ctx context.Context, schoolID int64, filter ListFilter) ([]*models.Room, int64, error) {
	base := r.sb.Select(roomColumns).From("rooms").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("rooms").Where(squirrel.Eq{"school_id": schoolID})

	if filter.Search != "" {
		cond := squirrel.ILike{"name": searchPattern(filter.Search)}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count rooms query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting rooms: %w", err)
	}

	sql, args, err = base.
		OrderBy("name ASC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list rooms query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	rooms := []*models.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

// RoomExistsByName checks the name natural key within a school, excluding
// excludeID (0 for creates).
func (r *ScheduleRepository) RoomExistsByName(ctx context.Context, schoolID int64, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM rooms
		 WHERE school_id = $1 AND LOWER(name) = LOWER($2) AND id != $3)`,
		schoolID, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking room existence: %w", err)
	}
	return exists, nil
}

// UpdateRoom rewrites the mutable columns of a room.
func (r *ScheduleRepository) UpdateRoom(ctx context.Context, room *models.Room) error {
	sql, args, err := r.sb.Update("rooms").
		Set("name", room.Name).
		Set("capacity", room.Capacity).
		Set("location", room.Location).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": room.ID, "school_id": room.SchoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update room query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating room: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Room not found")
	}
	return nil
}

// RoomHasEvents reports whether any event still references the room.
func (r *ScheduleRepository) RoomHasEvents(ctx context.Context, schoolID, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM events WHERE room_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking room events: %w", err)
	}
	return exists, nil
}

// DeleteRoom removes a room within a school.
func (r *ScheduleRepository) DeleteRoom(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM rooms WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting room: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Room not found")
	}
	return nil
}

const eventColumns = "id, school_id, title, type, starts_at, ends_at, room_id, course_id, notes, created_at, updated_at"

func scanEvent(row pgx.Row) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(&e.ID, &e.SchoolID, &e.Title, &e.Type, &e.StartsAt, &e.EndsAt,
		&e.RoomID, &e.CourseID, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEvent inserts an event.
func (r *ScheduleRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Insert("events").
		Columns("school_id", "title", "type", "starts_at", "ends_at", "room_id", "course_id", "notes").
		Values(event.SchoolID, event.Title, event.Type, event.StartsAt, event.EndsAt,
			event.RoomID, event.CourseID, event.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create event query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// GetEventByID retrieves an event within a school.
func (r *ScheduleRepository) GetEventByID(ctx context.Context, schoolID, id int64) (*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns).
		From("events").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Event not found")
		}
		return nil, fmt.Errorf("error getting event by ID: %w", err)
	}
	return event, nil
}

// ListEvents retrieves events of a school overlapping the [from, to)
// window when those bounds are non-zero. RoomID and courseID narrow the
// result when non-nil.
func (r *ScheduleRepository) ListEvents(ctx context.Context, schoolID int64, filter ListFilter, from, to time.Time, roomID, courseID *int64) ([]*models.Event, int64, error) {
	base := r.sb.Select(eventColumns).From("events").Where(squirrel.Eq{"school_id": schoolID})
	countQ := r.sb.Select("COUNT(*)").From("events").Where(squirrel.Eq{"school_id": schoolID})

	if filter.Search != "" {
		cond := squirrel.ILike{"title": searchPattern(filter.Search)}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}
	if !from.IsZero() {
		base = base.Where(squirrel.GtOrEq{"ends_at": from})
		countQ = countQ.Where(squirrel.GtOrEq{"ends_at": from})
	}
	if !to.IsZero() {
		base = base.Where(squirrel.Lt{"starts_at": to})
		countQ = countQ.Where(squirrel.Lt{"starts_at": to})
	}
	if roomID != nil {
		base = base.Where(squirrel.Eq{"room_id": *roomID})
		countQ = countQ.Where(squirrel.Eq{"room_id": *roomID})
	}
	if courseID != nil {
		base = base.Where(squirrel.Eq{"course_id": *courseID})
		countQ = countQ.Where(squirrel.Eq{"course_id": *courseID})
	}

	var total int64
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count events query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting events: %w", err)
	}

	sql, args, err = base.
		OrderBy("starts_at ASC", "id ASC").
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// UpdateEvent rewrites the mutable columns of an event.
func (r *ScheduleRepository) UpdateEvent(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Update("events").
		Set("title", event.Title).
		Set("type", event.Type).
		Set("starts_at", event.StartsAt).
		Set("ends_at", event.EndsAt).
		Set("room_id", event.RoomID).
		Set("course_id", event.CourseID).
		Set("notes", event.Notes).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": event.ID, "school_id": event.SchoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Event not found")
	}
	return nil
}

// DeleteEvent removes an event within a school.
func (r *ScheduleRepository) DeleteEvent(ctx context.Context, schoolID, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM events WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Event not found")
	}
	return nil
}
