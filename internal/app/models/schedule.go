package models

import "time"

// Room is a physical classroom based on the 'rooms' table. Name is unique
// within a school.
type Room struct {
	ID        int64     `json:"id" db:"id"`
	SchoolID  int64     `json:"schoolId" db:"school_id"`
	Name      string    `json:"name" db:"name" example:"Lokaal 2.1"`
	Capacity  int       `json:"capacity" db:"capacity"`
	Location  *string   `json:"location,omitempty" db:"location"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Event is a calendar entry (lesson, exam, meeting) based on the 'events'
// table. EndsAt must not precede StartsAt.
type Event struct {
	ID        int64     `json:"id" db:"id"`
	SchoolID  int64     `json:"schoolId" db:"school_id"`
	Title     string    `json:"title" db:"title"`
	Type      string    `json:"type" db:"type" example:"lesson"`
	StartsAt  time.Time `json:"startsAt" db:"starts_at"`
	EndsAt    time.Time `json:"endsAt" db:"ends_at"`
	RoomID    *int64    `json:"roomId,omitempty" db:"room_id"`
	CourseID  *int64    `json:"courseId,omitempty" db:"course_id"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Room *Room `json:"room,omitempty"` // Relation, no db tag
}
