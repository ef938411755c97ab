package dto

import "time"

// CreateRoomRequest is the body of POST /api/rooms.
type CreateRoomRequest struct {
	Name     string  `json:"name" binding:"required"`
	Capacity int     `json:"capacity" binding:"required,gt=0"`
	Location *string `json:"location"`
}

// UpdateRoomRequest is the partial-update body of PUT /api/rooms/:id.
type UpdateRoomRequest struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity" binding:"omitempty,gt=0"`
	Location *string `json:"location"`
}

// CreateEventRequest is the body of POST /api/events.
type CreateEventRequest struct {
	Title    string    `json:"title" binding:"required"`
	Type     string    `json:"type" binding:"required,oneof=lesson exam meeting holiday other"`
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required"`
	RoomID   *int64    `json:"roomId"`
	CourseID *int64    `json:"courseId"`
	Notes    *string   `json:"notes"`
}

// UpdateEventRequest is the partial-update body of PUT /api/events/:id.
type UpdateEventRequest struct {
	Title    *string    `json:"title"`
	Type     *string    `json:"type" binding:"omitempty,oneof=lesson exam meeting holiday other"`
	StartsAt *time.Time `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
	RoomID   *int64     `json:"roomId"`
	CourseID *int64     `json:"courseId"`
	Notes    *string    `json:"notes"`
}

// DashboardStats is the body of GET /api/dashboard/stats, all figures
// scoped to the caller's school.
type DashboardStats struct {
	Students          int64   `json:"students"`
	Teachers          int64   `json:"teachers"`
	Courses           int64   `json:"courses"`
	ActiveEnrollments int64   `json:"activeEnrollments"`
	OpenInvoices      int64   `json:"openInvoices"`
	OutstandingAmount string  `json:"outstandingAmount"`
	AttendanceToday   float64 `json:"attendanceToday"` // fraction present, 0 when nothing recorded
}
