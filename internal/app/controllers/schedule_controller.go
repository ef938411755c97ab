package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/helpers"
)

// ScheduleController handles rooms and calendar events.
type ScheduleController struct {
	scheduleService *services.ScheduleService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService *services.ScheduleService) *ScheduleController {
	return &ScheduleController{scheduleService: scheduleService}
}

// queryTime reads an optional timestamp query parameter. RFC 3339 and
// plain dates are both accepted; a missing parameter yields the zero time.
func queryTime(ctx *gin.Context, name string) (time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: fmt.Sprintf("%s must be an RFC 3339 timestamp or a date (YYYY-MM-DD)", name),
	})
	return time.Time{}, false
}

// CreateRoom adds a room
// @Summary Create room
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Room data"
// @Success 201 {object} models.Room
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 400 {object} dto.ErrorResponse "Room name already exists"
// @Router /rooms [post]
func (c *ScheduleController) CreateRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	room, err := c.scheduleService.CreateRoom(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, room)
}

// GetRoom retrieves a room
// @Summary Get room
// @Tags schedule
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} models.Room
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id} [get]
func (c *ScheduleController) GetRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	room, err := c.scheduleService.GetRoom(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, room)
}

// ListRooms retrieves rooms
// @Summary List rooms
// @Tags schedule
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Name search"
// @Success 200 {object} dto.ListResponse
// @Router /rooms [get]
func (c *ScheduleController) ListRooms(ctx *gin.Context) {
	filter := parseFilter(ctx)

	rooms, total, err := c.scheduleService.ListRooms(ctx.Request.Context(), middleware.SchoolID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewListResponse(rooms, total, filter.Page, filter.Limit))
}

// UpdateRoom partially updates a room
// @Summary Update room
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Fields to change"
// @Success 200 {object} models.Room
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Failure 400 {object} dto.ErrorResponse "Room name already exists"
// @Router /rooms/{id} [put]
func (c *ScheduleController) UpdateRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	room, err := c.scheduleService.UpdateRoom(ctx.Request.Context(), middleware.SchoolID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, room)
}

// DeleteRoom removes a room
// @Summary Delete room
// @Tags schedule
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Failure 400 {object} dto.ErrorResponse "Room is still used by events"
// @Router /rooms/{id} [delete]
func (c *ScheduleController) DeleteRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.scheduleService.DeleteRoom(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Room deleted"})
}

// CreateEvent adds a calendar event
// @Summary Create event
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 201 {object} models.Event
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or time window"
// @Failure 404 {object} dto.ErrorResponse "Room or course not found"
// @Router /events [post]
func (c *ScheduleController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	event, err := c.scheduleService.CreateEvent(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, event)
}

// GetEvent retrieves an event
// @Summary Get event
// @Tags schedule
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} models.Event
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *ScheduleController) GetEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	event, err := c.scheduleService.GetEvent(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, event)
}

// ListEvents retrieves events overlapping a time window
// @Summary List events
// @Tags schedule
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Title search"
// @Param from query string false "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "Window end (RFC 3339 or YYYY-MM-DD)"
// @Param roomId query int false "Room filter"
// @Param courseId query int false "Course filter"
// @Success 200 {object} dto.ListResponse
// @Router /events [get]
func (c *ScheduleController) ListEvents(ctx *gin.Context) {
	filter := parseFilter(ctx)
	from, ok := queryTime(ctx, "from")
	if !ok {
		return
	}
	to, ok := queryTime(ctx, "to")
	if !ok {
		return
	}
	roomID, ok := queryInt64Ptr(ctx, "roomId")
	if !ok {
		return
	}
	courseID, ok := queryInt64Ptr(ctx, "courseId")
	if !ok {
		return
	}

	events, total, err := c.scheduleService.ListEvents(ctx.Request.Context(), middleware.SchoolID(ctx), filter, from, to, roomID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewListResponse(events, total, filter.Page, filter.Limit))
}

// UpdateEvent partially updates an event
// @Summary Update event
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} models.Event
// @Failure 400 {object} dto.ErrorResponse "Invalid time window"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *ScheduleController) UpdateEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	event, err := c.scheduleService.UpdateEvent(ctx.Request.Context(), middleware.SchoolID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event
// @Summary Delete event
// @Tags schedule
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *ScheduleController) DeleteEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.scheduleService.DeleteEvent(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Event deleted"})
}
