package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/helpers"
)

// ProgramController handles the program catalog.
type ProgramController struct {
	programService *services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService *services.ProgramService) *ProgramController {
	return &ProgramController{programService: programService}
}

// Create adds a program
// @Summary Create program
// @Tags programs
// @Accept json
// @Produce json
// @Param request body dto.CreateProgramRequest true "Program data"
// @Success 201 {object} models.Program
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 400 {object} dto.ErrorResponse "Program code already exists"
// @Router /programs [post]
func (c *ProgramController) Create(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	program, err := c.programService.Create(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, program)
}

// Get retrieves a program
// @Summary Get program
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} models.Program
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [get]
func (c *ProgramController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	program, err := c.programService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, program)
}

// List retrieves programs
// @Summary List programs
// @Tags programs
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Name or code search"
// @Success 200 {object} dto.ListResponse
// @Router /programs [get]
func (c *ProgramController) List(ctx *gin.Context) {
	filter := parseFilter(ctx)

	programs, total, err := c.programService.List(ctx.Request.Context(), middleware.SchoolID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewListResponse(programs, total, filter.Page, filter.Limit))
}

// Update partially updates a program
// @Summary Update program
// @Tags programs
// @Accept json
// @Produce json
// @Param id path int true "Program ID"
// @Param request body dto.UpdateProgramRequest true "Fields to change"
// @Success 200 {object} models.Program
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 400 {object} dto.ErrorResponse "Program code already exists"
// @Router /programs/{id} [put]
func (c *ProgramController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	program, err := c.programService.Update(ctx.Request.Context(), middleware.SchoolID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, program)
}

// Delete removes a program
// @Summary Delete program
// @Description Fails with 400 while courses still reference the program
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 400 {object} dto.ErrorResponse "Program still has courses"
// @Router /programs/{id} [delete]
func (c *ProgramController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.programService.Delete(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Program deleted"})
}
