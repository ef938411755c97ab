package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/helpers"
)

// GuardianController handles guardian record management.
type GuardianController struct {
	guardianService *services.GuardianService
}

// NewGuardianController creates a new GuardianController
func NewGuardianController(guardianService *services.GuardianService) *GuardianController {
	return &GuardianController{guardianService: guardianService}
}

// Create registers a guardian
// @Summary Create guardian
// @Tags guardians
// @Accept json
// @Produce json
// @Param request body dto.CreateGuardianRequest true "Guardian data"
// @Success 201 {object} models.Guardian
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 400 {object} dto.ErrorResponse "Guardian email already exists"
// @Router /guardians [post]
func (c *GuardianController) Create(ctx *gin.Context) {
	var req dto.CreateGuardianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	guardian, err := c.guardianService.Create(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, guardian)
}

// Get retrieves a guardian
// @Summary Get guardian
// @Tags guardians
// @Produce json
// @Param id path int true "Guardian ID"
// @Success 200 {object} models.Guardian
// @Failure 404 {object} dto.ErrorResponse "Guardian not found"
// @Router /guardians/{id} [get]
func (c *GuardianController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	guardian, err := c.guardianService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, guardian)
}

// List retrieves guardians
// @Summary List guardians
// @Tags guardians
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Name or email search"
// @Success 200 {object} dto.ListResponse
// @Router /guardians [get]
func (c *GuardianController) List(ctx *gin.Context) {
	filter := parseFilter(ctx)

	guardians, total, err := c.guardianService.List(ctx.Request.Context(), middleware.SchoolID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewListResponse(guardians, total, filter.Page, filter.Limit))
}

// Update partially updates a guardian
// @Summary Update guardian
// @Tags guardians
// @Accept json
// @Produce json
// @Param id path int true "Guardian ID"
// @Param request body dto.UpdateGuardianRequest true "Fields to change"
// @Success 200 {object} models.Guardian
// @Failure 404 {object} dto.ErrorResponse "Guardian not found"
// @Router /guardians/{id} [put]
func (c *GuardianController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateGuardianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	guardian, err := c.guardianService.Update(ctx.Request.Context(), middleware.SchoolID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, guardian)
}

// Delete removes a guardian
// @Summary Delete guardian
// @Description Fails with 400 while students still reference the guardian
// @Tags guardians
// @Produce json
// @Param id path int true "Guardian ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Guardian not found"
// @Failure 400 {object} dto.ErrorResponse "Guardian is still linked to students"
// @Router /guardians/{id} [delete]
func (c *GuardianController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.guardianService.Delete(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Guardian deleted"})
}
