package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
)

// DashboardController serves aggregate school statistics.
type DashboardController struct {
	statsService *services.StatsService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(statsService *services.StatsService) *DashboardController {
	return &DashboardController{statsService: statsService}
}

// Stats returns the dashboard counters for the current school
// @Summary Dashboard statistics
// @Description Headcounts, enrollment, billing and today's attendance in one call
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardStats
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	stats, err := c.statsService.Dashboard(ctx.Request.Context(), middleware.SchoolID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
