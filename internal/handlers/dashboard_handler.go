package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assetledger/internal/services"
)

// DashboardHandler serves the aggregated portfolio views.
type DashboardHandler struct {
	aggregation services.AggregationServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(aggregation services.AggregationServicer) *DashboardHandler {
	return &DashboardHandler{aggregation: aggregation}
}

// GetDashboard returns the portfolio overview.
// @Summary     Dashboard
// @Description Total value, per-category totals and counts, chart series, recent assets and recent activity
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      / [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.aggregation.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetChartData returns the category pie chart series.
// @Summary     Chart data
// @Description Labels, values and colors of the per-category breakdown
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ChartData "Chart series"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/chart-data/ [get]
func (h *DashboardHandler) GetChartData(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chart, err := h.aggregation.ChartData(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, chart)
}
