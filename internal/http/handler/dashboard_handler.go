package handler

import (
	"net/http"

	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetStats godoc
// @Summary Dashboard figures
// @Description Work order counts by status, total net value, company and vendor counts and the five most recent work orders
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardStatsResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, "fetch dashboard stats", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.DashboardStatsResponse{Success: true, Stats: *stats})
}
