package handler

import (
	"net/http"
	"strconv"

	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/service"
	"go.uber.org/zap"
)

type ActivityLogHandler struct {
	activityLogService *service.ActivityLogService
	logger             *zap.Logger
}

func NewActivityLogHandler(activityLogService *service.ActivityLogService, logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{
		activityLogService: activityLogService,
		logger:             logger,
	}
}

// List godoc
// @Summary List activity logs
// @Description Paginated activity feed, newest first
// @Tags Activity Logs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 200)" default(50)
// @Param entity_type query string false "Filter by entity type"
// @Param entity_id query string false "Filter by entity id"
// @Param activity_type query string false "Filter by activity type" Enums(CREATE, UPDATE, DELETE, STATUS_CHANGE)
// @Success 200 {object} domain.ActivityLogListResponse
// @Router /activity-logs [get]
func (h *ActivityLogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	filter := &repository.ActivityLogFilter{
		EntityType:   q.Get("entity_type"),
		EntityID:     q.Get("entity_id"),
		ActivityType: q.Get("activity_type"),
	}

	logs, pagination, err := h.activityLogService.List(r.Context(), filter, page, limit)
	if err != nil {
		respondServiceError(w, h.logger, "fetch activity logs", err)
		return
	}

	respondJSON(w, http.StatusOK, domain.ActivityLogListResponse{
		Success:      true,
		ActivityLogs: logs,
		Pagination:   &pagination,
	})
}

// Create godoc
// @Summary Create activity log entry
// @Tags Activity Logs
// @Accept json
// @Produce json
// @Param request body domain.CreateActivityLogRequest true "Entry"
// @Success 200 {object} domain.ActivityLogResponse
// @Failure 400 {object} domain.ErrorResponse
// @Router /activity-logs [post]
func (h *ActivityLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateActivityLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.activityLogService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, "create activity log", err)
		return
	}

	respondJSON(w, http.StatusOK, domain.ActivityLogResponse{
		Success:     true,
		ActivityLog: entry,
		Message:     "Activity logged successfully",
	})
}
