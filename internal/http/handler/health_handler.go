package handler

import (
	"net/http"

	"github.com/pbpl/workorder-api/internal/cache"
	"github.com/pbpl/workorder-api/internal/database"
	"github.com/pbpl/workorder-api/internal/datawarehouse"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	db        *gorm.DB
	cache     cache.Cache
	warehouse *datawarehouse.Client
	logger    *zap.Logger
}

// NewHealthHandler creates the probe handler. cache may be nil.
func NewHealthHandler(db *gorm.DB, c cache.Cache, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, cache: c, logger: logger}
}

// WithWarehouse adds the ERP data warehouse to the readiness report
func (h *HealthHandler) WithWarehouse(client *datawarehouse.Client) *HealthHandler {
	h.warehouse = client
	return h
}

// Live is the basic liveness probe
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Database reports the database pool statistics
func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(h.db)
	if err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	})
}

// Ready checks every dependency the API needs to serve traffic
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]interface{})
	allHealthy := true

	if err := database.HealthCheck(h.db); err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
		allHealthy = false
	} else {
		checks["database"] = map[string]interface{}{"status": "healthy"}
	}

	// cache and warehouse failures degrade rather than fail readiness
	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			h.logger.Warn("Cache health check failed", zap.Error(err))
			checks["cache"] = map[string]interface{}{"status": "degraded", "error": err.Error()}
		} else {
			checks["cache"] = map[string]interface{}{"status": "healthy"}
		}
	}

	if h.warehouse.IsEnabled() {
		checks["data_warehouse"] = h.warehouse.HealthCheck(r.Context())
	}

	status, code := "healthy", http.StatusOK
	if !allHealthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
