package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pbpl/workorder-api/internal/auth"
	"github.com/pbpl/workorder-api/internal/config"
	"github.com/pbpl/workorder-api/internal/http/handler"
	"github.com/pbpl/workorder-api/internal/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/pbpl/workorder-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	authMiddleware     *auth.Middleware
	rateLimiter        *middleware.RateLimiter
	healthHandler      *handler.HealthHandler
	authHandler        *handler.AuthHandler
	workOrderHandler   *handler.WorkOrderHandler
	companyHandler     *handler.CompanyHandler
	vendorHandler      *handler.VendorHandler
	activityLogHandler *handler.ActivityLogHandler
	dashboardHandler   *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	workOrderHandler *handler.WorkOrderHandler,
	companyHandler *handler.CompanyHandler,
	vendorHandler *handler.VendorHandler,
	activityLogHandler *handler.ActivityLogHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		authMiddleware:     authMiddleware,
		rateLimiter:        rateLimiter,
		healthHandler:      healthHandler,
		authHandler:        authHandler,
		workOrderHandler:   workOrderHandler,
		companyHandler:     companyHandler,
		vendorHandler:      vendorHandler,
		activityLogHandler: activityLogHandler,
		dashboardHandler:   dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))

	// Probes
	r.Get("/health", rt.healthHandler.Live)
	r.Get("/health/db", rt.healthHandler.Database)
	r.Get("/health/ready", rt.healthHandler.Ready)

	if rt.cfg.Server.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(rt.authMiddleware.Identify)
		r.Use(rt.rateLimiter.Limit)
		if timeout := rt.cfg.Server.RequestTimeoutDuration(); timeout > 0 {
			r.Use(chimw.Timeout(timeout))
		}

		r.Get("/auth/me", rt.authHandler.Me)

		r.Route("/work-orders", func(r chi.Router) {
			r.Get("/", rt.workOrderHandler.List)
			r.Post("/", rt.workOrderHandler.Create)
			r.Get("/pending-payments", rt.workOrderHandler.PendingPayments)
			r.Get("/export", rt.workOrderHandler.Export)
			r.Get("/{id}", rt.workOrderHandler.GetByID)
			r.Put("/{id}", rt.workOrderHandler.Update)
			r.With(rt.authMiddleware.RequireAdmin).Delete("/{id}", rt.workOrderHandler.Delete)
			r.Get("/{id}/pdf", rt.workOrderHandler.PDF)
			r.Get("/{id}/document", rt.workOrderHandler.Document)
			r.Get("/{id}/activity", rt.workOrderHandler.Activity)
		})

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", rt.companyHandler.List)
			r.Post("/", rt.companyHandler.Create)
			r.Get("/{id}", rt.companyHandler.GetByID)
			r.Put("/{id}", rt.companyHandler.Update)
			r.Delete("/{id}", rt.companyHandler.Delete)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", rt.vendorHandler.List)
			r.Post("/", rt.vendorHandler.Create)
			r.Get("/{id}", rt.vendorHandler.GetByID)
			r.Put("/{id}", rt.vendorHandler.Update)
			r.Delete("/{id}", rt.vendorHandler.Delete)
		})

		r.Route("/activity-logs", func(r chi.Router) {
			r.Get("/", rt.activityLogHandler.List)
			r.Post("/", rt.activityLogHandler.Create)
		})

		r.Get("/dashboard/stats", rt.dashboardHandler.GetStats)
	})

	return r
}
