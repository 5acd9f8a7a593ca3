package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pbpl/workorder-api/docs"
	"github.com/pbpl/workorder-api/internal/auth"
	"github.com/pbpl/workorder-api/internal/cache"
	"github.com/pbpl/workorder-api/internal/config"
	"github.com/pbpl/workorder-api/internal/database"
	"github.com/pbpl/workorder-api/internal/datawarehouse"
	"github.com/pbpl/workorder-api/internal/document"
	"github.com/pbpl/workorder-api/internal/http/handler"
	"github.com/pbpl/workorder-api/internal/http/middleware"
	"github.com/pbpl/workorder-api/internal/http/router"
	"github.com/pbpl/workorder-api/internal/jobs"
	"github.com/pbpl/workorder-api/internal/logger"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/service"
	"github.com/pbpl/workorder-api/internal/storage"
	"go.uber.org/zap"
)

// @title PBPL Work Order API
// @version 1.0
// @description Work orders, companies, vendors and activity logs for construction sub-contracting

// @contact.name API Support

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API key for system integrations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if host := os.Getenv("SWAGGER_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	} else {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In staging/production secrets may come from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.Driver == "sqlite" {
		// PostgreSQL schemas are managed by cmd/migrate
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
	}

	var archive storage.Storage
	if cfg.Document.Archive {
		archive, err = storage.NewStorage(&cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		log.Info("Document archive enabled", zap.String("mode", cfg.Storage.Mode))
	}

	// The warehouse only feeds the vendor import; the API runs without it
	var dwClient *datawarehouse.Client
	if cfg.DataWarehouse.Enabled {
		dwClient, err = datawarehouse.NewClient(&cfg.DataWarehouse, log)
		if err != nil {
			log.Warn("Data warehouse connection failed, continuing without it", zap.Error(err))
		}
	}

	appCache := cache.New(&cfg.Cache, log)
	if closer, ok := appCache.(*cache.RedisCache); ok {
		defer func() { _ = closer.Close() }()
	}

	// Repositories
	workOrderRepo := repository.NewWorkOrderRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	activityLogRepo := repository.NewActivityLogRepository(db)
	numberSequenceRepo := repository.NewNumberSequenceRepository(db)

	// Services
	recorder := service.NewActivityRecorder(activityLogRepo, cfg.ActivityLog.QueueSize, cfg.ActivityLog.WriteTimeout(), log)
	numbers := service.NewWorkOrderNumberGenerator(numberSequenceRepo, cfg.WorkOrders.NumberPrefix, cfg.App.Location(), log)

	workOrderService := service.NewWorkOrderService(workOrderRepo, companyRepo, numbers, recorder, cfg.WorkOrders, log)
	companyService := service.NewCompanyService(companyRepo, recorder, log)
	vendorService := service.NewVendorService(vendorRepo, workOrderRepo, recorder, log)
	activityLogService := service.NewActivityLogService(activityLogRepo, log)
	dashboardService := service.NewDashboardService(workOrderRepo, companyRepo, vendorRepo, appCache, cfg.Cache.TTL(), log)
	workOrderService.OnChange(dashboardService.Invalidate)
	companyService.OnChange(dashboardService.Invalidate)
	vendorService.OnChange(dashboardService.Invalidate)

	engine, err := document.NewEngine(&cfg.Document)
	if err != nil {
		return fmt.Errorf("failed to initialize document engine: %w", err)
	}
	documentService := document.NewService(workOrderRepo, engine, archive, cfg.Document.Timeout(), log)

	// Middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	healthHandler := handler.NewHealthHandler(db, appCache, log).WithWarehouse(dwClient)
	authHandler := handler.NewAuthHandler(cfg.Auth.AdminRole, cfg.Auth.Enabled, log)
	workOrderHandler := handler.NewWorkOrderHandler(workOrderService, activityLogService, documentService, log)
	companyHandler := handler.NewCompanyHandler(companyService, log)
	vendorHandler := handler.NewVendorHandler(vendorService, log)
	activityLogHandler := handler.NewActivityLogHandler(activityLogService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	rt := router.NewRouter(
		cfg,
		log,
		authMiddleware,
		rateLimiter,
		healthHandler,
		authHandler,
		workOrderHandler,
		companyHandler,
		vendorHandler,
		activityLogHandler,
		dashboardHandler,
	)

	var scheduler *jobs.Scheduler
	if dwClient.IsEnabled() {
		scheduler = jobs.NewScheduler(log)
		job := jobs.NewERPVendorSyncJob(dwClient, vendorService, log, jobs.DefaultERPVendorSyncTimeout)
		if err := jobs.RegisterERPVendorSyncJob(scheduler, job, cfg.DataWarehouse.VendorSyncCron, true); err != nil {
			log.Error("Failed to register ERP vendor sync job", zap.Error(err))
		} else {
			scheduler.Start()
		}
	} else {
		log.Info("ERP vendor sync disabled", zap.Bool("dw_enabled", cfg.DataWarehouse.Enabled))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// drain activity events queued by the last requests
		if err := recorder.Close(ctx); err != nil {
			log.Warn("Activity log queue not fully drained", zap.Error(err))
		}

		if err := dwClient.Close(); err != nil {
			log.Warn("Error closing data warehouse connection", zap.Error(err))
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
