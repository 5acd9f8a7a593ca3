package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pbpl/workorder-api/internal/cache"
	"github.com/pbpl/workorder-api/internal/config"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/service"
	"github.com/pbpl/workorder-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

type fixture struct {
	db         *gorm.DB
	recorder   *service.ActivityRecorder
	numbers    *service.WorkOrderNumberGenerator
	workOrders *service.WorkOrderService
	companies  *service.CompanyService
	vendors    *service.VendorService
	logs       *service.ActivityLogService
	dashboard  *service.DashboardService
	company    *domain.Company
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	woRepo := repository.NewWorkOrderRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	logRepo := repository.NewActivityLogRepository(db)

	recorder := service.NewActivityRecorder(logRepo, 100, time.Second, logger)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = recorder.Close(ctx)
	})

	numbers := service.NewWorkOrderNumberGenerator(repository.NewNumberSequenceRepository(db), "PBPL", time.UTC, logger).
		WithClock(func() time.Time { return fixedNow })

	defaults := config.WorkOrdersConfig{
		NumberPrefix:               "PBPL",
		DefaultSGSTPercent:         9,
		DefaultCGSTPercent:         9,
		DefaultRetentionPercent:    0,
		NumberGenerationMaxRetries: 3,
	}

	f := &fixture{
		db:         db,
		recorder:   recorder,
		numbers:    numbers,
		workOrders: service.NewWorkOrderService(woRepo, companyRepo, numbers, recorder, defaults, logger),
		companies:  service.NewCompanyService(companyRepo, recorder, logger),
		vendors:    service.NewVendorService(vendorRepo, woRepo, recorder, logger),
		logs:       service.NewActivityLogService(logRepo, logger),
		dashboard:  service.NewDashboardService(woRepo, companyRepo, vendorRepo, cache.Noop{}, time.Minute, logger),
		company:    testutil.CreateTestCompany(t, db, "Pune Builders"),
	}
	f.workOrders.OnChange(f.dashboard.Invalidate)
	f.companies.OnChange(f.dashboard.Invalidate)
	f.vendors.OnChange(f.dashboard.Invalidate)
	return f
}

// activity flushes the recorder and returns the entries for one entity
func (f *fixture) activity(t *testing.T, entityType domain.EntityType, entityID string) []domain.ActivityLogDTO {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.recorder.Flush(ctx))

	entries, err := f.logs.ListForEntity(context.Background(), entityType, entityID)
	require.NoError(t, err)
	return entries
}

func (f *fixture) createRequest() *domain.CreateWorkOrderRequest {
	return &domain.CreateWorkOrderRequest{
		CompanyID:       f.company.ID.String(),
		VendorName:      "ABC Construction",
		SiteName:        "Green Valley",
		WorkDescription: "RCC work for block A",
		TotalAmount:     float64Ptr(1000),
	}
}

func float64Ptr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool          { return &v }
func stringPtr(v string) *string    { return &v }
func intPtr(v int) *int             { return &v }
