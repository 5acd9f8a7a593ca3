package jobs

import (
	"context"
	"time"

	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/metrics"
	"go.uber.org/zap"
)

// ERPVendorSyncJobName is the scheduler name of the vendor import
const ERPVendorSyncJobName = "erp_vendor_sync"

// DefaultERPVendorSyncTimeout bounds one import run
const DefaultERPVendorSyncTimeout = 5 * time.Minute

// VendorSource reads the ERP vendor master
type VendorSource interface {
	FetchVendors(ctx context.Context) ([]domain.ERPVendor, error)
}

// VendorImporter upserts ERP vendors into the vendor master
type VendorImporter interface {
	ImportFromERP(ctx context.Context, records []domain.ERPVendor) domain.VendorImportResult
}

// ERPVendorSyncJob copies the ERP vendor master into the vendors table
type ERPVendorSyncJob struct {
	source   VendorSource
	importer VendorImporter
	logger   *zap.Logger
	timeout  time.Duration
}

// NewERPVendorSyncJob creates the job. A zero timeout uses the default.
func NewERPVendorSyncJob(source VendorSource, importer VendorImporter, logger *zap.Logger, timeout time.Duration) *ERPVendorSyncJob {
	if timeout <= 0 {
		timeout = DefaultERPVendorSyncTimeout
	}
	return &ERPVendorSyncJob{
		source:   source,
		importer: importer,
		logger:   logger,
		timeout:  timeout,
	}
}

// Run fetches and imports the vendor master once
func (j *ERPVendorSyncJob) Run(ctx context.Context) domain.VendorImportResult {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	start := time.Now()
	records, err := j.source.FetchVendors(ctx)
	if err != nil {
		metrics.VendorSyncTotal.WithLabelValues("fetch_error").Inc()
		j.logger.Error("erp vendor fetch failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return domain.VendorImportResult{}
	}

	result := j.importer.ImportFromERP(ctx, records)
	metrics.VendorSyncTotal.WithLabelValues("created").Add(float64(result.Created))
	metrics.VendorSyncTotal.WithLabelValues("updated").Add(float64(result.Updated))
	metrics.VendorSyncTotal.WithLabelValues("skipped").Add(float64(result.Skipped))
	metrics.VendorSyncTotal.WithLabelValues("failed").Add(float64(result.Failed))

	j.logger.Info("erp vendor sync completed",
		zap.Int("fetched", len(records)),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", time.Since(start)))
	return result
}

// RegisterERPVendorSyncJob adds the import to the scheduler. With
// runAtStartup the first import runs immediately in the background.
func RegisterERPVendorSyncJob(scheduler *Scheduler, job *ERPVendorSyncJob, cronExpr string, runAtStartup bool) error {
	if err := scheduler.AddJob(ERPVendorSyncJobName, cronExpr, func(ctx context.Context) { job.Run(ctx) }); err != nil {
		return err
	}
	if runAtStartup {
		go job.Run(scheduler.ctx)
	}
	return nil
}
