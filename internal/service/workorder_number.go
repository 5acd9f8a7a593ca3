package service

import (
	"context"
	"time"

	"github.com/pbpl/workorder-api/internal/finance"
	"github.com/pbpl/workorder-api/internal/metrics"
	"github.com/pbpl/workorder-api/internal/repository"
	"go.uber.org/zap"
)

// WorkOrderNumberGenerator assigns work-order numbers from a per-day sequence.
//
// Format: W.O.<DDMMYYYY>-<PREFIX>-<SITE>-<VENDOR>-<NN>
// Example: W.O.15012025-PBPL-GREEN-ABCCONST-03
type WorkOrderNumberGenerator struct {
	repo     *repository.NumberSequenceRepository
	prefix   string
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewWorkOrderNumberGenerator creates a generator that counts days in loc
func NewWorkOrderNumberGenerator(repo *repository.NumberSequenceRepository, prefix string, loc *time.Location, logger *zap.Logger) *WorkOrderNumberGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &WorkOrderNumberGenerator{
		repo:     repo,
		prefix:   prefix,
		location: loc,
		now:      time.Now,
		logger:   logger,
	}
}

// Generate returns the next number for a work order to vendorName at
// siteName. If no sequence can be obtained the WO-<millis> fallback is
// returned instead; Generate itself never fails.
func (g *WorkOrderNumberGenerator) Generate(ctx context.Context, vendorName, siteName string) string {
	now := g.now().In(g.location)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, g.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	seq, err := g.repo.NextDaySequence(ctx, dayStart.Format("2006-01-02"), dayStart, dayEnd)
	if err != nil {
		g.logger.Warn("failed to get work order sequence, using fallback number", zap.Error(err))
		metrics.NumbersGeneratedTotal.WithLabelValues(metrics.NumberSourceFallback).Inc()
		return finance.FallbackWorkOrderNumber(now)
	}

	metrics.NumbersGeneratedTotal.WithLabelValues(metrics.NumberSourceSequence).Inc()
	return finance.FormatWorkOrderNumber(g.prefix, vendorName, siteName, now, seq)
}

// Today returns the current date in the generator's timezone at midnight UTC,
// the form stored in date columns.
func (g *WorkOrderNumberGenerator) Today() time.Time {
	now := g.now().In(g.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// WithClock replaces the generator's time source
func (g *WorkOrderNumberGenerator) WithClock(now func() time.Time) *WorkOrderNumberGenerator {
	g.now = now
	return g
}
