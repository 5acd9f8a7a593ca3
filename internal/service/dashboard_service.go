package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pbpl/workorder-api/internal/cache"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/mapper"
	"github.com/pbpl/workorder-api/internal/repository"
	"go.uber.org/zap"
)

const (
	dashboardStatsKey   = "dashboard:stats"
	recentWorkOrderSize = 5
)

// DashboardService aggregates work-order figures for the dashboard
type DashboardService struct {
	woRepo      *repository.WorkOrderRepository
	companyRepo *repository.CompanyRepository
	vendorRepo  *repository.VendorRepository
	cache       cache.Cache
	ttl         time.Duration
	logger      *zap.Logger
}

// NewDashboardService creates a new dashboard service. A nil cache disables caching.
func NewDashboardService(
	woRepo *repository.WorkOrderRepository,
	companyRepo *repository.CompanyRepository,
	vendorRepo *repository.VendorRepository,
	c cache.Cache,
	ttl time.Duration,
	logger *zap.Logger,
) *DashboardService {
	if c == nil {
		c = cache.Noop{}
	}
	return &DashboardService{
		woRepo:      woRepo,
		companyRepo: companyRepo,
		vendorRepo:  vendorRepo,
		cache:       c,
		ttl:         ttl,
		logger:      logger,
	}
}

// GetStats returns status counts, totals and the most recent work orders
func (s *DashboardService) GetStats(ctx context.Context) (*domain.DashboardStatsDTO, error) {
	if data, ok := s.cache.Get(ctx, dashboardStatsKey); ok {
		var stats domain.DashboardStatsDTO
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	counts, err := s.woRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count work orders: %w", err)
	}

	stats := &domain.DashboardStatsDTO{
		StatusCounts: make(map[string]int64, len(domain.WorkOrderStatuses)),
	}
	for _, st := range domain.WorkOrderStatuses {
		stats.StatusCounts[string(st)] = 0
	}
	for _, c := range counts {
		stats.StatusCounts[string(c.Status)] = c.Count
		stats.TotalWorkOrders += c.Count
		switch c.Status {
		case domain.WorkOrderStatusActive, domain.WorkOrderStatusInProgress:
			stats.ActiveWorkOrders += c.Count
		case domain.WorkOrderStatusDraft:
			stats.PendingApprovals += c.Count
		case domain.WorkOrderStatusCompleted:
			stats.CompletedWorkOrders += c.Count
		}
	}

	total, err := s.woRepo.SumNetAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total work orders: %w", err)
	}
	stats.TotalNetValue = mapper.Money(total.Round(amountPlaces))

	if stats.TotalCompanies, err = s.companyRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count companies: %w", err)
	}
	if stats.TotalVendors, err = s.vendorRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count vendors: %w", err)
	}

	recent, err := s.woRepo.List(ctx, &repository.WorkOrderFilters{Limit: recentWorkOrderSize})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent work orders: %w", err)
	}
	stats.RecentWorkOrders = mapper.ToWorkOrderListDTO(recent)

	if data, err := json.Marshal(stats); err == nil {
		s.cache.Set(ctx, dashboardStatsKey, data, s.ttl)
	}
	return stats, nil
}

// Invalidate drops cached figures after a write
func (s *DashboardService) Invalidate(ctx context.Context) {
	s.cache.Delete(ctx, dashboardStatsKey)
}
