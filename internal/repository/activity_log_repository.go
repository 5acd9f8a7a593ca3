package repository

import (
	"context"

	"github.com/pbpl/workorder-api/internal/domain"
	"gorm.io/gorm"
)

// ActivityLogFilter represents filter options for querying activity logs
type ActivityLogFilter struct {
	EntityType   string
	EntityID     string
	ActivityType string
}

// ActivityLogRepository handles activity log data access. Entries are
// append-only; there is no update or delete.
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create inserts a new activity log entry
func (r *ActivityLogRepository) Create(ctx context.Context, log *domain.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// List retrieves activity logs, newest first, with pagination and filters
func (r *ActivityLogRepository) List(ctx context.Context, filter *ActivityLogFilter, page, limit int) ([]domain.ActivityLog, int64, error) {
	var logs []domain.ActivityLog
	var total int64

	query := r.applyFilters(r.db.WithContext(ctx).Model(&domain.ActivityLog{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// ListByEntity returns the full history of one entity, newest first
func (r *ActivityLogRepository) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string) ([]domain.ActivityLog, error) {
	var logs []domain.ActivityLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *ActivityLogRepository) applyFilters(query *gorm.DB, filter *ActivityLogFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.ActivityType != "" {
		query = query.Where("activity_type = ?", filter.ActivityType)
	}
	return query
}
