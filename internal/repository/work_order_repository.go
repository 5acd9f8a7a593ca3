package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// workOrderDetailColumns selects a work order together with the issuing
// company's fields under the names WorkOrderDetail expects.
const workOrderDetailColumns = `work_orders.*,
	companies.company_name AS company_name,
	companies.address AS company_address,
	companies.city AS company_city,
	companies.state AS company_state,
	companies.pincode AS company_pincode,
	companies.contact_person AS company_contact_person,
	companies.contact_number AS company_contact_number,
	companies.gst_number AS company_gst,
	companies.bank_name AS company_bank_name,
	companies.bank_account_number AS company_account_number,
	companies.bank_ifsc AS company_ifsc,
	companies.signatory_name AS company_signatory_name,
	companies.signatory_designation AS company_signatory_designation`

// WorkOrderFilters defines filter options for work order listing
type WorkOrderFilters struct {
	Search    string
	Status    *domain.WorkOrderStatus
	CompanyID *uuid.UUID
	// Statuses restricts to any of the listed statuses when non-empty
	Statuses []domain.WorkOrderStatus
	// PositiveNetOnly keeps rows with net_amount > 0
	PositiveNetOnly bool
	Limit           int
}

// WorkOrderRepository handles work order data access operations
type WorkOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a new work order repository instance
func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

// Create inserts a new work order. A duplicate wo_number surfaces as
// gorm.ErrDuplicatedKey.
func (r *WorkOrderRepository) Create(ctx context.Context, wo *domain.WorkOrder) error {
	return r.db.WithContext(ctx).Create(wo).Error
}

// GetByID retrieves a work order row by its ID
func (r *WorkOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkOrder, error) {
	var wo domain.WorkOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&wo).Error
	if err != nil {
		return nil, err
	}
	return &wo, nil
}

// GetDetail retrieves a work order joined with its company
func (r *WorkOrderRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.WorkOrderDetail, error) {
	var details []domain.WorkOrderDetail
	err := r.detailQuery(ctx).
		Where("work_orders.id = ?", id).
		Limit(1).
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &details[0], nil
}

// ExistsByNumber reports whether a work order already uses the number
func (r *WorkOrderRepository) ExistsByNumber(ctx context.Context, woNumber string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&domain.WorkOrder{}).Where("wo_number = ?", woNumber)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// CountByVendorName counts work orders whose denormalized vendor name matches
func (r *WorkOrderRepository) CountByVendorName(ctx context.Context, vendorName string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.WorkOrder{}).
		Where("vendor_name = ?", vendorName).
		Count(&count).Error
	return count, err
}

// Update writes the given columns to a work order
func (r *WorkOrderRepository) Update(ctx context.Context, id uuid.UUID, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&domain.WorkOrder{}).Where("id = ?", id).Updates(columns).Error
}

// Delete removes a work order
func (r *WorkOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.WorkOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns work orders joined with company names, newest first
func (r *WorkOrderRepository) List(ctx context.Context, filters *WorkOrderFilters) ([]domain.WorkOrderDetail, error) {
	query := r.detailQuery(ctx)

	if filters != nil {
		if filters.Search != "" {
			pattern := likePattern(filters.Search)
			query = query.Where(
				"LOWER(work_orders.wo_number) LIKE ? OR LOWER(work_orders.vendor_name) LIKE ? OR LOWER(work_orders.site_name) LIKE ? OR LOWER(companies.company_name) LIKE ?",
				pattern, pattern, pattern, pattern)
		}
		if filters.Status != nil {
			query = query.Where("work_orders.status = ?", *filters.Status)
		}
		if len(filters.Statuses) > 0 {
			query = query.Where("work_orders.status IN ?", filters.Statuses)
		}
		if filters.CompanyID != nil {
			query = query.Where("work_orders.company_id = ?", *filters.CompanyID)
		}
		if filters.PositiveNetOnly {
			query = query.Where("work_orders.net_amount > 0")
		}
		if filters.Limit > 0 {
			query = query.Limit(filters.Limit)
		}
	}

	var details []domain.WorkOrderDetail
	err := query.Order("work_orders.created_at DESC").Scan(&details).Error
	return details, err
}

// StatusCount is the number of work orders in one status
type StatusCount struct {
	Status domain.WorkOrderStatus
	Count  int64
}

// CountByStatus groups work orders by status
func (r *WorkOrderRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).Model(&domain.WorkOrder{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	return counts, err
}

// SumNetAmount totals net_amount across all work orders
func (r *WorkOrderRepository) SumNetAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&domain.WorkOrder{}).
		Select("SUM(net_amount)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *WorkOrderRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("work_orders").
		Select(workOrderDetailColumns).
		Joins("LEFT JOIN companies ON companies.id = work_orders.company_id")
}
