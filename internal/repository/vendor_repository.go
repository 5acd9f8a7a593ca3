package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/domain"
	"gorm.io/gorm"
)

// VendorFilters defines filter options for vendor listing
type VendorFilters struct {
	Search     string
	VendorType *domain.VendorType
	Status     *domain.VendorStatus
}

var vendorSortableFields = map[string]string{
	"vendor_name": "vendor_name",
	"vendor_type": "vendor_type",
	"status":      "status",
	"created_at":  "created_at",
}

// VendorRepository handles vendor data access operations
type VendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository instance
func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create inserts a new vendor
func (r *VendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

// GetByID retrieves a vendor by its ID
func (r *VendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByName finds a vendor by exact name. Returns nil, nil when absent.
func (r *VendorRepository) GetByName(ctx context.Context, name string) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := r.db.WithContext(ctx).Where("vendor_name = ?", name).First(&vendor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &vendor, nil
}

// ExistsByName reports whether another vendor has the name
func (r *VendorRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&domain.Vendor{}).Where("vendor_name = ?", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// Update writes the given columns to a vendor
func (r *VendorRepository) Update(ctx context.Context, id uuid.UUID, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&domain.Vendor{}).Where("id = ?", id).Updates(columns).Error
}

// Delete removes a vendor
func (r *VendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Vendor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns vendors matching the filters, ordered by name
func (r *VendorRepository) List(ctx context.Context, filters *VendorFilters, sort SortConfig) ([]domain.Vendor, error) {
	var vendors []domain.Vendor

	query := r.db.WithContext(ctx).Model(&domain.Vendor{})
	if filters != nil {
		if filters.Search != "" {
			pattern := likePattern(filters.Search)
			query = query.Where("LOWER(vendor_name) LIKE ? OR LOWER(contact_number) LIKE ? OR LOWER(contact_person) LIKE ?",
				pattern, pattern, pattern)
		}
		if filters.VendorType != nil {
			query = query.Where("vendor_type = ?", *filters.VendorType)
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
	}

	err := query.Order(BuildOrderClause(sort, vendorSortableFields, "vendor_name", SortOrderAsc)).
		Find(&vendors).Error
	return vendors, err
}

// Count returns the number of vendors
func (r *VendorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Vendor{}).Count(&count).Error
	return count, err
}
