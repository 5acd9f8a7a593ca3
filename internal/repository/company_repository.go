package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/domain"
	"gorm.io/gorm"
)

// CompanyFilters defines filter options for company listing
type CompanyFilters struct {
	Search string
}

var companySortableFields = map[string]string{
	"company_name": "company_name",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}

// CompanyRepository handles company data access operations
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository instance
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts a new company
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// GetByID retrieves a company by its ID
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Exists reports whether a company with the given ID exists
func (r *CompanyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistsByGSTNumber reports whether another company uses the GST number.
// excludeID skips the company being updated.
func (r *CompanyRepository) ExistsByGSTNumber(ctx context.Context, gstNumber string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&domain.Company{}).Where("gst_number = ?", gstNumber)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// ExistsByName reports whether another company has the name, ignoring case
func (r *CompanyRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&domain.Company{}).Where("LOWER(company_name) = LOWER(?)", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// Update writes the given columns to a company
func (r *CompanyRepository) Update(ctx context.Context, id uuid.UUID, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&domain.Company{}).Where("id = ?", id).Updates(columns).Error
}

// Delete removes a company. Work orders keep their company_id.
// Returns gorm.ErrRecordNotFound when nothing was deleted.
func (r *CompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns companies matching the filters, ordered by name
func (r *CompanyRepository) List(ctx context.Context, filters *CompanyFilters, sort SortConfig) ([]domain.Company, error) {
	var companies []domain.Company

	query := r.db.WithContext(ctx).Model(&domain.Company{})
	if filters != nil && filters.Search != "" {
		pattern := likePattern(filters.Search)
		query = query.Where("LOWER(company_name) LIKE ? OR LOWER(contact_person) LIKE ? OR LOWER(gst_number) LIKE ?",
			pattern, pattern, pattern)
	}

	err := query.Order(BuildOrderClause(sort, companySortableFields, "company_name", SortOrderAsc)).
		Find(&companies).Error
	return companies, err
}

// Count returns the number of companies
func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).Count(&count).Error
	return count, err
}
