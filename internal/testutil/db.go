// Package testutil provides database fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/database"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// A single connection is used so every goroutine sees the same database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	require.NoError(t, err, "failed to open sqlite test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CreateTestCompany inserts a company with the given name
func CreateTestCompany(t *testing.T, db *gorm.DB, name string) *domain.Company {
	t.Helper()
	company := &domain.Company{
		CompanyName:          name,
		Address:              "12 MG Road",
		City:                 "Pune",
		State:                "Maharashtra",
		Pincode:              "411001",
		ContactPerson:        "R. Kulkarni",
		ContactNumber:        "9800000000",
		BankName:             "State Bank of India",
		BankAccountNumber:    "00112233445566",
		BankIFSC:             "SBIN0000001",
		SignatoryName:        "A. Patil",
		SignatoryDesignation: "Director",
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

// CreateTestVendor inserts an active vendor with the given name
func CreateTestVendor(t *testing.T, db *gorm.DB, name string) *domain.Vendor {
	t.Helper()
	vendor := &domain.Vendor{
		VendorName:    name,
		VendorType:    domain.VendorTypeContractor,
		ContactNumber: "9811111111",
		Status:        domain.VendorStatusActive,
		CreatedFrom:   domain.VendorCreatedFromManual,
	}
	require.NoError(t, db.Create(vendor).Error)
	return vendor
}

// CreateTestWorkOrder inserts a Draft work order for the company and vendor
// with a total of 1000 and default taxes already computed.
func CreateTestWorkOrder(t *testing.T, db *gorm.DB, companyID uuid.UUID, vendorName, woNumber string) *domain.WorkOrder {
	t.Helper()
	wo := &domain.WorkOrder{
		WONumber:         woNumber,
		Date:             time.Now().UTC().Truncate(24 * time.Hour),
		CompanyID:        companyID,
		VendorName:       vendorName,
		SiteName:         "Hinjewadi Phase 2",
		WorkDescription:  "Formwork and shuttering",
		TotalAmount:      decimal.NewFromInt(1000),
		HasGST:           true,
		SGSTPercent:      decimal.NewFromInt(9),
		CGSTPercent:      decimal.NewFromInt(9),
		SGSTAmount:       decimal.NewFromInt(90),
		CGSTAmount:       decimal.NewFromInt(90),
		GrossAmount:      decimal.NewFromInt(1180),
		RetentionPercent: decimal.Zero,
		RetentionAmount:  decimal.Zero,
		NetAmount:        decimal.NewFromInt(1180),
		Status:           domain.WorkOrderStatusDraft,
	}
	require.NoError(t, db.Create(wo).Error)
	return wo
}
