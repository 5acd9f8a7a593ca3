package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vendorRequest(name string) *domain.CreateVendorRequest {
	return &domain.CreateVendorRequest{
		VendorName:    name,
		VendorType:    "Contractor",
		ContactNumber: "9822001122",
	}
}

func TestVendorService_Create_Defaults(t *testing.T) {
	f := newFixture(t)

	vendor, err := f.vendors.Create(context.Background(), vendorRequest("ABC Construction"))
	require.NoError(t, err)

	assert.Equal(t, domain.VendorStatusActive, vendor.Status)
	assert.Equal(t, domain.VendorCreatedFromManual, vendor.CreatedFrom)
	assert.Equal(t, 0, vendor.DefaultRetentionPercent)
}

func TestVendorService_Create_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.vendors.Create(context.Background(), &domain.CreateVendorRequest{VendorName: "X"})
	var missing *service.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"vendor_type", "contact_number"}, missing.Fields)

	req := vendorRequest("X")
	req.VendorType = "Supplier"
	_, err = f.vendors.Create(context.Background(), req)
	assert.EqualError(t, err, "Invalid vendor type. Must be one of: Service Provider, Contractor")

	req = vendorRequest("X")
	req.DefaultRetentionPercent = intPtr(7)
	_, err = f.vendors.Create(context.Background(), req)
	assert.EqualError(t, err, "Invalid retention percentage. Must be one of: 0, 5, 10")

	req = vendorRequest("X")
	req.Status = "Blocked"
	_, err = f.vendors.Create(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestVendorService_Create_DuplicateName(t *testing.T) {
	f := newFixture(t)
	_, err := f.vendors.Create(context.Background(), vendorRequest("ABC Construction"))
	require.NoError(t, err)

	_, err = f.vendors.Create(context.Background(), vendorRequest("ABC Construction"))
	assert.ErrorIs(t, err, service.ErrDuplicateVendorName)
}

func TestVendorService_Update(t *testing.T) {
	f := newFixture(t)
	vendor, err := f.vendors.Create(context.Background(), vendorRequest("ABC Construction"))
	require.NoError(t, err)

	updated, err := f.vendors.Update(context.Background(), vendor.ID, &domain.UpdateVendorRequest{
		ContactPerson:           stringPtr("M. Joshi"),
		DefaultRetentionPercent: intPtr(5),
		Status:                  stringPtr("Inactive"),
	})
	require.NoError(t, err)
	assert.Equal(t, "M. Joshi", updated.ContactPerson)
	assert.Equal(t, 5, updated.DefaultRetentionPercent)
	assert.Equal(t, domain.VendorStatusInactive, updated.Status)
	assert.Equal(t, "9822001122", updated.ContactNumber)

	_, err = f.vendors.Update(context.Background(), vendor.ID, &domain.UpdateVendorRequest{VendorName: stringPtr(" ")})
	assert.EqualError(t, err, "Vendor name is required")

	_, err = f.vendors.Update(context.Background(), vendor.ID, &domain.UpdateVendorRequest{DefaultRetentionPercent: intPtr(3)})
	assert.EqualError(t, err, "Invalid retention percentage. Must be one of: 0, 5, 10")
	var enumErr *service.InvalidEnumError
	assert.ErrorAs(t, err, &enumErr)

	_, err = f.vendors.Update(context.Background(), vendor.ID, &domain.UpdateVendorRequest{Status: stringPtr("Gone")})
	assert.EqualError(t, err, "Invalid status. Must be one of: Active, Inactive")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.vendors.Update(context.Background(), vendor.ID, &domain.UpdateVendorRequest{VendorType: stringPtr("Supplier")})
	assert.EqualError(t, err, "Invalid vendor type. Must be one of: Service Provider, Contractor")

	_, err = f.vendors.Update(context.Background(), vendor.ID, &domain.UpdateVendorRequest{})
	assert.ErrorIs(t, err, service.ErrNoFieldsToUpdate)

	_, err = f.vendors.Update(context.Background(), uuid.New(), &domain.UpdateVendorRequest{Email: stringPtr("a@b.c")})
	assert.ErrorIs(t, err, service.ErrVendorNotFound)
}

func TestVendorService_Update_DoesNotTouchWorkOrders(t *testing.T) {
	f := newFixture(t)
	vendor, err := f.vendors.Create(context.Background(), vendorRequest("ABC Construction"))
	require.NoError(t, err)
	wo, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	_, err = f.vendors.Update(context.Background(), vendor.ID, &domain.UpdateVendorRequest{VendorName: stringPtr("ABC Infra")})
	require.NoError(t, err)

	fetched, err := f.workOrders.GetByID(context.Background(), wo.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC Construction", fetched.VendorName)
}

func TestVendorService_Delete_BlockedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	vendor, err := f.vendors.Create(context.Background(), vendorRequest("ABC Construction"))
	require.NoError(t, err)
	wo, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	err = f.vendors.Delete(context.Background(), vendor.ID)
	assert.ErrorIs(t, err, service.ErrVendorInUse)

	_, err = f.workOrders.Update(context.Background(), wo.ID, &domain.UpdateWorkOrderRequest{VendorName: stringPtr("Someone Else")})
	require.NoError(t, err)

	require.NoError(t, f.vendors.Delete(context.Background(), vendor.ID))
	_, err = f.vendors.GetByID(context.Background(), vendor.ID)
	assert.ErrorIs(t, err, service.ErrVendorNotFound)
}

func TestVendorService_List(t *testing.T) {
	f := newFixture(t)
	_, err := f.vendors.Create(context.Background(), vendorRequest("Zenith Works"))
	require.NoError(t, err)
	req := vendorRequest("Alpha Services")
	req.VendorType = "Service Provider"
	_, err = f.vendors.Create(context.Background(), req)
	require.NoError(t, err)

	vendors, err := f.vendors.List(context.Background(), nil, repository.SortConfig{})
	require.NoError(t, err)
	require.Len(t, vendors, 2)
	assert.Equal(t, "Alpha Services", vendors[0].VendorName)

	sp := domain.VendorTypeServiceProvider
	filtered, err := f.vendors.List(context.Background(), &repository.VendorFilters{VendorType: &sp}, repository.SortConfig{})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Alpha Services", filtered[0].VendorName)
}

func TestVendorService_ImportFromERP(t *testing.T) {
	f := newFixture(t)
	_, err := f.vendors.Create(context.Background(), vendorRequest("Manual Vendor"))
	require.NoError(t, err)

	first := f.vendors.ImportFromERP(context.Background(), []domain.ERPVendor{
		{VendorName: "ERP Vendor", VendorType: "Service Provider", ContactNumber: "9000000001"},
		{VendorName: "Manual Vendor", ContactNumber: "9000000002", Email: "erp@example.com"},
		{VendorName: "No Contact"},
	})
	assert.Equal(t, domain.VendorImportResult{Created: 1, Skipped: 2}, first)

	second := f.vendors.ImportFromERP(context.Background(), []domain.ERPVendor{
		{VendorName: "ERP Vendor", ContactNumber: "9000000009", BankIFSC: "HDFC0000001"},
	})
	assert.Equal(t, domain.VendorImportResult{Updated: 1}, second)

	vendors, err := f.vendors.List(context.Background(), &repository.VendorFilters{Search: "erp vendor"}, repository.SortConfig{})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "9000000009", vendors[0].ContactNumber)
	assert.Equal(t, "HDFC0000001", vendors[0].BankIFSC)
	assert.Equal(t, domain.VendorTypeServiceProvider, vendors[0].VendorType)
	assert.Equal(t, domain.VendorCreatedFromERP, vendors[0].CreatedFrom)

	manual, err := f.vendors.List(context.Background(), &repository.VendorFilters{Search: "manual"}, repository.SortConfig{})
	require.NoError(t, err)
	require.Len(t, manual, 1)
	assert.Empty(t, manual[0].Email)
}
