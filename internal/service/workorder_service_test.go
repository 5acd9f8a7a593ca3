package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/auth"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkOrderService_Create_ComputesAmounts(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest()
	req.SGSTPercent = float64Ptr(9)
	req.CGSTPercent = float64Ptr(9)
	req.RetentionPercent = float64Ptr(10)

	wo, err := f.workOrders.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, wo.TotalAmount)
	assert.Equal(t, 90.0, wo.SGSTAmount)
	assert.Equal(t, 90.0, wo.CGSTAmount)
	assert.Equal(t, 1180.0, wo.GrossAmount)
	assert.Equal(t, 118.0, wo.RetentionAmount)
	assert.Equal(t, 1062.0, wo.NetAmount)
	assert.Equal(t, domain.WorkOrderStatusDraft, wo.Status)
	assert.Equal(t, "Pune Builders", wo.CompanyName)

	fetched, err := f.workOrders.GetByID(context.Background(), wo.ID)
	require.NoError(t, err)
	assert.Equal(t, wo.NetAmount, fetched.NetAmount)
	assert.Equal(t, wo.WONumber, fetched.WONumber)
}

func TestWorkOrderService_Create_GeneratesNumber(t *testing.T) {
	f := newFixture(t)

	first, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	second, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	assert.Equal(t, "W.O.15012025-PBPL-GREEN-ABCCONST-01", first.WONumber)
	assert.Equal(t, "W.O.15012025-PBPL-GREEN-ABCCONST-02", second.WONumber)
	assert.Equal(t, "2025-01-15", first.Date)
}

func TestWorkOrderService_Create_DuplicateExplicitNumber(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest()
	req.WONumber = "WO-FIXED-1"

	_, err := f.workOrders.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = f.workOrders.Create(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrDuplicateWorkOrderNumber)
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestWorkOrderService_Create_WithoutGST(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest()
	req.HasGST = boolPtr(false)
	req.SGSTPercent = float64Ptr(9)

	wo, err := f.workOrders.Create(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, wo.HasGST)
	assert.Equal(t, 9.0, wo.SGSTPercent)
	assert.Zero(t, wo.SGSTAmount)
	assert.Zero(t, wo.CGSTAmount)
	assert.Equal(t, 1000.0, wo.GrossAmount)
	assert.Equal(t, 1000.0, wo.NetAmount)
}

func TestWorkOrderService_Create_ClampsPercentages(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest()
	req.SGSTPercent = float64Ptr(80)
	req.CGSTPercent = float64Ptr(-5)
	req.RetentionPercent = float64Ptr(150)

	wo, err := f.workOrders.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 50.0, wo.SGSTPercent)
	assert.Zero(t, wo.CGSTPercent)
	assert.Equal(t, 100.0, wo.RetentionPercent)
	assert.Zero(t, wo.NetAmount)
}

func TestWorkOrderService_Create_RejectsExtraDecimalPlaces(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.TotalAmount = float64Ptr(1000.005)
	_, err := f.workOrders.Create(context.Background(), req)
	assert.EqualError(t, err, "total_amount must have at most 2 decimal places")
	assert.ErrorIs(t, err, service.ErrValidation)

	req = f.createRequest()
	req.SGSTPercent = float64Ptr(9.125)
	_, err = f.workOrders.Create(context.Background(), req)
	assert.EqualError(t, err, "sgst_percent must have at most 2 decimal places")

	req = f.createRequest()
	req.TotalAmount = float64Ptr(1000.25)
	req.SGSTPercent = float64Ptr(9.5)
	wo, err := f.workOrders.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1000.25, wo.TotalAmount)
	assert.Equal(t, 9.5, wo.SGSTPercent)

	_, err = f.workOrders.Update(context.Background(), wo.ID, &domain.UpdateWorkOrderRequest{
		RetentionPercent: float64Ptr(2.555),
	})
	assert.EqualError(t, err, "retention_percent must have at most 2 decimal places")

	fetched, err := f.workOrders.GetByID(context.Background(), wo.ID)
	require.NoError(t, err)
	assert.Zero(t, fetched.RetentionPercent)
}

func TestWorkOrderService_Create_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*domain.CreateWorkOrderRequest)
		want   error
	}{
		{"missing vendor", func(r *domain.CreateWorkOrderRequest) { r.VendorName = " " }, service.ErrValidation},
		{"missing total", func(r *domain.CreateWorkOrderRequest) { r.TotalAmount = nil }, service.ErrValidation},
		{"zero total", func(r *domain.CreateWorkOrderRequest) { r.TotalAmount = float64Ptr(0) }, service.ErrInvalidAmount},
		{"negative total", func(r *domain.CreateWorkOrderRequest) { r.TotalAmount = float64Ptr(-10) }, service.ErrInvalidAmount},
		{"unknown company", func(r *domain.CreateWorkOrderRequest) { r.CompanyID = uuid.NewString() }, service.ErrInvalidCompany},
		{"malformed company", func(r *domain.CreateWorkOrderRequest) { r.CompanyID = "abc" }, service.ErrInvalidCompany},
		{"bad status", func(r *domain.CreateWorkOrderRequest) { r.Status = "Closed" }, service.ErrValidation},
		{"bad date", func(r *domain.CreateWorkOrderRequest) { r.Date = "15/01/2025" }, service.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.createRequest()
			tt.mutate(req)
			_, err := f.workOrders.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWorkOrderService_Create_MissingFieldsListed(t *testing.T) {
	f := newFixture(t)

	_, err := f.workOrders.Create(context.Background(), &domain.CreateWorkOrderRequest{})
	var missing *service.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"company_id", "vendor_name", "site_name", "work_description", "total_amount"}, missing.Fields)
}

func TestWorkOrderService_Create_RecordsActivity(t *testing.T) {
	f := newFixture(t)
	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{DisplayName: "Priya Shah", Email: "priya@example.com"})

	wo, err := f.workOrders.Create(ctx, f.createRequest())
	require.NoError(t, err)

	entries := f.activity(t, domain.EntityTypeWorkOrder, wo.ID.String())
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityTypeCreate, entries[0].ActivityType)
	assert.Equal(t, "Priya Shah", entries[0].UserName)
	assert.Equal(t, "priya@example.com", entries[0].UserEmail)
	assert.Contains(t, entries[0].Description, wo.WONumber)
}

func TestWorkOrderService_Update_RecomputesAmounts(t *testing.T) {
	f := newFixture(t)
	wo, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	updated, err := f.workOrders.Update(context.Background(), wo.ID, &domain.UpdateWorkOrderRequest{
		TotalAmount:      float64Ptr(2000),
		RetentionPercent: float64Ptr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, 2000.0, updated.TotalAmount)
	assert.Equal(t, 180.0, updated.SGSTAmount)
	assert.Equal(t, 2360.0, updated.GrossAmount)
	assert.Equal(t, 118.0, updated.RetentionAmount)
	assert.Equal(t, 2242.0, updated.NetAmount)
}

func TestWorkOrderService_Update_IgnoresAbsentFields(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest()
	req.PaymentTerms = "30 days"
	wo, err := f.workOrders.Create(context.Background(), req)
	require.NoError(t, err)

	updated, err := f.workOrders.Update(context.Background(), wo.ID, &domain.UpdateWorkOrderRequest{
		SiteName: stringPtr("Blue Ridge"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Blue Ridge", updated.SiteName)
	assert.Equal(t, "30 days", updated.PaymentTerms)
	assert.Equal(t, wo.NetAmount, updated.NetAmount)
	assert.Equal(t, wo.WONumber, updated.WONumber)
}

func TestWorkOrderService_Update_NoFields(t *testing.T) {
	f := newFixture(t)
	wo, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	_, err = f.workOrders.Update(context.Background(), wo.ID, &domain.UpdateWorkOrderRequest{})
	assert.ErrorIs(t, err, service.ErrNoFieldsToUpdate)
}

func TestWorkOrderService_Update_BlankRequiredField(t *testing.T) {
	f := newFixture(t)
	wo, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	_, err = f.workOrders.Update(context.Background(), wo.ID, &domain.UpdateWorkOrderRequest{VendorName: stringPtr("  ")})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestWorkOrderService_Update_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.workOrders.Update(context.Background(), uuid.New(), &domain.UpdateWorkOrderRequest{SiteName: stringPtr("x")})
	assert.ErrorIs(t, err, service.ErrWorkOrderNotFound)
}

func TestWorkOrderService_Update_DuplicateNumber(t *testing.T) {
	f := newFixture(t)
	first, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	second, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	_, err = f.workOrders.Update(context.Background(), second.ID, &domain.UpdateWorkOrderRequest{WONumber: stringPtr(first.WONumber)})
	assert.ErrorIs(t, err, service.ErrDuplicateWorkOrderNumber)

	// keeping its own number is not a conflict
	_, err = f.workOrders.Update(context.Background(), second.ID, &domain.UpdateWorkOrderRequest{WONumber: stringPtr(second.WONumber)})
	assert.NoError(t, err)
}

func TestWorkOrderService_Update_UnchangedValuesLogEmptyChanges(t *testing.T) {
	f := newFixture(t)
	wo, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	_, err = f.workOrders.Update(context.Background(), wo.ID, &domain.UpdateWorkOrderRequest{
		SiteName:    stringPtr(wo.SiteName),
		TotalAmount: float64Ptr(wo.TotalAmount),
	})
	require.NoError(t, err)

	entries := f.activity(t, domain.EntityTypeWorkOrder, wo.ID.String())
	require.Len(t, entries, 2)
	update := entries[0]
	assert.Equal(t, domain.ActivityTypeUpdate, update.ActivityType)

	var details struct {
		Changes []service.FieldChange `json:"changes"`
	}
	require.NoError(t, json.Unmarshal(update.Details, &details))
	assert.NotNil(t, details.Changes)
	assert.Empty(t, details.Changes)
}

func TestWorkOrderService_Update_StatusChangeLogged(t *testing.T) {
	f := newFixture(t)
	wo, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	updated, err := f.workOrders.Update(context.Background(), wo.ID, &domain.UpdateWorkOrderRequest{Status: stringPtr("Active")})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkOrderStatusActive, updated.Status)

	entries := f.activity(t, domain.EntityTypeWorkOrder, wo.ID.String())
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActivityTypeStatusChange, entries[0].ActivityType)
	assert.Equal(t, auth.AdminUserName, entries[0].UserName)
	assert.Contains(t, entries[0].Description, "Draft")
	assert.Contains(t, entries[0].Description, "Active")
}

func TestWorkOrderService_Delete_RequiresAdminPermission(t *testing.T) {
	f := newFixture(t)
	wo, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	err = f.workOrders.Delete(context.Background(), wo.ID, false)
	assert.ErrorIs(t, err, service.ErrAdminPermissionRequired)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = f.workOrders.GetByID(context.Background(), wo.ID)
	require.NoError(t, err)

	require.NoError(t, f.workOrders.Delete(context.Background(), wo.ID, true))

	_, err = f.workOrders.GetByID(context.Background(), wo.ID)
	assert.ErrorIs(t, err, service.ErrWorkOrderNotFound)

	entries := f.activity(t, domain.EntityTypeWorkOrder, wo.ID.String())
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActivityTypeDelete, entries[0].ActivityType)
}

func TestWorkOrderService_Delete_NotFound(t *testing.T) {
	f := newFixture(t)
	err := f.workOrders.Delete(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, service.ErrWorkOrderNotFound)
}

func TestWorkOrderService_List(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest()
	_, err := f.workOrders.Create(context.Background(), req)
	require.NoError(t, err)

	req = f.createRequest()
	req.VendorName = "Shree Ganesh Contractors"
	req.Status = "Active"
	_, err = f.workOrders.Create(context.Background(), req)
	require.NoError(t, err)

	all, err := f.workOrders.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active := domain.WorkOrderStatusActive
	filtered, err := f.workOrders.List(context.Background(), &repository.WorkOrderFilters{Status: &active})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Shree Ganesh Contractors", filtered[0].VendorName)

	searched, err := f.workOrders.List(context.Background(), &repository.WorkOrderFilters{Search: "ganesh"})
	require.NoError(t, err)
	assert.Len(t, searched, 1)
}

func TestWorkOrderService_PendingPayments(t *testing.T) {
	f := newFixture(t)
	for _, status := range []string{"Draft", "Active", "In Progress", "Completed"} {
		req := f.createRequest()
		req.Status = status
		_, err := f.workOrders.Create(context.Background(), req)
		require.NoError(t, err)
	}

	payments, summary, err := f.workOrders.PendingPayments(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, payments, 3)
	assert.Equal(t, 2, summary.DueCount)
	assert.Equal(t, 1, summary.OverdueCount)
	assert.Equal(t, 0, summary.PendingCount)
	assert.Equal(t, 3540.0, summary.TotalOutstanding)
	for _, p := range payments {
		assert.NotEqual(t, domain.WorkOrderStatusDraft, p.Status)
	}
}

func TestPaymentStatusFor(t *testing.T) {
	assert.Equal(t, domain.PaymentStatusOverdue, service.PaymentStatusFor(domain.WorkOrderStatusCompleted))
	assert.Equal(t, domain.PaymentStatusDue, service.PaymentStatusFor(domain.WorkOrderStatusActive))
	assert.Equal(t, domain.PaymentStatusDue, service.PaymentStatusFor(domain.WorkOrderStatusInProgress))
	assert.Equal(t, domain.PaymentStatusPending, service.PaymentStatusFor(domain.WorkOrderStatusDraft))
}

func TestWorkOrderService_OnChangeRunsAfterWrites(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.workOrders.OnChange(func(context.Context) { calls++ })

	wo, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	_, err = f.workOrders.Update(context.Background(), wo.ID, &domain.UpdateWorkOrderRequest{SiteName: stringPtr("Blue Ridge")})
	require.NoError(t, err)
	require.NoError(t, f.workOrders.Delete(context.Background(), wo.ID, true))

	assert.Equal(t, 3, calls)
}

func TestWorkOrderService_ExportRegister(t *testing.T) {
	f := newFixture(t)
	_, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	data, err := f.workOrders.ExportRegister(context.Background(), nil)
	require.NoError(t, err)
	// xlsx files are zip archives
	assert.True(t, strings.HasPrefix(string(data), "PK"))
}
