package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWorkOrderRepository_GetDetailJoinsCompany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewWorkOrderRepository(db)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, db, "Acme Infra")
	wo := testutil.CreateTestWorkOrder(t, db, company.ID, "Sharma Builders", "WO-1")

	detail, err := repo.GetDetail(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, "WO-1", detail.WONumber)
	assert.Equal(t, "Acme Infra", detail.CompanyName)
	assert.Equal(t, company.BankIFSC, detail.CompanyIFSC)
	assert.Equal(t, company.SignatoryName, detail.CompanySignatoryName)
	assert.True(t, detail.GrossAmount.Equal(decimal.NewFromInt(1180)))

	t.Run("missing row", func(t *testing.T) {
		_, err := repo.GetDetail(ctx, uuid.New())
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})

	t.Run("deleted company leaves empty company fields", func(t *testing.T) {
		require.NoError(t, repository.NewCompanyRepository(db).Delete(ctx, company.ID))
		detail, err := repo.GetDetail(ctx, wo.ID)
		require.NoError(t, err)
		assert.Empty(t, detail.CompanyName)
	})
}

func TestWorkOrderRepository_UniqueNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewWorkOrderRepository(db)
	company := testutil.CreateTestCompany(t, db, "Acme Infra")

	testutil.CreateTestWorkOrder(t, db, company.ID, "Vendor", "WO-DUP")

	dup := &domain.WorkOrder{
		WONumber:        "WO-DUP",
		CompanyID:       company.ID,
		VendorName:      "Vendor",
		SiteName:        "Site",
		WorkDescription: "Work",
		Status:          domain.WorkOrderStatusDraft,
	}
	err := repo.Create(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	exists, err := repo.ExistsByNumber(context.Background(), "WO-DUP", nil)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWorkOrderRepository_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewWorkOrderRepository(db)
	ctx := context.Background()

	acme := testutil.CreateTestCompany(t, db, "Acme Infra")
	other := testutil.CreateTestCompany(t, db, "Blue Ridge Developers")

	testutil.CreateTestWorkOrder(t, db, acme.ID, "Sharma Builders", "WO-A1")
	active := testutil.CreateTestWorkOrder(t, db, acme.ID, "Patel Electricals", "WO-A2")
	require.NoError(t, repo.Update(ctx, active.ID, map[string]interface{}{"status": domain.WorkOrderStatusActive}))
	testutil.CreateTestWorkOrder(t, db, other.ID, "Sharma Builders", "WO-B1")

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bySearch, err := repo.List(ctx, &repository.WorkOrderFilters{Search: "sharma"})
	require.NoError(t, err)
	assert.Len(t, bySearch, 2)

	byCompanyName, err := repo.List(ctx, &repository.WorkOrderFilters{Search: "blue ridge"})
	require.NoError(t, err)
	require.Len(t, byCompanyName, 1)
	assert.Equal(t, "WO-B1", byCompanyName[0].WONumber)

	status := domain.WorkOrderStatusActive
	byStatus, err := repo.List(ctx, &repository.WorkOrderFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "WO-A2", byStatus[0].WONumber)

	byCompany, err := repo.List(ctx, &repository.WorkOrderFilters{CompanyID: &other.ID})
	require.NoError(t, err)
	assert.Len(t, byCompany, 1)
}

func TestWorkOrderRepository_Aggregates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewWorkOrderRepository(db)
	ctx := context.Background()

	total, err := repo.SumNetAmount(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	company := testutil.CreateTestCompany(t, db, "Acme Infra")
	testutil.CreateTestWorkOrder(t, db, company.ID, "V1", "WO-1")
	testutil.CreateTestWorkOrder(t, db, company.ID, "V1", "WO-2")

	total, err = repo.SumNetAmount(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(2360)), "got %s", total)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, domain.WorkOrderStatusDraft, counts[0].Status)
	assert.Equal(t, int64(2), counts[0].Count)

	n, err := repo.CountByVendorName(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
