package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCompanyRepository_UniquenessChecks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCompanyRepository(db)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, db, "Acme Infra")
	require.NoError(t, repo.Update(ctx, company.ID, map[string]interface{}{"gst_number": "27AAACA1234A1Z5"}))

	exists, err := repo.ExistsByName(ctx, "ACME infra", nil)
	require.NoError(t, err)
	assert.True(t, exists, "name match must ignore case")

	exists, err = repo.ExistsByName(ctx, "acme infra", &company.ID)
	require.NoError(t, err)
	assert.False(t, exists, "the company itself is excluded")

	exists, err = repo.ExistsByGSTNumber(ctx, "27AAACA1234A1Z5", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByGSTNumber(ctx, "27AAACA1234A1Z5", &company.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCompanyRepository_ListAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCompanyRepository(db)
	ctx := context.Background()

	testutil.CreateTestCompany(t, db, "Zenith Projects")
	acme := testutil.CreateTestCompany(t, db, "Acme Infra")

	companies, err := repo.List(ctx, nil, repository.SortConfig{})
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Acme Infra", companies[0].CompanyName)

	found, err := repo.List(ctx, &repository.CompanyFilters{Search: "zen"}, repository.SortConfig{})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, repo.Delete(ctx, acme.ID))
	err = repo.Delete(ctx, acme.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestVendorRepository_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVendorRepository(db)
	ctx := context.Background()

	testutil.CreateTestVendor(t, db, "Sharma Builders")
	sp := &domain.Vendor{
		VendorName:    "Patel Electricals",
		VendorType:    domain.VendorTypeServiceProvider,
		ContactNumber: "9822222222",
		Status:        domain.VendorStatusInactive,
		CreatedFrom:   domain.VendorCreatedFromManual,
	}
	require.NoError(t, repo.Create(ctx, sp))

	vt := domain.VendorTypeServiceProvider
	vendors, err := repo.List(ctx, &repository.VendorFilters{VendorType: &vt}, repository.SortConfig{})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Patel Electricals", vendors[0].VendorName)

	active := domain.VendorStatusActive
	vendors, err = repo.List(ctx, &repository.VendorFilters{Status: &active}, repository.SortConfig{})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Sharma Builders", vendors[0].VendorName)

	v, err := repo.GetByName(ctx, "Nobody")
	require.NoError(t, err)
	assert.Nil(t, v)

	exists, err := repo.ExistsByName(ctx, "Patel Electricals", &sp.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
