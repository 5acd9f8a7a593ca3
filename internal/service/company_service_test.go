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

func TestCompanyService_Create(t *testing.T) {
	f := newFixture(t)

	company, err := f.companies.Create(context.Background(), &domain.CreateCompanyRequest{
		CompanyName: "  Mumbai Infra  ",
		GSTNumber:   "27AAAAA0000A1Z5",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai Infra", company.CompanyName)

	entries := f.activity(t, domain.EntityTypeCompany, company.ID.String())
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityTypeCreate, entries[0].ActivityType)
	assert.Equal(t, "System User", entries[0].UserName)
}

func TestCompanyService_Create_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.companies.Create(context.Background(), &domain.CreateCompanyRequest{})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.companies.Create(context.Background(), &domain.CreateCompanyRequest{CompanyName: "pune builders"})
	assert.ErrorIs(t, err, service.ErrDuplicateCompanyName)

	_, err = f.companies.Create(context.Background(), &domain.CreateCompanyRequest{CompanyName: "A", GSTNumber: "GST1"})
	require.NoError(t, err)
	_, err = f.companies.Create(context.Background(), &domain.CreateCompanyRequest{CompanyName: "B", GSTNumber: "GST1"})
	assert.ErrorIs(t, err, service.ErrDuplicateCompanyGST)
}

func TestCompanyService_Update(t *testing.T) {
	f := newFixture(t)

	updated, err := f.companies.Update(context.Background(), f.company.ID, &domain.UpdateCompanyRequest{
		City:        stringPtr("Mumbai"),
		CompanyName: stringPtr("Pune Builders"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.City)
	assert.Equal(t, f.company.Address, updated.Address)

	_, err = f.companies.Update(context.Background(), f.company.ID, &domain.UpdateCompanyRequest{CompanyName: stringPtr("")})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.companies.Update(context.Background(), f.company.ID, &domain.UpdateCompanyRequest{})
	assert.ErrorIs(t, err, service.ErrNoFieldsToUpdate)

	_, err = f.companies.Update(context.Background(), uuid.New(), &domain.UpdateCompanyRequest{City: stringPtr("x")})
	assert.ErrorIs(t, err, service.ErrCompanyNotFound)
}

func TestCompanyService_Delete_KeepsWorkOrders(t *testing.T) {
	f := newFixture(t)
	wo, err := f.workOrders.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	require.NoError(t, f.companies.Delete(context.Background(), f.company.ID))

	fetched, err := f.workOrders.GetByID(context.Background(), wo.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.CompanyName)

	err = f.companies.Delete(context.Background(), f.company.ID)
	assert.ErrorIs(t, err, service.ErrCompanyNotFound)
}

func TestCompanyService_List(t *testing.T) {
	f := newFixture(t)
	_, err := f.companies.Create(context.Background(), &domain.CreateCompanyRequest{CompanyName: "Aurangabad Estates"})
	require.NoError(t, err)

	companies, err := f.companies.List(context.Background(), nil, repository.SortConfig{})
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Aurangabad Estates", companies[0].CompanyName)

	searched, err := f.companies.List(context.Background(), &repository.CompanyFilters{Search: "PUNE"}, repository.SortConfig{})
	require.NoError(t, err)
	assert.Len(t, searched, 1)
}
