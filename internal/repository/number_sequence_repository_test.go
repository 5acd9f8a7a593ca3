package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberSequenceRepository_NextDaySequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNumberSequenceRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	scope := dayStart.Format("2006-01-02")

	t.Run("seeded from existing work orders", func(t *testing.T) {
		company := testutil.CreateTestCompany(t, db, "Acme Infra")
		testutil.CreateTestWorkOrder(t, db, company.ID, "V", "WO-1")
		testutil.CreateTestWorkOrder(t, db, company.ID, "V", "WO-2")

		next, err := repo.NextDaySequence(ctx, scope, dayStart, dayEnd)
		require.NoError(t, err)
		assert.Equal(t, 3, next)
	})

	t.Run("increments afterwards", func(t *testing.T) {
		next, err := repo.NextDaySequence(ctx, scope, dayStart, dayEnd)
		require.NoError(t, err)
		assert.Equal(t, 4, next)

		current, err := repo.GetCurrentSequence(ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, 4, current)
	})

	t.Run("other days are independent", func(t *testing.T) {
		tomorrow := dayEnd
		next, err := repo.NextDaySequence(ctx, tomorrow.Format("2006-01-02"), tomorrow, tomorrow.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, next)
	})
}
