package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/service"
	"github.com/pbpl/workorder-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWorkOrderNumberGenerator_Sequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	now := time.Date(2025, 1, 15, 23, 30, 0, 0, time.UTC)
	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skip("timezone database unavailable")
	}

	g := service.NewWorkOrderNumberGenerator(repository.NewNumberSequenceRepository(db), "PBPL", ist, zap.NewNop()).
		WithClock(func() time.Time { return now })

	// 23:30 UTC is already the 16th in India
	assert.Equal(t, "W.O.16012025-PBPL-GREEN-ABCCONST-01", g.Generate(context.Background(), "ABC Construction", "Green Valley"))
	assert.Equal(t, "W.O.16012025-PBPL-SITE-VENDOR-02", g.Generate(context.Background(), "123", ""))
	assert.Equal(t, time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), g.Today())
}

func TestWorkOrderNumberGenerator_FallsBackWhenStoreFails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	now := time.UnixMilli(1736937000123)
	g := service.NewWorkOrderNumberGenerator(repository.NewNumberSequenceRepository(db), "PBPL", time.UTC, zap.NewNop()).
		WithClock(func() time.Time { return now })

	number := g.Generate(context.Background(), "ABC", "Site")
	assert.Equal(t, "WO-1736937000123", number)
	assert.Regexp(t, regexp.MustCompile(`^WO-\d+$`), number)
}
