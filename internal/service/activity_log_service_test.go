package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/pbpl/workorder-api/internal/auth"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLogService_Create(t *testing.T) {
	f := newFixture(t)

	entry, err := f.logs.Create(context.Background(), &domain.CreateActivityLogRequest{
		ActivityType: "UPDATE",
		EntityType:   "invoice",
		EntityID:     "INV-7",
		Description:  "Invoice approved",
	})
	require.NoError(t, err)
	assert.Equal(t, "System User", entry.UserName)
	assert.JSONEq(t, "{}", string(entry.Details))

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{DisplayName: "Priya Shah", Email: "priya@example.com"})
	entry, err = f.logs.Create(ctx, &domain.CreateActivityLogRequest{
		ActivityType: "CREATE",
		EntityType:   "invoice",
		EntityID:     "INV-8",
		Description:  "Invoice raised",
		Details:      json.RawMessage(`{"amount": 1200}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya Shah", entry.UserName)
	assert.Equal(t, "priya@example.com", entry.UserEmail)
	assert.JSONEq(t, `{"amount": 1200}`, string(entry.Details))
}

func TestActivityLogService_Create_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.logs.Create(context.Background(), &domain.CreateActivityLogRequest{ActivityType: "CREATE"})
	var missing *service.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"entity_type", "entity_id", "description"}, missing.Fields)

	_, err = f.logs.Create(context.Background(), &domain.CreateActivityLogRequest{
		ActivityType: "ARCHIVE", EntityType: "x", EntityID: "1", Description: "d",
	})
	assert.EqualError(t, err, "Invalid activity type. Must be one of: CREATE, UPDATE, DELETE, STATUS_CHANGE")

	_, err = f.logs.Create(context.Background(), &domain.CreateActivityLogRequest{
		ActivityType: "CREATE", EntityType: "x", EntityID: "1", Description: "d",
		Details: json.RawMessage(`{bad`),
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	for _, details := range []string{`[1, 2]`, `"text"`, `42`, `true`} {
		_, err = f.logs.Create(context.Background(), &domain.CreateActivityLogRequest{
			ActivityType: "CREATE", EntityType: "x", EntityID: "1", Description: "d",
			Details: json.RawMessage(details),
		})
		assert.EqualError(t, err, "Invalid details. Must be a JSON object", details)
	}

	entry, err := f.logs.Create(context.Background(), &domain.CreateActivityLogRequest{
		ActivityType: "CREATE", EntityType: "x", EntityID: "1", Description: "d",
		Details: json.RawMessage("  {\"ok\": true}\n"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(entry.Details))
}

func TestActivityLogService_List_Paginates(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 25; i++ {
		_, err := f.logs.Create(context.Background(), &domain.CreateActivityLogRequest{
			ActivityType: "CREATE",
			EntityType:   "invoice",
			EntityID:     fmt.Sprintf("INV-%d", i),
			Description:  "Invoice raised",
		})
		require.NoError(t, err)
	}

	logs, page, err := f.logs.List(context.Background(), nil, 3, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 5)
	assert.Equal(t, domain.Pagination{Page: 3, Limit: 10, Total: 25, TotalPages: 3}, page)

	logs, page, err = f.logs.List(context.Background(), &repository.ActivityLogFilter{EntityID: "INV-4"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, int64(1), page.Total)
}
