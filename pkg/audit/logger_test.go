package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/audit"
)

func TestLoggerLog(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	storage := audit.NewMemoryStorage()
	logger := audit.NewLogger(storage, audit.WithClock(func() time.Time { return now }))

	err := logger.Log(context.Background(), "tenant.suspended",
		audit.WithTenantAlias("acme_corp"),
		audit.WithActor("ops@example.com"),
		audit.WithReason("payment overdue"),
	)
	require.NoError(t, err)

	events := storage.Events()
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.Equal(t, "tenant.suspended", events[0].EventType)
	assert.Equal(t, "acme_corp", events[0].TenantAlias)
	assert.Equal(t, "ops@example.com", events[0].Actor)
	assert.Equal(t, "payment overdue", events[0].Reason)
	assert.Equal(t, now, events[0].CreatedAt)
}

func TestLoggerRequiresEventType(t *testing.T) {
	t.Parallel()

	storage := audit.NewMemoryStorage()
	logger := audit.NewLogger(storage)

	err := logger.Log(context.Background(), "")
	require.ErrorIs(t, err, audit.ErrEventValidation)
	assert.Empty(t, storage.Events())
}

func TestLoggerActorExtractor(t *testing.T) {
	t.Parallel()

	type actorKey struct{}

	storage := audit.NewMemoryStorage()
	logger := audit.NewLogger(storage, audit.WithActorExtractor(func(ctx context.Context) (string, bool) {
		actor, ok := ctx.Value(actorKey{}).(string)
		return actor, ok
	}))

	ctx := context.WithValue(context.Background(), actorKey{}, "admin@example.com")
	require.NoError(t, logger.Log(ctx, "tenant.activated", audit.WithTenantAlias("acme_corp")))

	events := storage.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "admin@example.com", events[0].Actor)

	// Explicit actor option overrides the extracted value.
	require.NoError(t, logger.Log(ctx, "tenant.activated", audit.WithActor("override")))
	events = storage.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "override", events[1].Actor)
}

func TestSlogStorage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	storage := audit.NewSlogStorage(slog.New(slog.NewJSONHandler(&buf, nil)))
	logger := audit.NewLogger(storage)

	require.NoError(t, logger.Log(context.Background(), "cache.cross_tenant_get",
		audit.WithTenantAlias("globex_inc"),
		audit.WithMetadata("key", "plan-limits"),
	))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "audit: cache.cross_tenant_get", record["msg"])
	assert.Equal(t, "cache.cross_tenant_get", record["event_type"])
	assert.Equal(t, "globex_inc", record["tenant_alias"])
}
