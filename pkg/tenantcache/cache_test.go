package tenantcache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/audit"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
	"github.com/dmitrymomot/tenantkit/pkg/tenantcache"
)

func boundCtx(t *testing.T, slugName, alias string) context.Context {
	t.Helper()

	ctx, err := tenant.Bind(context.Background(), &tenant.Tenant{
		Slug:         slugName,
		RoutingAlias: alias,
		Active:       true,
	})
	require.NoError(t, err)
	return ctx
}

func TestKeyCodec(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tenant:acme_corp:dashboard", tenantcache.Key("acme_corp", "dashboard"))
	assert.Equal(t, "tenant::k", tenantcache.Key("", "k"))
}

func TestCacheScopesKeysByBoundTenant(t *testing.T) {
	t.Parallel()

	cache := tenantcache.New(tenantcache.NewMemoryBackend(), audit.NewLogger(audit.NewMemoryStorage()))

	ctxA := boundCtx(t, "acme-corp", "acme_corp")
	ctxB := boundCtx(t, "globex-inc", "globex_inc")

	require.NoError(t, cache.Set(ctxA, "plan-limits", []byte("gold"), time.Minute))

	// Same logical key under tenant A resolves.
	value, ok, err := cache.Get(ctxA, "plan-limits")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("gold"), value)

	// Same logical key under tenant B is a miss: namespaces never
	// overlap.
	_, ok, err = cache.Get(ctxB, "plan-limits")
	require.NoError(t, err)
	assert.False(t, ok)

	// Writes under B do not disturb A.
	require.NoError(t, cache.Set(ctxB, "plan-limits", []byte("silver"), time.Minute))
	value, ok, err = cache.Get(ctxA, "plan-limits")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("gold"), value)
}

func TestCacheRequiresBoundContext(t *testing.T) {
	t.Parallel()

	cache := tenantcache.New(tenantcache.NewMemoryBackend(), audit.NewLogger(audit.NewMemoryStorage()))
	ctx := context.Background()

	_, _, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, tenant.ErrNotBound)

	err = cache.Set(ctx, "k", []byte("v"), time.Minute)
	assert.ErrorIs(t, err, tenant.ErrNotBound)

	err = cache.Delete(ctx, "k")
	assert.ErrorIs(t, err, tenant.ErrNotBound)
}

func TestCacheDelete(t *testing.T) {
	t.Parallel()

	cache := tenantcache.New(tenantcache.NewMemoryBackend(), audit.NewLogger(audit.NewMemoryStorage()))
	ctx := boundCtx(t, "acme-corp", "acme_corp")

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))

	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCrossTenantOperationsAreAudited(t *testing.T) {
	t.Parallel()

	storage := audit.NewMemoryStorage()
	cache := tenantcache.New(tenantcache.NewMemoryBackend(), audit.NewLogger(storage))

	ctx := boundCtx(t, "platform-ops", "platform_ops")

	require.NoError(t, cache.CrossTenantSet(ctx, "acme_corp", "plan-limits", []byte("gold"), time.Minute))

	value, ok, err := cache.CrossTenantGet(ctx, "acme_corp", "plan-limits")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("gold"), value)

	require.NoError(t, cache.CrossTenantDelete(ctx, "acme_corp", "plan-limits"))

	events := storage.Events()
	require.Len(t, events, 3)
	assert.Equal(t, tenantcache.EventCrossTenantSet, events[0].EventType)
	assert.Equal(t, tenantcache.EventCrossTenantGet, events[1].EventType)
	assert.Equal(t, tenantcache.EventCrossTenantDelete, events[2].EventType)
	for _, e := range events {
		assert.Equal(t, "acme_corp", e.TenantAlias)
		assert.Equal(t, "plan-limits", e.Metadata["key"])
		assert.Equal(t, "platform_ops", e.Metadata["bound_alias"])
	}
}

func TestCrossTenantGetAuditsMisses(t *testing.T) {
	t.Parallel()

	storage := audit.NewMemoryStorage()
	cache := tenantcache.New(tenantcache.NewMemoryBackend(), audit.NewLogger(storage))

	_, ok, err := cache.CrossTenantGet(context.Background(), "acme_corp", "absent-key")
	require.NoError(t, err)
	assert.False(t, ok)

	// The miss is still audited.
	events := storage.Events()
	require.Len(t, events, 1)
	assert.Equal(t, tenantcache.EventCrossTenantGet, events[0].EventType)
}

type failingStorage struct{}

func (failingStorage) Store(ctx context.Context, event audit.Event) error {
	return errors.New("sink down")
}

func TestCrossTenantRefusesWhenAuditFails(t *testing.T) {
	t.Parallel()

	backend := tenantcache.NewMemoryBackend()
	cache := tenantcache.New(backend, audit.NewLogger(failingStorage{}))

	err := cache.CrossTenantSet(context.Background(), "acme_corp", "k", []byte("v"), time.Minute)
	require.ErrorIs(t, err, tenantcache.ErrAuditFailed)

	// The write must not have happened.
	_, ok, err := backend.Get(context.Background(), tenantcache.Key("acme_corp", "k"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryBackendTTL(t *testing.T) {
	t.Parallel()

	backend := tenantcache.NewMemoryBackend()
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	_, ok, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)

	_, ok, err = backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
