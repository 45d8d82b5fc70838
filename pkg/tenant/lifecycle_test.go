package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/audit"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

func TestLifecycleSuspend(t *testing.T) {
	t.Parallel()

	dir, acme := newDirectoryWithAcme(t)
	storage := audit.NewMemoryStorage()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	lifecycle := tenant.NewLifecycle(dir, audit.NewLogger(storage),
		tenant.WithLifecycleClock(func() time.Time { return now }),
	)

	require.NoError(t, lifecycle.Suspend(context.Background(), acme, "payment overdue"))

	// Caller's copy reflects the transition.
	assert.False(t, acme.Active)
	require.NotNil(t, acme.SuspendedAt)
	assert.Equal(t, now, *acme.SuspendedAt)
	assert.Equal(t, "payment overdue", acme.SuspensionReason)

	// Persisted state matches: all three fields changed together.
	stored, err := dir.GetByAlias(context.Background(), "acme_corp")
	require.NoError(t, err)
	assert.False(t, stored.Active)
	require.NotNil(t, stored.SuspendedAt)
	assert.Equal(t, "payment overdue", stored.SuspensionReason)

	// One audit entry with the reason.
	events := storage.Events()
	require.Len(t, events, 1)
	assert.Equal(t, tenant.EventSuspended, events[0].EventType)
	assert.Equal(t, "acme_corp", events[0].TenantAlias)
	assert.Equal(t, "payment overdue", events[0].Reason)
}

func TestLifecycleSuspendIsIdempotent(t *testing.T) {
	t.Parallel()

	dir, acme := newDirectoryWithAcme(t)
	storage := audit.NewMemoryStorage()
	lifecycle := tenant.NewLifecycle(dir, audit.NewLogger(storage))

	require.NoError(t, lifecycle.Suspend(context.Background(), acme, "first"))
	require.NoError(t, lifecycle.Suspend(context.Background(), acme, "second"))

	// The repeat call succeeds but changes nothing and emits nothing.
	assert.Equal(t, "first", acme.SuspensionReason)
	assert.Len(t, storage.Events(), 1)
}

func TestLifecycleActivate(t *testing.T) {
	t.Parallel()

	dir, acme := newDirectoryWithAcme(t)
	storage := audit.NewMemoryStorage()
	lifecycle := tenant.NewLifecycle(dir, audit.NewLogger(storage))

	require.NoError(t, lifecycle.Suspend(context.Background(), acme, "overdue"))
	require.NoError(t, lifecycle.Activate(context.Background(), acme))

	// Both lifecycle fields cleared together.
	assert.True(t, acme.Active)
	assert.Nil(t, acme.SuspendedAt)
	assert.Empty(t, acme.SuspensionReason)

	stored, err := dir.GetByAlias(context.Background(), "acme_corp")
	require.NoError(t, err)
	assert.True(t, stored.Active)
	assert.Nil(t, stored.SuspendedAt)
	assert.Empty(t, stored.SuspensionReason)

	events := storage.Events()
	require.Len(t, events, 2)
	assert.Equal(t, tenant.EventActivated, events[1].EventType)
	assert.Equal(t, "acme_corp", events[1].TenantAlias)
}

func TestLifecycleActivateIsIdempotent(t *testing.T) {
	t.Parallel()

	dir, acme := newDirectoryWithAcme(t)
	storage := audit.NewMemoryStorage()
	lifecycle := tenant.NewLifecycle(dir, audit.NewLogger(storage))

	require.NoError(t, lifecycle.Activate(context.Background(), acme))
	assert.Empty(t, storage.Events(), "activating an active tenant emits nothing")
}

func TestLifecycleInvariant(t *testing.T) {
	t.Parallel()

	dir, acme := newDirectoryWithAcme(t)
	lifecycle := tenant.NewLifecycle(dir, audit.NewLogger(audit.NewMemoryStorage()))

	// Active iff SuspendedAt is nil, through an arbitrary sequence of
	// transitions.
	steps := []struct {
		op     func() error
		active bool
	}{
		{op: func() error { return lifecycle.Suspend(context.Background(), acme, "a") }, active: false},
		{op: func() error { return lifecycle.Suspend(context.Background(), acme, "b") }, active: false},
		{op: func() error { return lifecycle.Activate(context.Background(), acme) }, active: true},
		{op: func() error { return lifecycle.Activate(context.Background(), acme) }, active: true},
		{op: func() error { return lifecycle.Suspend(context.Background(), acme, "c") }, active: false},
	}

	for _, step := range steps {
		require.NoError(t, step.op())
		assert.Equal(t, step.active, acme.Active)
		assert.Equal(t, step.active, acme.SuspendedAt == nil)
		assert.Equal(t, !step.active, acme.Suspended())
	}
}
