package tenant

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/tenantkit/pkg/audit"
)

// Audit event types emitted by the Lifecycle manager.
const (
	EventSuspended = "tenant.suspended"
	EventActivated = "tenant.activated"
)

// Lifecycle transitions tenants between active and suspended. The two
// states and two transitions are the whole machine; every transition is
// persisted atomically through the Store and recorded in the audit log.
// Same-state calls are idempotent no-ops and emit nothing.
type Lifecycle struct {
	store Store
	audit audit.Logger
	now   func() time.Time
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithLifecycleClock overrides the timestamp source. Intended for tests.
func WithLifecycleClock(now func() time.Time) LifecycleOption {
	return func(l *Lifecycle) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLifecycle creates a Lifecycle manager persisting through store and
// auditing through auditLog. Both are required.
func NewLifecycle(store Store, auditLog audit.Logger, opts ...LifecycleOption) *Lifecycle {
	if store == nil {
		panic("tenant: lifecycle store cannot be nil")
	}
	if auditLog == nil {
		panic("tenant: lifecycle audit logger cannot be nil")
	}

	l := &Lifecycle{
		store: store,
		audit: auditLog,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Suspend transitions an active tenant to suspended: Active false,
// SuspendedAt now, SuspensionReason reason, all written in one persisted
// update. Suspending an already-suspended tenant succeeds without
// re-emitting a transition entry. The passed tenant is updated in place
// on success so callers observe the new state.
func (l *Lifecycle) Suspend(ctx context.Context, t *Tenant, reason string) error {
	if t == nil {
		return ErrTenantNotFound
	}
	if t.Suspended() {
		return nil
	}

	suspendedAt := l.now()
	if err := l.store.UpdateLifecycle(ctx, t.ID, false, &suspendedAt, reason); err != nil {
		return errors.Join(ErrLifecycleUpdateFailed, err)
	}

	t.Active = false
	t.SuspendedAt = &suspendedAt
	t.SuspensionReason = reason

	return l.audit.Log(ctx, EventSuspended,
		audit.WithTenantAlias(t.RoutingAlias),
		audit.WithReason(reason),
	)
}

// Activate transitions a suspended tenant back to active, clearing
// SuspendedAt and SuspensionReason in the same persisted update.
// Activating an already-active tenant succeeds without emitting.
func (l *Lifecycle) Activate(ctx context.Context, t *Tenant) error {
	if t == nil {
		return ErrTenantNotFound
	}
	if !t.Suspended() {
		return nil
	}

	if err := l.store.UpdateLifecycle(ctx, t.ID, true, nil, ""); err != nil {
		return errors.Join(ErrLifecycleUpdateFailed, err)
	}

	t.Active = true
	t.SuspendedAt = nil
	t.SuspensionReason = ""

	return l.audit.Log(ctx, EventActivated,
		audit.WithTenantAlias(t.RoutingAlias),
	)
}
