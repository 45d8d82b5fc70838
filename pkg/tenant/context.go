package tenant

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// binding is the per-request tenant memo. It is immutable after Bind:
// every FromContext call for the rest of the request observes the same
// tenant without re-querying the Directory. The binding's lifetime is
// exactly the owning context's lifetime, so teardown is guaranteed on
// every exit path, including panics and cancellation.
type binding struct {
	tenant *Tenant
}

// Bind installs a tenant binding on the context and returns the derived
// context. Returns ErrAlreadyBound if the context already carries a
// live binding: a unit of work binds at most once, and re-binding
// would silently reroute everything downstream to another tenant.
func Bind(ctx context.Context, t *Tenant) (context.Context, error) {
	if t == nil {
		return ctx, ErrTenantNotFound
	}
	if b, ok := ctx.Value(contextKey{}).(*binding); ok && b.tenant != nil {
		return ctx, ErrAlreadyBound
	}
	return context.WithValue(ctx, contextKey{}, &binding{tenant: t}), nil
}

// Unbind returns a context with any tenant binding cleared. Idempotent:
// unbinding an unbound context is a no-op. Use this when handing work
// past the request boundary (background jobs, detached goroutines) so
// the binding cannot outlive its owning request.
func Unbind(ctx context.Context) context.Context {
	if _, ok := ctx.Value(contextKey{}).(*binding); !ok {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, &binding{})
}

// FromContext returns the bound tenant, or false if nothing is bound.
func FromContext(ctx context.Context) (*Tenant, bool) {
	b, ok := ctx.Value(contextKey{}).(*binding)
	if !ok || b.tenant == nil {
		return nil, false
	}
	return b.tenant, true
}

// AliasFromContext returns the bound tenant's routing alias. This is
// the value the database router and tenant-scoped cache key on.
func AliasFromContext(ctx context.Context) (string, bool) {
	t, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return t.RoutingAlias, true
}

// MustFromContext returns the bound tenant or panics. Use only in
// handlers mounted behind RequireTenant.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return t
}

// LoggerExtractor returns a logger context extractor that enriches log
// records with the bound tenant's alias.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if alias, ok := AliasFromContext(ctx); ok {
			return slog.String("tenant_alias", alias), true
		}
		return slog.Attr{}, false
	}
}
