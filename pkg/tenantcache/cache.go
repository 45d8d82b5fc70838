package tenantcache

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/tenantkit/pkg/audit"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Audit event types emitted by the cross-tenant escape hatch.
const (
	EventCrossTenantGet    = "cache.cross_tenant_get"
	EventCrossTenantSet    = "cache.cross_tenant_set"
	EventCrossTenantDelete = "cache.cross_tenant_delete"
)

// Cache is a tenant-scoped view over a shared Backend. Every normal
// operation keys on the routing alias bound to the request context.
type Cache struct {
	backend Backend
	audit   audit.Logger
}

// New creates a tenant-scoped cache. The audit logger is required
// because the cross-tenant escape hatch may not operate unaudited.
func New(backend Backend, auditLog audit.Logger) *Cache {
	if backend == nil {
		panic("tenantcache: backend cannot be nil")
	}
	if auditLog == nil {
		panic("tenantcache: audit logger cannot be nil")
	}
	return &Cache{backend: backend, audit: auditLog}
}

// Get reads a logical key from the bound tenant's namespace.
// Returns tenant.ErrNotBound when the context carries no tenant.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	alias, ok := tenant.AliasFromContext(ctx)
	if !ok {
		return nil, false, tenant.ErrNotBound
	}
	return c.backend.Get(ctx, Key(alias, key))
}

// Set writes a logical key into the bound tenant's namespace.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	alias, ok := tenant.AliasFromContext(ctx)
	if !ok {
		return tenant.ErrNotBound
	}
	return c.backend.Set(ctx, Key(alias, key), value, ttl)
}

// Delete removes a logical key from the bound tenant's namespace.
func (c *Cache) Delete(ctx context.Context, key string) error {
	alias, ok := tenant.AliasFromContext(ctx)
	if !ok {
		return tenant.ErrNotBound
	}
	return c.backend.Delete(ctx, Key(alias, key))
}

// CrossTenantGet reads a key from an explicit tenant's namespace,
// regardless of what is bound to the context. The audit entry is
// written before the read and is emitted on every call, cache misses
// included; if auditing fails the read does not happen.
func (c *Cache) CrossTenantGet(ctx context.Context, alias, key string) ([]byte, bool, error) {
	if err := c.auditCrossTenant(ctx, EventCrossTenantGet, alias, key); err != nil {
		return nil, false, err
	}
	return c.backend.Get(ctx, Key(alias, key))
}

// CrossTenantSet writes a key into an explicit tenant's namespace.
// Audited like CrossTenantGet.
func (c *Cache) CrossTenantSet(ctx context.Context, alias, key string, value []byte, ttl time.Duration) error {
	if err := c.auditCrossTenant(ctx, EventCrossTenantSet, alias, key); err != nil {
		return err
	}
	return c.backend.Set(ctx, Key(alias, key), value, ttl)
}

// CrossTenantDelete removes a key from an explicit tenant's namespace.
// Audited like CrossTenantGet.
func (c *Cache) CrossTenantDelete(ctx context.Context, alias, key string) error {
	if err := c.auditCrossTenant(ctx, EventCrossTenantDelete, alias, key); err != nil {
		return err
	}
	return c.backend.Delete(ctx, Key(alias, key))
}

func (c *Cache) auditCrossTenant(ctx context.Context, eventType, alias, key string) error {
	opts := []audit.EventOption{
		audit.WithTenantAlias(alias),
		audit.WithMetadata("key", key),
	}
	if boundAlias, ok := tenant.AliasFromContext(ctx); ok {
		opts = append(opts, audit.WithMetadata("bound_alias", boundAlias))
	}

	if err := c.audit.Log(ctx, eventType, opts...); err != nil {
		return errors.Join(ErrAuditFailed, err)
	}
	return nil
}
