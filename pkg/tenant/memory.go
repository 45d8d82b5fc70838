package tenant

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantkit/pkg/slug"
)

// MemoryDirectory is an in-process Directory, HostMapper, and Store.
// It backs tests and single-node deployments; production uses the
// Postgres-backed store. All reads return copies so no caller can
// mutate shared state.
type MemoryDirectory struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Tenant
	byAlias map[string]*Tenant
	bySlug  map[string]*Tenant
	hosts   map[string]string
}

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		byID:    make(map[uuid.UUID]*Tenant),
		byAlias: make(map[string]*Tenant),
		bySlug:  make(map[string]*Tenant),
		hosts:   make(map[string]string),
	}
}

// Add registers a tenant and maps the given hostnames to its routing
// alias. The slug is validated; a missing RoutingAlias is derived from
// the slug, and a zero ID or CreatedAt is filled in.
func (d *MemoryDirectory) Add(t *Tenant, hostnames ...string) error {
	if t == nil {
		return ErrTenantNotFound
	}
	if !slug.IsValid(t.Slug) {
		return slug.ErrInvalidSlug
	}

	cp := *t
	if cp.RoutingAlias == "" {
		cp.RoutingAlias = slug.ToAlias(cp.Slug)
	}
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.byID[cp.ID] = &cp
	d.byAlias[cp.RoutingAlias] = &cp
	d.bySlug[cp.Slug] = &cp
	for _, host := range hostnames {
		d.hosts[NormalizeHost(host)] = cp.RoutingAlias
	}

	*t = cp
	return nil
}

// MapHost maps an additional hostname to a routing alias.
func (d *MemoryDirectory) MapHost(host, alias string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hosts[NormalizeHost(host)] = alias
}

// GetByAlias implements Directory.
func (d *MemoryDirectory) GetByAlias(ctx context.Context, alias string) (*Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.byAlias[alias]
	if !ok {
		return nil, ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

// GetBySlug implements Directory.
func (d *MemoryDirectory) GetBySlug(ctx context.Context, s string) (*Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.bySlug[s]
	if !ok {
		return nil, ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

// AliasForHost implements HostMapper.
func (d *MemoryDirectory) AliasForHost(ctx context.Context, host string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	alias, ok := d.hosts[host]
	if !ok {
		return "", ErrHostNotMapped
	}
	return alias, nil
}

// UpdateLifecycle implements Store. The three lifecycle fields change
// together under one lock acquisition, mirroring the single-row
// transactional update of the persistent store.
func (d *MemoryDirectory) UpdateLifecycle(ctx context.Context, id uuid.UUID, active bool, suspendedAt *time.Time, reason string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.byID[id]
	if !ok {
		return ErrTenantNotFound
	}

	t.Active = active
	t.SuspendedAt = suspendedAt
	t.SuspensionReason = reason
	return nil
}
