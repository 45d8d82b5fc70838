package tenantstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/tenantkit/pkg/pg"
	"github.com/dmitrymomot/tenantkit/pkg/slug"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

var (
	// ErrSlugTaken is returned when a tenant with the same slug or
	// routing alias already exists.
	ErrSlugTaken = errors.New("tenant slug already taken")

	// ErrHostTaken is returned when a hostname is already mapped.
	ErrHostTaken = errors.New("hostname already mapped to a tenant")
)

// Store provides tenant directory access on a pgx pool. It implements
// tenant.Directory, tenant.HostMapper, and tenant.Store.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store; assumes migrations already created the schema.
func New(pool *pgxpool.Pool) *Store {
	if pool == nil {
		panic("tenantstore: pool cannot be nil")
	}
	return &Store{pool: pool}
}

const tenantColumns = `id, name, slug, routing_alias, is_active, suspended_at, suspension_reason, created_at`

// Create inserts a new tenant record. The slug is validated and the
// routing alias derived from it when absent; invalid slugs are rejected
// before anything touches the database.
func (s *Store) Create(ctx context.Context, t *tenant.Tenant) error {
	if t == nil {
		return tenant.ErrTenantNotFound
	}
	if !slug.IsValid(t.Slug) {
		return errors.Join(tenant.ErrInvalidIdentifier, slug.ErrInvalidSlug)
	}

	// Generated values land on the caller's struct only once the row
	// exists; a failed insert leaves it exactly as passed in.
	alias := t.RoutingAlias
	if alias == "" {
		alias = slug.ToAlias(t.Slug)
	}
	id := t.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenants (id, name, slug, routing_alias, is_active, suspended_at, suspension_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, t.Name, t.Slug, alias, t.Active, t.SuspendedAt, nullable(t.SuspensionReason), createdAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrSlugTaken
		}
		return err
	}

	t.ID = id
	t.RoutingAlias = alias
	t.CreatedAt = createdAt
	return nil
}

// GetByAlias implements tenant.Directory.
func (s *Store) GetByAlias(ctx context.Context, alias string) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE routing_alias = $1`, alias)
	return scanTenant(row)
}

// GetBySlug implements tenant.Directory.
func (s *Store) GetBySlug(ctx context.Context, slugName string) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slugName)
	return scanTenant(row)
}

// AliasForHost implements tenant.HostMapper.
func (s *Store) AliasForHost(ctx context.Context, host string) (string, error) {
	var alias string
	err := s.pool.QueryRow(ctx,
		`SELECT routing_alias FROM hostname_mappings WHERE hostname = $1`, host).Scan(&alias)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return "", tenant.ErrHostNotMapped
		}
		return "", err
	}
	return alias, nil
}

// MapHost maps a hostname to a routing alias. The hostname is
// normalized the same way the resolver normalizes inbound hosts.
func (s *Store) MapHost(ctx context.Context, host, alias string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO hostname_mappings (hostname, routing_alias) VALUES ($1, $2)`,
		tenant.NormalizeHost(host), alias)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrHostTaken
		}
		return err
	}
	return nil
}

// UnmapHost removes a hostname mapping.
func (s *Store) UnmapHost(ctx context.Context, host string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM hostname_mappings WHERE hostname = $1`, tenant.NormalizeHost(host))
	return err
}

// UpdateLifecycle implements tenant.Store. All three lifecycle fields
// change in one UPDATE; row-level atomicity makes the transition
// all-or-nothing without explicit locking.
func (s *Store) UpdateLifecycle(ctx context.Context, id uuid.UUID, active bool, suspendedAt *time.Time, reason string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE tenants
		SET is_active = $2, suspended_at = $3, suspension_reason = $4
		WHERE id = $1`,
		id, active, suspendedAt, nullable(reason),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var (
		t      tenant.Tenant
		reason *string
	)
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.RoutingAlias, &t.Active, &t.SuspendedAt, &reason, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	if reason != nil {
		t.SuspensionReason = *reason
	}
	return &t, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
