package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant is one isolated customer organization sharing the platform's
// codebase but not its data. The routing alias selects the tenant's
// physical database and cache namespace; it is derived from the slug at
// provisioning time but stored independently so historical aliases stay
// stable even if display conventions change.
type Tenant struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	RoutingAlias     string     `json:"routing_alias"`
	Active           bool       `json:"active"`
	SuspendedAt      *time.Time `json:"suspended_at,omitempty"`
	SuspensionReason string     `json:"suspension_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Suspended reports whether the tenant's data plane must refuse normal
// traffic. Active and SuspendedAt are kept in lockstep by the Lifecycle
// manager: Active == false iff SuspendedAt is set.
func (t *Tenant) Suspended() bool {
	return !t.Active
}

// Directory is the authoritative read surface for tenant records.
// Implementations must be safe for concurrent use; resolution re-checks
// liveness against the Directory on every request, so reads here must
// reflect lifecycle transitions immediately.
type Directory interface {
	// GetByAlias returns the live tenant record for a routing alias.
	// Returns ErrTenantNotFound if no tenant has the alias.
	GetByAlias(ctx context.Context, alias string) (*Tenant, error)

	// GetBySlug returns the live tenant record for a slug.
	// Returns ErrTenantNotFound if no tenant has the slug.
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
}

// HostMapper resolves an inbound hostname to a routing alias. The
// mapping is read-mostly and may be cached with a bounded TTL by the
// Resolver; liveness is never taken from the mapping, only the alias.
type HostMapper interface {
	// AliasForHost returns the routing alias mapped to a normalized
	// hostname. Returns ErrHostNotMapped for unknown hosts.
	AliasForHost(ctx context.Context, host string) (string, error)
}

// Store is the mutation surface used by the Lifecycle manager. The
// three lifecycle fields are written atomically in one persisted update.
type Store interface {
	UpdateLifecycle(ctx context.Context, id uuid.UUID, active bool, suspendedAt *time.Time, reason string) error
}
