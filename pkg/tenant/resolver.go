package tenant

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Outcome classifies the result of resolving a hostname to a tenant.
type Outcome string

const (
	// OutcomeActive means the hostname maps to an active tenant; the
	// request may proceed with a bound context.
	OutcomeActive Outcome = "active"

	// OutcomeSuspended means the hostname maps to a suspended tenant.
	// The boundary must reject the request and no context may be bound.
	OutcomeSuspended Outcome = "suspended"

	// OutcomeUnresolved means the hostname maps to no tenant, or the
	// directory lookup failed or timed out. Timeouts are never treated
	// as "assume active".
	OutcomeUnresolved Outcome = "unresolved"
)

// Resolution is the outcome of a hostname resolution. Tenant is set for
// OutcomeActive and OutcomeSuspended, nil for OutcomeUnresolved.
type Resolution struct {
	Outcome Outcome
	Tenant  *Tenant
}

// DefaultLookupTimeout bounds the directory I/O on the resolution path.
const DefaultLookupTimeout = 2 * time.Second

// Resolver turns an inbound hostname into a Resolution. The
// hostname-to-alias mapping is cached with a bounded TTL; the tenant
// record itself is always read live so suspension takes effect on the
// next request regardless of mapping staleness.
type Resolver struct {
	mapper    HostMapper
	directory Directory
	cache     MappingCache
	timeout   time.Duration
	logger    *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMappingCache replaces the default in-memory mapping cache.
func WithMappingCache(cache MappingCache) ResolverOption {
	return func(r *Resolver) {
		if cache != nil {
			r.cache = cache
		}
	}
}

// WithMappingTTL sets the TTL of the default mapping cache. Ignored
// when WithMappingCache is also given.
func WithMappingTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		if ttl > 0 {
			r.cache = NewMappingCache(ttl, DefaultMappingCacheSize)
		}
	}
}

// WithLookupTimeout bounds the mapping and directory lookups. A lookup
// that exceeds the bound resolves as OutcomeUnresolved.
func WithLookupTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithResolverLogger sets the logger for lookup failures.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver backed by the given mapper and
// directory. Both must be safe for concurrent use.
func NewResolver(mapper HostMapper, directory Directory, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		mapper:    mapper,
		directory: directory,
		timeout:   DefaultLookupTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = NewMappingCache(DefaultMappingTTL, DefaultMappingCacheSize)
	}
	return r
}

// Resolve maps a raw hostname to a tenant. The alias lookup may be
// served from cache; the tenant record is always loaded live from the
// Directory so the liveness check never trusts cached state.
func (r *Resolver) Resolve(ctx context.Context, rawHost string) Resolution {
	host := NormalizeHost(rawHost)
	if host == "" {
		return Resolution{Outcome: OutcomeUnresolved}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	alias, cached := r.cache.Get(host)
	if !cached {
		var err error
		alias, err = r.mapper.AliasForHost(ctx, host)
		if err != nil {
			if !errors.Is(err, ErrHostNotMapped) {
				r.logger.WarnContext(ctx, "hostname mapping lookup failed",
					slog.String("host", host),
					slog.Any("error", err))
			}
			return Resolution{Outcome: OutcomeUnresolved}
		}
		r.cache.Set(host, alias)
	}

	t, err := r.directory.GetByAlias(ctx, alias)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			// The mapping outlived the tenant; drop it so the next
			// request does not repeat the dead lookup.
			r.cache.Delete(host)
		} else {
			r.logger.WarnContext(ctx, "tenant directory lookup failed",
				slog.String("host", host),
				slog.String("alias", alias),
				slog.Any("error", err))
		}
		return Resolution{Outcome: OutcomeUnresolved}
	}

	if t.Suspended() {
		return Resolution{Outcome: OutcomeSuspended, Tenant: t}
	}
	return Resolution{Outcome: OutcomeActive, Tenant: t}
}

// Close releases the resolver's mapping cache.
func (r *Resolver) Close() error {
	return r.cache.Close()
}
