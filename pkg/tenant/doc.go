// Package tenant is the core of the multi-tenant routing layer: it
// resolves inbound hostnames to tenants, binds the resolved tenant to
// the request context, and manages the tenant lifecycle.
//
// # Architecture
//
// Four concerns, kept separate:
//
//  1. Directory and HostMapper — authoritative tenant records and the
//     hostname-to-alias mapping (Postgres-backed in production, see
//     pkg/tenantstore; MemoryDirectory for tests).
//  2. Resolver — hostname in, {active, suspended, unresolved} out, with
//     a bounded-TTL mapping cache and a bounded lookup timeout.
//  3. Context binding — Bind/FromContext/Unbind attach the resolved
//     tenant to one request's context.Context and nothing wider.
//  4. Lifecycle — audited suspend/activate transitions.
//
// # Context binding
//
// The binding is an explicit, immutable context value, never a
// process- or thread-wide singleton. Its lifetime is exactly the owning
// context's lifetime, so there is no unbind step to forget: when the
// request ends (success, error, panic, or cancellation) the binding is
// gone, and a pooled worker serving the next request cannot observe it.
// Bind refuses to double-bind and tenant-requiring callers fail loudly
// with ErrNotBound instead of falling back to any default tenant.
//
// # Usage
//
//	dir := tenantstore.New(pool)
//	resolver := tenant.NewResolver(dir, dir,
//		tenant.WithMappingTTL(5*time.Minute),
//	)
//
//	r := chi.NewRouter()
//	r.Use(tenant.Middleware(resolver, tenant.WithPolicy(tenant.PolicyStrict)))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		t := tenant.MustFromContext(r.Context())
//		// t.RoutingAlias selects the tenant's database and cache namespace.
//	}
//
// # Resolution outcomes
//
// Active tenants proceed with a bound context. Suspended tenants are
// rejected with 410 before any binding happens; no downstream code runs
// with a suspended tenant's routing alias. Unresolved hosts are
// rejected with 403 under PolicyStrict; PolicyPermissive lets them
// proceed unbound and logs the fact. A directory lookup timeout
// resolves as unresolved, never as "assume active".
package tenant
