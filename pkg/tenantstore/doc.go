// Package tenantstore is the Postgres-backed tenant directory: the
// authoritative store of tenant records and the hostname-to-alias
// mapping used by resolution.
//
// Store implements tenant.Directory, tenant.HostMapper, and
// tenant.Store on a pgx connection pool, so one value wires into the
// resolver, the database router, and the lifecycle manager:
//
//	store := tenantstore.New(pool)
//	resolver := tenant.NewResolver(store, store)
//	lifecycle := tenant.NewLifecycle(store, auditLog)
//
// Lifecycle updates write all three state fields in a single UPDATE,
// relying on row-level atomicity; no cross-tenant locking is needed.
// Schema migrations live in the migrations directory in goose format
// and apply through pg.Migrate.
package tenantstore
