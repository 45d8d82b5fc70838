// Package dbrouter maps a bound tenant's routing alias to the physical
// database connection pool for all queries issued during the request.
//
// Pools are created lazily per alias from a DSN template and reused for
// the process lifetime. Route re-checks tenant suspension against the
// live directory on every call, independently of the resolver: a router
// may be consulted long after resolution (background jobs, long-lived
// tasks) and must refuse a tenant that was suspended in the meantime.
//
//	router := dbrouter.New(directory, auditLog, cfg)
//
//	// Inside a request with a bound tenant:
//	pool, err := router.Route(ctx)
//
// RouteUnscoped bypasses the suspension check for migrations and
// administrative tooling. It must never be reachable from normal
// request handling, and every call to it is audited.
package dbrouter
