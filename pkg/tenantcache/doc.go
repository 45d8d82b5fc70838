// Package tenantcache wraps a shared key-value backend so that every
// key is implicitly namespaced by the bound tenant's routing alias.
//
// Normal operations read the alias from the request context and rewrite
// keys through a single codec, Key, producing "tenant:{alias}:{key}".
// Calling them without a bound tenant fails with tenant.ErrNotBound;
// there is no fallback namespace.
//
//	cache := tenantcache.New(tenantcache.NewRedisBackend(client), auditLog)
//
//	// Inside a request with a bound tenant:
//	err := cache.Set(ctx, "dashboard-widgets", payload, 10*time.Minute)
//	value, ok, err := cache.Get(ctx, "dashboard-widgets")
//
// Cross-tenant reads and writes exist for legitimate platform-wide
// operations and go through an explicit escape hatch that emits a
// structured audit entry before touching the backend, on every call,
// misses included.
//
// Any consumer inspecting raw backend storage must treat the "tenant:"
// prefix as reserved.
package tenantcache
