package tenantcache

// KeyPrefix is the reserved namespace prefix for tenant-scoped keys in
// the shared backend.
const KeyPrefix = "tenant:"

// Key is the single codec turning a tenant routing alias and a logical
// key into the physical backend key: "tenant:{alias}:{key}". All
// namespacing goes through this function so the reserved-prefix
// invariant stays centrally testable.
func Key(alias, key string) string {
	return KeyPrefix + alias + ":" + key
}
