package tenantcache

import "errors"

var (
	// ErrBackendUnavailable wraps failures of the underlying store.
	ErrBackendUnavailable = errors.New("cache backend unavailable")

	// ErrAuditFailed is returned when the mandatory audit entry for a
	// cross-tenant operation cannot be recorded. The operation itself
	// is not performed in that case.
	ErrAuditFailed = errors.New("cross-tenant audit emission failed")
)
