package dbrouter

import "errors"

var (
	// ErrConnectionUnavailable is returned when no connection pool can
	// be obtained for a valid, active alias after retries. It is
	// deliberately distinct from tenant.ErrTenantSuspended so operators
	// can tell "tenant is gone" from "infrastructure is down".
	ErrConnectionUnavailable = errors.New("database connection unavailable for alias")

	// ErrInvalidDSNTemplate indicates a malformed DSN template.
	ErrInvalidDSNTemplate = errors.New("invalid dsn template")
)
