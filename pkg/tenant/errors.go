package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches the given
	// alias or slug.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrHostNotMapped is returned when a hostname has no routing alias.
	ErrHostNotMapped = errors.New("hostname is not mapped to a tenant")

	// ErrTenantSuspended is returned when an operation is attempted
	// against a suspended tenant's data plane.
	ErrTenantSuspended = errors.New("tenant is suspended")

	// ErrAlreadyBound is returned by Bind when the context already
	// carries a tenant binding. Double-binding is a programming error
	// and must fail loudly rather than silently replace the tenant.
	ErrAlreadyBound = errors.New("tenant already bound to context")

	// ErrNotBound is returned by tenant-requiring operations when the
	// context carries no binding. Silently substituting a default
	// tenant here is the exact bug class this package exists to prevent.
	ErrNotBound = errors.New("no tenant bound to context")

	// ErrInvalidIdentifier is returned when a slug or alias fails
	// validation before being trusted as a tenant identifier.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrLifecycleUpdateFailed wraps persistence failures during a
	// lifecycle transition.
	ErrLifecycleUpdateFailed = errors.New("tenant lifecycle update failed")
)
