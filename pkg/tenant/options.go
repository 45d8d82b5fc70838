package tenant

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Policy controls what the boundary does with a request whose hostname
// resolves to no tenant.
type Policy string

const (
	// PolicyStrict rejects unresolved hosts with 403.
	PolicyStrict Policy = "strict"

	// PolicyPermissive lets unresolved requests proceed with no tenant
	// binding. Choosing it is an explicit, logged configuration
	// decision; downstream tenant-requiring calls still fail with
	// ErrNotBound rather than falling back to any default tenant.
	PolicyPermissive Policy = "permissive"
)

// ErrorHandler converts a resolution failure into an HTTP response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	policy       Policy
	skipPaths    []string
	errorHandler ErrorHandler
	logger       *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

// WithPolicy sets the unresolved-host policy. Default is PolicyStrict.
// Invalid values panic to enforce fail-fast initialization.
func WithPolicy(p Policy) Option {
	return func(c *config) {
		switch p {
		case PolicyStrict, PolicyPermissive:
			c.policy = p
		default:
			panic(fmt.Errorf("invalid tenant policy %q: must be %q or %q", p, PolicyStrict, PolicyPermissive))
		}
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution
// entirely, e.g. health checks.
func WithSkipPaths(paths []string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

// WithErrorHandler replaces the default outcome-to-response mapping.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithLogger sets the middleware logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// defaultErrorHandler maps resolution outcomes to their required HTTP
// statuses: unresolved hosts are forbidden, suspended tenants are gone.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantSuspended):
		http.Error(w, "This tenant account is suspended: "+reasonOf(err), http.StatusGone)
	case errors.Is(err, ErrHostNotMapped):
		http.Error(w, "Unknown tenant", http.StatusForbidden)
	case errors.Is(err, ErrNotBound):
		http.Error(w, "Tenant required", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// suspendedError carries the human-readable suspension reason to the
// boundary without losing errors.Is identity.
type suspendedError struct {
	reason string
}

func (e *suspendedError) Error() string {
	if e.reason == "" {
		return ErrTenantSuspended.Error()
	}
	return ErrTenantSuspended.Error() + ": " + e.reason
}

func (e *suspendedError) Unwrap() error { return ErrTenantSuspended }

func reasonOf(err error) string {
	var se *suspendedError
	if errors.As(err, &se) && se.reason != "" {
		return se.reason
	}
	return "contact support"
}
