package tenant

import (
	"log/slog"
	"net/http"
	"strings"
)

// Middleware resolves the request hostname and binds the resulting
// tenant to the request context for the handler chain below it. The
// binding lives exactly as long as the request context, so teardown is
// guaranteed on every exit path; pooled workers can never observe a
// previous request's tenant.
//
// Outcome mapping: active tenants proceed bound; suspended tenants get
// 410 and are never bound; unresolved hosts get 403 under PolicyStrict
// or proceed unbound under PolicyPermissive.
func Middleware(resolver *Resolver, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		policy:       PolicyStrict,
		errorHandler: defaultErrorHandler,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			host := HostFromRequest(r)
			res := resolver.Resolve(r.Context(), host)

			switch res.Outcome {
			case OutcomeActive:
				ctx, err := Bind(r.Context(), res.Tenant)
				if err != nil {
					// Double-bind is a programming error; fail loudly
					// instead of serving with an ambiguous tenant.
					cfg.logger.ErrorContext(r.Context(), "tenant bind failed",
						slog.String("host", host),
						slog.String("alias", res.Tenant.RoutingAlias),
						slog.Any("error", err))
					cfg.errorHandler(w, r, err)
					return
				}
				next.ServeHTTP(w, r.WithContext(ctx))

			case OutcomeSuspended:
				cfg.errorHandler(w, r, &suspendedError{reason: res.Tenant.SuspensionReason})

			default:
				if cfg.policy == PolicyPermissive {
					cfg.logger.WarnContext(r.Context(), "serving request without tenant context",
						slog.String("host", host),
						slog.String("policy", string(PolicyPermissive)))
					next.ServeHTTP(w, r)
					return
				}
				cfg.errorHandler(w, r, ErrHostNotMapped)
			}
		})
	}
}

// RequireTenant rejects any request that reaches it without a bound
// tenant. Mount it on routes that must never run unscoped.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNotBound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
