package dbrouter

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/tenantkit/pkg/audit"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// EventUnscopedRoute is the audit event type for every RouteUnscoped call.
const EventUnscopedRoute = "db.route_unscoped"

// Opener opens a connection pool for a rendered DSN. Replaceable in
// tests to avoid dialing a real database.
type Opener func(ctx context.Context, dsn string, cfg Config) (*pgxpool.Pool, error)

// Option configures a Router.
type Option func(*Router)

// WithOpener replaces the default pgx pool opener.
func WithOpener(open Opener) Option {
	return func(r *Router) {
		if open != nil {
			r.open = open
		}
	}
}

// WithLogger sets the router logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Router maintains one lazily-created connection pool per routing
// alias. Safe for concurrent use; each caller gets a handle on the
// shared pool, and pgx guarantees callers never observe each other's
// in-flight transactions.
type Router struct {
	directory tenant.Directory
	audit     audit.Logger
	cfg       Config
	open      Opener
	logger    *slog.Logger

	entries sync.Map // alias -> *poolEntry
}

type poolEntry struct {
	once sync.Once

	mu   sync.Mutex
	pool *pgxpool.Pool
	err  error
}

// get snapshots the dial result. Safe to call while the first dial for
// the alias is still in flight; it returns nil/nil until the dial
// completes.
func (e *poolEntry) get() (*pgxpool.Pool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pool, e.err
}

func (e *poolEntry) set(pool *pgxpool.Pool, err error) {
	e.mu.Lock()
	e.pool, e.err = pool, err
	e.mu.Unlock()
}

// New creates a Router. The directory is required for the suspension
// re-check; the audit logger is required because RouteUnscoped may not
// operate unaudited. Panics on invalid configuration to fail fast at
// startup.
func New(directory tenant.Directory, auditLog audit.Logger, cfg Config, opts ...Option) *Router {
	if directory == nil {
		panic("dbrouter: directory cannot be nil")
	}
	if auditLog == nil {
		panic("dbrouter: audit logger cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	r := &Router{
		directory: directory,
		audit:     auditLog,
		cfg:       cfg,
		open:      defaultOpener,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route returns the pool for the tenant bound to the context.
// Returns tenant.ErrNotBound without a binding and
// tenant.ErrTenantSuspended when the live record says the tenant was
// suspended since resolution.
func (r *Router) Route(ctx context.Context) (*pgxpool.Pool, error) {
	alias, ok := tenant.AliasFromContext(ctx)
	if !ok {
		return nil, tenant.ErrNotBound
	}
	return r.RouteAlias(ctx, alias)
}

// RouteAlias returns the pool for an explicit alias, for code that
// carries the alias outside a request context (queue workers holding a
// job's alias). The suspension re-check still applies.
func (r *Router) RouteAlias(ctx context.Context, alias string) (*pgxpool.Pool, error) {
	t, err := r.directory.GetByAlias(ctx, alias)
	if err != nil {
		return nil, err
	}
	if t.Suspended() {
		return nil, tenant.ErrTenantSuspended
	}
	return r.pool(ctx, alias)
}

// RouteUnscoped returns the pool for an alias without the suspension
// check. For migrations and administrative tooling only; every call is
// recorded in the audit log before a pool is handed out.
func (r *Router) RouteUnscoped(ctx context.Context, alias string) (*pgxpool.Pool, error) {
	if err := r.audit.Log(ctx, EventUnscopedRoute, audit.WithTenantAlias(alias)); err != nil {
		return nil, err
	}
	return r.pool(ctx, alias)
}

func (r *Router) pool(ctx context.Context, alias string) (*pgxpool.Pool, error) {
	v, _ := r.entries.LoadOrStore(alias, &poolEntry{})
	e := v.(*poolEntry)

	e.once.Do(func() {
		e.set(r.dial(ctx, alias))
	})

	pool, err := e.get()
	if err != nil {
		// Drop the failed entry so a later call retries instead of
		// caching the outage forever.
		r.entries.CompareAndDelete(alias, e)
		return nil, err
	}
	return pool, nil
}

func (r *Router) dial(ctx context.Context, alias string) (*pgxpool.Pool, error) {
	dsn := r.cfg.DSNFor(alias)

	var lastErr error
	for i := 0; i < r.cfg.RetryAttempts; i++ {
		pool, err := r.open(ctx, dsn, r.cfg)
		if err == nil {
			return pool, nil
		}
		lastErr = err

		r.logger.WarnContext(ctx, "failed to open tenant pool",
			slog.String("alias", alias),
			slog.Int("attempt", i+1),
			slog.Any("error", err))

		// No point backing off after the final attempt.
		if i+1 == r.cfg.RetryAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionUnavailable, lastErr, ctx.Err())
		case <-time.After(time.Duration(i+1) * r.cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrConnectionUnavailable, lastErr)
}

// Healthcheck pings every open pool. Suitable for health endpoints.
func (r *Router) Healthcheck(ctx context.Context) error {
	var errs []error
	r.entries.Range(func(key, value any) bool {
		e := value.(*poolEntry)
		if pool, _ := e.get(); pool != nil {
			if err := pool.Ping(ctx); err != nil {
				errs = append(errs, errors.Join(ErrConnectionUnavailable, err))
			}
		}
		return true
	})
	return errors.Join(errs...)
}

// Close closes every open pool. The router is unusable afterwards.
func (r *Router) Close() {
	r.entries.Range(func(key, value any) bool {
		e := value.(*poolEntry)
		if pool, _ := e.get(); pool != nil {
			pool.Close()
		}
		r.entries.Delete(key)
		return true
	})
}

// defaultOpener parses the DSN, applies pool sizing, and verifies the
// connection with a ping.
func defaultOpener(ctx context.Context, dsn string, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = cfg.MaxOpenConns
	poolCfg.MinConns = cfg.MaxIdleConns
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
