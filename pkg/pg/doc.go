// Package pg provides the PostgreSQL plumbing shared by the tenant
// directory and the database router: pooled connections via pgx/v5,
// schema migrations via goose/v3, health checks, and error
// classification helpers.
//
// Config fields populate from environment variables (see the field
// tags); Connect opens a *pgxpool.Pool with linear-backoff retries so
// services survive transient startup races; Migrate applies the goose
// migrations that create the tenants and hostname_mappings tables
// before traffic is served.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		return err
//	}
//
// IsNotFoundError, IsDuplicateKeyError, and the other classifiers keep
// pgx error handling out of business logic.
package pg
