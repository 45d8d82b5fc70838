// Package redis provides helpers for connecting to the Redis server that
// backs tenant-scoped caching.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the initial connection using the supplied
//     configuration before giving up.
//   - A health-check helper for liveness and readiness probes.
//
// Configuration is described by the Config struct whose fields are populated
// from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	cfg := redis.Config{
//	    ConnectionURL:  "redis://localhost:6379/0",
//	    RetryAttempts:  3,
//	    RetryInterval:  5 * time.Second,
//	    ConnectTimeout: 30 * time.Second,
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
//
// The resulting client plugs straight into tenantcache:
//
//	backend := tenantcache.NewRedisBackend(client)
//
// Register a health-check in your observability stack:
//
//	checker := redis.Healthcheck(client)
//	if err := checker(ctx); err != nil {
//	    // redis is not healthy
//	}
//
// # Errors
//
// The package defines sentinel errors (e.g. ErrRedisNotReady) that wrap the
// underlying go-redis errors using errors.Join, making them easy to compare
// and unwrap.
package redis
