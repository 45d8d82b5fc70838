package dbrouter

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	DSNTemplate       string        `env:"DB_ROUTER_DSN_TEMPLATE,required"`                // DSNTemplate is the connection string template; %s is replaced with the routing alias.
	MaxOpenConns      int32         `env:"DB_ROUTER_MAX_OPEN_CONNS" envDefault:"4"`        // MaxOpenConns is the maximum number of open connections per alias pool.
	MaxIdleConns      int32         `env:"DB_ROUTER_MAX_IDLE_CONNS" envDefault:"1"`        // MaxIdleConns is the minimum number of idle connections kept per alias pool.
	HealthCheckPeriod time.Duration `env:"DB_ROUTER_HEALTHCHECK_PERIOD" envDefault:"1m"`   // HealthCheckPeriod is the period between pool health checks.
	MaxConnIdleTime   time.Duration `env:"DB_ROUTER_MAX_CONN_IDLE_TIME" envDefault:"10m"`  // MaxConnIdleTime is the maximum time a connection may sit idle before being closed.
	MaxConnLifetime   time.Duration `env:"DB_ROUTER_MAX_CONN_LIFETIME" envDefault:"30m"`   // MaxConnLifetime is the maximum total lifetime of a pooled connection.
	RetryAttempts     int           `env:"DB_ROUTER_RETRY_ATTEMPTS" envDefault:"3"`        // RetryAttempts is the number of attempts to open a pool for an alias.
	RetryInterval     time.Duration `env:"DB_ROUTER_RETRY_INTERVAL" envDefault:"500ms"`    // RetryInterval is the base interval between attempts; backoff grows linearly.
}

// Validate checks the template carries exactly one alias placeholder.
func (c Config) Validate() error {
	if strings.Count(c.DSNTemplate, "%s") != 1 {
		return fmt.Errorf("%w: template must contain exactly one %%s placeholder", ErrInvalidDSNTemplate)
	}
	return nil
}

// DSNFor renders the connection string for a routing alias.
func (c Config) DSNFor(alias string) string {
	return fmt.Sprintf(c.DSNTemplate, alias)
}
