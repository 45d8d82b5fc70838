// Package config provides a type-safe, generic and cached way to load
// application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 to
// deliver a convenient API that:
//
//   - Loads values from one or multiple .env files (falling back to the
//     default .env in the current working directory).
//   - Parses the environment into any Go struct using field tags.
//   - Caches each successfully loaded configuration type so it is only
//     parsed once for the lifetime of the process.
//   - Exposes helpers that panic on failure (MustLoadEnv, MustLoad) for
//     scenarios where configuration is critical.
//   - Allows explicit cache reset or force reload which is handy in tests.
//
// # Usage
//
// Create a struct describing your configuration and annotate its fields
// with env tags:
//
//	type DatabaseConfig struct {
//	    Host string `env:"DB_HOST,required"`
//	    Port int    `env:"DB_PORT" envDefault:"5432"`
//	}
//
// Load the default .env file (optional) then populate the struct:
//
//	if err := config.LoadEnv("./config/.env"); err != nil {
//	    log.Fatalf("loading env: %v", err)
//	}
//
//	var db DatabaseConfig
//	if err := config.Load(&db); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// Subsequent calls to config.Load(&db) are served from the in-memory cache
// without re-parsing.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with errors.Is:
//
//   - ErrParsingConfig: failed to parse env vars into the struct.
//   - ErrLoadingEnvFile: a named .env file could not be read.
//   - ErrConfigNotLoaded: requested config type has not been loaded yet.
//   - ErrNilPointer: nil pointer passed to Load/MustLoad.
//
// # Testing Helpers
//
// Use ResetCache to clear the global cache between tests or
// ForceReloadConfig to reload a particular struct after the process
// environment changes.
package config
