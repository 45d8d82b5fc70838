// Package logger builds slog loggers with context-aware attribute
// injection for the tenant routing layer.
//
// The factory produces JSON output by default (production) or text for
// development, and wraps the handler in a decorator that pulls
// request-scoped attributes out of the context on every log call. The
// tenant binding is the primary use: registering
// tenant.LoggerExtractor() stamps every log record written during a
// request with the bound tenant's routing alias.
//
//	log := logger.New(
//		logger.WithProduction("routing"),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers (Error, TenantAlias, Host) keep key names consistent
// across the codebase.
package logger
