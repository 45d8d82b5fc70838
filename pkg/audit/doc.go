// Package audit records security-relevant platform events as structured
// entries: tenant lifecycle transitions and every use of a cross-tenant
// escape hatch.
//
// Each entry carries the event type, the affected tenant's routing
// alias, the acting identity, an optional reason, and a timestamp.
// Emission is synchronous and mandatory at the call sites that use it;
// an escape hatch that skips its audit entry is a defect, not an
// optimization.
//
//	auditLog := audit.NewLogger(audit.NewSlogStorage(logger))
//	_ = auditLog.Log(ctx, "tenant.suspended",
//		audit.WithTenantAlias("acme_corp"),
//		audit.WithReason("payment overdue"),
//	)
//
// Storage is pluggable: NewSlogStorage writes entries to a structured
// logger, NewMemoryStorage keeps them in memory for tests, and any
// durable sink can implement the Storage interface.
package audit
