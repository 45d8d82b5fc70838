package audit

import (
	"fmt"
	"time"
)

// Event is a single audit log entry.
type Event struct {
	ID          string         `json:"id"`
	EventType   string         `json:"event_type"`
	TenantAlias string         `json:"tenant_alias"`
	Actor       string         `json:"actor"`
	Reason      string         `json:"reason,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"timestamp"`
}

// Validate checks that the event carries its required fields.
func (e *Event) Validate() error {
	if e.EventType == "" {
		return fmt.Errorf("%w: event_type is required", ErrEventValidation)
	}
	return nil
}

// EventOption applies per-event fields during Log.
type EventOption func(*Event)

// WithTenantAlias sets the routing alias of the affected tenant.
func WithTenantAlias(alias string) EventOption {
	return func(e *Event) {
		e.TenantAlias = alias
	}
}

// WithActor sets the acting identity, overriding any value extracted
// from context.
func WithActor(actor string) EventOption {
	return func(e *Event) {
		e.Actor = actor
	}
}

// WithReason sets the human-readable reason for the event.
func WithReason(reason string) EventOption {
	return func(e *Event) {
		e.Reason = reason
	}
}

// WithMetadata attaches an arbitrary key/value pair to the event.
func WithMetadata(key string, value any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata[key] = value
	}
}
