package audit

import (
	"context"
	"log/slog"
	"sync"
)

// Storage persists audit events.
type Storage interface {
	Store(ctx context.Context, event Event) error
}

// slogStorage writes events to a structured logger. Suitable when the
// log pipeline is the durable audit sink.
type slogStorage struct {
	logger *slog.Logger
}

// NewSlogStorage creates a storage that emits each event as one
// structured log record at INFO level.
func NewSlogStorage(logger *slog.Logger) Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogStorage{logger: logger}
}

func (s *slogStorage) Store(ctx context.Context, event Event) error {
	attrs := []slog.Attr{
		slog.String("audit_id", event.ID),
		slog.String("event_type", event.EventType),
		slog.String("tenant_alias", event.TenantAlias),
		slog.String("actor", event.Actor),
		slog.Time("timestamp", event.CreatedAt),
	}
	if event.Reason != "" {
		attrs = append(attrs, slog.String("reason", event.Reason))
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", event.Metadata))
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit: "+event.EventType, attrs...)
	return nil
}

// memoryStorage keeps events in memory. For tests.
type memoryStorage struct {
	mu     sync.Mutex
	events []Event
}

// MemoryStorage is an in-memory Storage with an accessor for recorded
// events.
type MemoryStorage interface {
	Storage

	// Events returns a copy of all stored events in insertion order.
	Events() []Event
}

// NewMemoryStorage creates an in-memory audit sink.
func NewMemoryStorage() MemoryStorage {
	return &memoryStorage{}
}

func (s *memoryStorage) Store(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *memoryStorage) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
