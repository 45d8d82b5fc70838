package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Logger records audit events.
type Logger interface {
	// Log stores one event. The entry is written before Log returns;
	// callers that must audit an operation call Log first and only then
	// perform the operation.
	Log(ctx context.Context, eventType string, opts ...EventOption) error
}

// ActorExtractor pulls the acting identity out of a context, e.g. from
// an authenticated session. Returns false when no actor is known.
type ActorExtractor func(ctx context.Context) (string, bool)

// Option configures a Logger.
type Option func(*logger)

// WithActorExtractor registers a context extractor for the actor field.
// Explicit WithActor event options still take precedence.
func WithActorExtractor(extractor ActorExtractor) Option {
	return func(l *logger) {
		if extractor != nil {
			l.actorExtractor = extractor
		}
	}
}

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *logger) {
		if now != nil {
			l.now = now
		}
	}
}

type logger struct {
	storage        Storage
	actorExtractor ActorExtractor
	now            func() time.Time
}

// NewLogger creates an audit logger writing to the given storage.
func NewLogger(storage Storage, opts ...Option) Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	l := &logger{
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *logger) Log(ctx context.Context, eventType string, opts ...EventOption) error {
	event := Event{
		ID:        uuid.New().String(),
		EventType: eventType,
		CreatedAt: l.now(),
	}

	if l.actorExtractor != nil {
		if actor, ok := l.actorExtractor(ctx); ok {
			event.Actor = actor
		}
	}

	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	return l.storage.Store(ctx, event)
}
