// Package notify carries fire-and-forget domain notifications from the
// mutation engine to interested workers, most notably the story refresh
// signal emitted after registration and profile updates.
package notify

import (
	"context"
	"time"

	"github.com/goliatone/go-newswatch/internal/news"
)

// EventType enumerates supported notification categories.
type EventType string

const (
	// EventRefreshStories asks the fetch worker to rescan news for a user.
	EventRefreshStories EventType = "stories.refresh"
)

// Event captures what happened and for whom. User is a snapshot of the
// document at mutation time, not a live reference.
type Event struct {
	Type       EventType
	UserID     string
	User       *news.User
	OccurredAt time.Time
}

// Sink consumes notification events. Senders treat delivery as best-effort;
// a sink error is logged, never propagated into the mutation result.
type Sink interface {
	Notify(ctx context.Context, event Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, event Event) error

// Notify implements Sink.
func (f SinkFunc) Notify(ctx context.Context, event Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopSink struct{}

func (noopSink) Notify(context.Context, Event) error {
	return nil
}

// NormalizeSink substitutes a noop sink for nil.
func NormalizeSink(s Sink) Sink {
	if s == nil {
		return noopSink{}
	}
	return s
}
