// Package notify tells interested parties, typically a live-reload dev
// server, that an asset pipeline finished. Notification is best effort: the
// caller logs failures and never fails a build because of them.
package notify

import (
	"context"
	"time"
)

// Event describes one finished pipeline run.
type Event struct {
	Pipeline string
	Target   string
	Duration time.Duration
}

// Payload is the wire form of an Event.
func (e Event) Payload() map[string]any {
	return map[string]any{
		"pipeline":    e.Pipeline,
		"target":      e.Target,
		"status":      "built",
		"duration_ms": e.Duration.Milliseconds(),
	}
}

// Notifier delivers events.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Noop discards every event.
type Noop struct{}

// Notify implements Notifier.
func (Noop) Notify(context.Context, Event) error { return nil }
