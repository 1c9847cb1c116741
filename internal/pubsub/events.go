// Package pubsub fans typed events out to any number of subscribers and
// adapts subscriptions to Bubble Tea commands.
package pubsub

import "time"

// EventType tags what a published event means.
type EventType string

const (
	// ContentChangedEvent carries a debounced change notification.
	ContentChangedEvent EventType = "content_changed"
	// ContentFlushedEvent carries a change notification sent without waiting
	// for the debounce window (blur, dispose, document reset).
	ContentFlushedEvent EventType = "content_flushed"
	// LogEntryEvent carries one formatted debug log line.
	LogEntryEvent EventType = "log_entry"
)

// Event is one published payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
