// Package change coalesces content-changed notifications. Bursts of edits
// produce one notification after an idle window; blur and disposal flush
// immediately.
package change

import (
	"context"
	"sync"
	"time"

	"github.com/zjrosen/spanedit/internal/log"
	"github.com/zjrosen/spanedit/internal/pubsub"
)

// Notification tells consumers that the document changed.
type Notification struct {
	// Seq increases by one per delivered notification.
	Seq uint64
	// Immediate is set for flushes that skipped the debounce window.
	Immediate bool
}

// Config holds coordinator options.
type Config struct {
	// Debounce is the idle window. Zero or less delivers every Notify at once.
	Debounce time.Duration
}

// DefaultConfig returns sensible defaults for the coordinator.
func DefaultConfig() Config {
	return Config{
		Debounce: 250 * time.Millisecond,
	}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithCallback registers a function called synchronously for every
// notification, after subscribers have been published to.
func WithCallback(fn func(Notification)) Option {
	return func(c *Coordinator) {
		c.callback = fn
	}
}

// Coordinator owns the single debounce timer. It is safe for concurrent use;
// the timer fires on its own goroutine.
type Coordinator struct {
	mu       sync.Mutex
	debounce time.Duration
	timer    *time.Timer
	gen      uint64
	pending  bool
	disposed bool
	seq      uint64

	broker   *pubsub.Broker[Notification]
	callback func(Notification)
}

// New creates a coordinator.
func New(cfg Config, opts ...Option) *Coordinator {
	c := &Coordinator{
		debounce: cfg.Debounce,
		broker:   pubsub.NewBroker[Notification](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe returns a channel of notifications, closed when ctx is cancelled
// or the coordinator is disposed.
func (c *Coordinator) Subscribe(ctx context.Context) <-chan pubsub.Event[Notification] {
	return c.broker.Subscribe(ctx)
}

// Broker exposes the underlying broker for Bubble Tea listeners.
func (c *Coordinator) Broker() *pubsub.Broker[Notification] {
	return c.broker
}

// Notify schedules a notification at the end of the idle window, restarting
// the window if one is already pending.
func (c *Coordinator) Notify() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	if c.debounce <= 0 {
		c.pending = false
		n := c.next(false)
		c.mu.Unlock()
		c.deliver(n)
		return
	}
	c.pending = true
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() { c.fire(gen) })
	c.mu.Unlock()
}

// NotifyImmediate cancels any pending notification and delivers one now.
func (c *Coordinator) NotifyImmediate() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.cancelTimer()
	n := c.next(true)
	c.mu.Unlock()
	c.deliver(n)
}

// Flush delivers a pending notification now. It does nothing when no
// notification is pending.
func (c *Coordinator) Flush() {
	c.mu.Lock()
	if c.disposed || !c.pending {
		c.mu.Unlock()
		return
	}
	c.cancelTimer()
	n := c.next(true)
	c.mu.Unlock()
	c.deliver(n)
}

// Pending reports whether a debounced notification is waiting.
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Seq returns the sequence number of the last delivered notification.
func (c *Coordinator) Seq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Dispose flushes a pending notification, releases the timer and closes the
// broker. Later calls on the coordinator are no-ops.
func (c *Coordinator) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	wasPending := c.pending
	c.cancelTimer()
	var n Notification
	if wasPending {
		n = c.next(true)
	}
	c.disposed = true
	c.mu.Unlock()

	if wasPending {
		c.deliver(n)
	}
	c.broker.Close()
	log.Debug(log.CatChange, "coordinator disposed", "flushed", wasPending)
}

func (c *Coordinator) fire(gen uint64) {
	c.mu.Lock()
	if c.disposed || !c.pending || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.pending = false
	c.timer = nil
	n := c.next(false)
	c.mu.Unlock()
	c.deliver(n)
}

// cancelTimer stops the timer and clears the pending flag. Caller holds mu.
func (c *Coordinator) cancelTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	c.pending = false
}

// next allocates the following notification. Caller holds mu.
func (c *Coordinator) next(immediate bool) Notification {
	c.seq++
	return Notification{Seq: c.seq, Immediate: immediate}
}

func (c *Coordinator) deliver(n Notification) {
	eventType := pubsub.ContentChangedEvent
	if n.Immediate {
		eventType = pubsub.ContentFlushedEvent
	}
	c.broker.Publish(eventType, n)
	log.Debug(log.CatChange, "content changed", "seq", n.Seq, "immediate", n.Immediate, "dropped", c.broker.Dropped())
	if c.callback != nil {
		c.callback(n)
	}
}
