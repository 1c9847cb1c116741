package pubsub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBufferSize is the per-subscriber queue length of NewBroker.
const DefaultBufferSize = 64

// Broker delivers every published event to each live subscriber. Subscribers
// own a bounded queue; Publish never waits on a slow reader and counts the
// events such a reader missed instead.
type Broker[T any] struct {
	mu      sync.RWMutex
	subs    map[chan Event[T]]struct{}
	closed  chan struct{}
	buffer  int
	dropped atomic.Uint64
}

// NewBroker creates a broker with DefaultBufferSize queues.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](DefaultBufferSize)
}

// NewBrokerWithBuffer creates a broker whose subscribers queue up to size
// events. A size below 1 is treated as 1.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[chan Event[T]]struct{}),
		closed: make(chan struct{}),
		buffer: max(size, 1),
	}
}

func (b *Broker[T]) isClosed() bool {
	select {
	case <-b.closed:
		return true
	default:
		return false
	}
}

// Subscribe registers a subscriber. The channel closes when ctx is done or
// the broker is closed; subscribing to a closed broker yields a closed
// channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed() {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}
	ch := make(chan Event[T], b.buffer)
	b.subs[ch] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
			b.unsubscribe(ch)
		case <-b.closed:
		}
	}()
	return ch
}

func (b *Broker[T]) unsubscribe(ch chan Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; !ok {
		return
	}
	delete(b.subs, ch)
	close(ch)
}

// Publish stamps and queues an event for every subscriber.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.isClosed() {
		return
	}

	ev := Event[T]{Type: eventType, Payload: payload, Timestamp: time.Now()}
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.dropped.Add(1)
		}
	}
}

// Close closes every subscriber channel. Later calls are no-ops.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.isClosed() {
		return
	}
	close(b.closed)
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}

// SubscriberCount returns the number of live subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped because a subscriber's
// queue was full.
func (b *Broker[T]) Dropped() uint64 {
	return b.dropped.Load()
}
