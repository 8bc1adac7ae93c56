package events

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// subscriberBuffer bounds how far a subscriber may lag the publisher before
// events are dropped for it.
const subscriberBuffer = 256

// Bus is a single-producer, multi-consumer broadcast channel. Publish never
// blocks on a slow subscriber: a full subscriber buffer causes that
// subscriber (and only that subscriber) to drop the event, preserving
// delivery order for everyone else. Dropped events are not retried: a retry
// goroutine could complete out of order against the main publish loop and
// break the per-subscriber ordering of the stream.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	closed bool
	once   sync.Once
}

// NewBus constructs an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a new subscriber and returns its event channel and an
// Unsubscribe function. The channel is closed when either Unsubscribe or
// Bus.Close is called.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
	return ch, unsubscribe
}

// Publish delivers evt to every current subscriber. Publish is safe to call
// concurrently with Subscribe; it is a no-op after Close.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for id, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			log.Warn().Int("subscriber", id).Str("event", evt.Type.String()).
				Msg("events: subscriber lagging, dropping event")
		}
	}
}

// Close stops accepting publications and closes every subscriber channel.
// Close executes its shutdown sequence exactly once; later calls are no-ops.
func (b *Bus) Close() {
	b.once.Do(func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.closed = true
		for id, ch := range b.subs {
			close(ch)
			delete(b.subs, id)
		}
	})
}
