// Package eventbus provides the in-process event fan-out behind
// ports.EventPublisher. Delivery is at most once: a subscriber that
// cannot keep up loses events instead of stalling the publisher.
package eventbus

import (
	"log/slog"
	"sync"

	"dispatch/internal/core/ports"
)

// subscriberBuffer absorbs short bursts before events start dropping.
const subscriberBuffer = 16

// Subscription is one listener's view of the event stream.
type Subscription struct {
	ch chan ports.Event
}

// Events returns the channel events arrive on. It is closed when the
// subscription is removed from the broadcaster.
func (s *Subscription) Events() <-chan ports.Event {
	return s.ch
}

// Broadcaster fans domain events out to all current subscribers.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[*Subscription]struct{}
	logger      *slog.Logger
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[*Subscription]struct{}),
		logger:      logger.With("component", "event_broadcaster"),
	}
}

// Subscribe registers a new listener.
func (b *Broadcaster) Subscribe() *Subscription {
	sub := &Subscription{ch: make(chan ports.Event, subscriberBuffer)}

	b.mu.Lock()
	b.subscribers[sub] = struct{}{}
	b.mu.Unlock()

	return sub
}

// Unsubscribe removes a listener and closes its channel.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[sub]; !ok {
		return
	}
	delete(b.subscribers, sub)
	close(sub.ch)
}

// Publish delivers the event to every subscriber that has buffer room.
// It never blocks.
func (b *Broadcaster) Publish(event ports.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers {
		select {
		case sub.ch <- event:
		default:
			b.logger.Debug("subscriber buffer full, event dropped", "kind", event.Kind)
		}
	}
}
