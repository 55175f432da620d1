// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broadcast

import (
	"log/slog"
	"sync"
	"time"
)

// Event describes one state change other viewers should react to. The core
// only says WHAT changed; how the signal reaches other clients (SSE here,
// websockets or polling elsewhere) is the transport's business.
type Event struct {
	Kind   string    `json:"kind"`
	PollID string    `json:"poll_id,omitempty"`
	At     time.Time `json:"at"`
}

const subscriberBuffer = 16

// Bus fans events out to subscribers. Publishing never blocks: a subscriber
// whose buffer is full misses the event and can refetch state on the next one.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away; it closes the channel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber that can take it.
func (b *Bus) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			slog.Warn("dropping broadcast event for slow subscriber", "kind", event.Kind, "poll_id", event.PollID)
		}
	}
}

// Subscribers reports the current listener count.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
