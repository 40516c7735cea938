package events

import (
	"sync"
	"time"
)

// Handler processes a single event
type Handler func(Event)

// Bus fans events out to subscribed handlers. Emit is safe for
// concurrent use; handlers run synchronously in subscription order,
// so a run's event sequence is totally ordered.
type Bus struct {
	mu       sync.Mutex
	handlers []Handler
}

// NewBus creates an empty event bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all subsequent events
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Emit stamps the event time (if unset) and delivers it to all handlers
func (b *Bus) Emit(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	b.mu.Lock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, h := range handlers {
		h(e)
	}
}
