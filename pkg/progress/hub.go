package progress

import (
	"io"
	"log"
	"runtime/debug"
	"sync"
)

// Handler receives progress events
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// Hub fans events out to subscribers. Delivery is synchronous and in
// subscription order, so each subscriber sees an operation's events in the
// order they were produced.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
	logger *log.Logger
}

// NewHub creates an empty hub
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{logger: logger}
}

// Subscribe registers a handler and returns a function that removes it
func (h *Hub) Subscribe(handler Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subs = append(h.subs, subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subs {
				if s.id == id {
					h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers e to every current subscriber
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	subs := make([]subscription, len(h.subs))
	copy(subs, h.subs)
	h.mu.RUnlock()

	for _, s := range subs {
		h.deliver(s.handler, e)
	}
}

func (h *Hub) deliver(handler Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Printf("Progress handler panic for %s: %v\nStack: %s", e.Kind, r, debug.Stack())
		}
	}()
	handler(e)
}

// Len returns the number of subscribers
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
