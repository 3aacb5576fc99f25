package realtime

import (
	"sync"

	"invoice-manager/entities"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

type Event struct {
	Type      EventType         `json:"type"`
	UserID    string            `json:"user_id"`
	InvoiceID string            `json:"invoice_id"`
	Invoice   *entities.Invoice `json:"invoice,omitempty"`
}

// Hub fans invoice change events out to per-user subscribers and keeps a
// materialized collection per user so new subscribers get a snapshot without
// a database round trip. Sends to slow subscribers are dropped rather than
// queued; there is no backpressure on the publish path.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	collections map[string]*Collection
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		collections: make(map[string]*Collection),
	}
}

// Subscribe registers a listener for one user's events and returns the
// current snapshot, the event channel, and an unsubscribe function.
func (h *Hub) Subscribe(userID string) ([]*entities.Invoice, <-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}
	collection := h.collection(userID)
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		if subs, ok := h.subscribers[userID]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subscribers, userID)
			}
		}
		h.mu.Unlock()
		close(ch)
	}

	return collection.Snapshot(), ch, unsubscribe
}

// Publish applies the event to the user's collection and broadcasts it.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.collection(event.UserID).Apply(event)

	for ch := range h.subscribers[event.UserID] {
		select {
		case ch <- event:
		default:
			// subscriber is not keeping up, drop the event
		}
	}
}

// Seed replaces a user's collection, typically from a database read when the
// first subscriber connects.
func (h *Hub) Seed(userID string, invoices []*entities.Invoice) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.collection(userID).Reset(invoices)
}

// collection lazily creates the per-user collection; callers hold mu.
func (h *Hub) collection(userID string) *Collection {
	if c, ok := h.collections[userID]; ok {
		return c
	}
	c := NewCollection()
	h.collections[userID] = c
	return c
}
