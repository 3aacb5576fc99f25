package realtime

import (
	"sync"

	"invoice-manager/entities"
)

// Collection is a local materialized view of one user's invoices, kept in
// sync by applying change events in arrival order. There is no sequence
// number or version check: a stale UPDATE that arrives after a DELETE will
// re-insert the row. That matches the behavior of the subscription feed this
// mirrors and is a known, accepted gap.
type Collection struct {
	mu    sync.RWMutex
	byID  map[string]*entities.Invoice
	order []string
}

func NewCollection() *Collection {
	return &Collection{byID: make(map[string]*entities.Invoice)}
}

// Apply folds one event into the view.
func (c *Collection) Apply(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Type {
	case EventInsert, EventUpdate:
		if event.Invoice == nil {
			return
		}
		if _, exists := c.byID[event.InvoiceID]; !exists {
			c.order = append(c.order, event.InvoiceID)
		}
		c.byID[event.InvoiceID] = event.Invoice
	case EventDelete:
		if _, exists := c.byID[event.InvoiceID]; !exists {
			return
		}
		delete(c.byID, event.InvoiceID)
		for i, id := range c.order {
			if id == event.InvoiceID {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

// Reset replaces the entire view.
func (c *Collection) Reset(invoices []*entities.Invoice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID = make(map[string]*entities.Invoice, len(invoices))
	c.order = c.order[:0]
	for _, inv := range invoices {
		id := inv.ID.String()
		if _, exists := c.byID[id]; !exists {
			c.order = append(c.order, id)
		}
		c.byID[id] = inv
	}
}

// Snapshot returns the invoices in insertion order.
func (c *Collection) Snapshot() []*entities.Invoice {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*entities.Invoice, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len reports the current number of rows in the view.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}
