package realtime

import (
	"testing"

	"invoice-manager/entities"

	"github.com/google/uuid"
)

func invoiceRow(id uuid.UUID, seller string) *entities.Invoice {
	return &entities.Invoice{ID: id, SellerName: seller}
}

func TestCollection_ApplyInsertUpdateDelete(t *testing.T) {
	c := NewCollection()
	id1 := uuid.New()
	id2 := uuid.New()

	c.Apply(Event{Type: EventInsert, InvoiceID: id1.String(), Invoice: invoiceRow(id1, "a")})
	c.Apply(Event{Type: EventInsert, InvoiceID: id2.String(), Invoice: invoiceRow(id2, "b")})
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	c.Apply(Event{Type: EventUpdate, InvoiceID: id1.String(), Invoice: invoiceRow(id1, "a2")})
	snapshot := c.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("snapshot length = %d, want 2", len(snapshot))
	}
	if snapshot[0].SellerName != "a2" {
		t.Errorf("update not applied, seller = %q", snapshot[0].SellerName)
	}
	// Updates must not reorder the view.
	if snapshot[0].ID != id1 || snapshot[1].ID != id2 {
		t.Errorf("insertion order lost after update")
	}

	c.Apply(Event{Type: EventDelete, InvoiceID: id1.String()})
	snapshot = c.Snapshot()
	if len(snapshot) != 1 || snapshot[0].ID != id2 {
		t.Errorf("delete not applied, snapshot = %v", snapshot)
	}
}

// Events are applied in arrival order with no version check, so an UPDATE
// arriving after the row's DELETE re-inserts it. This documents the current
// behavior of the feed rather than an ideal.
func TestCollection_StaleUpdateResurrectsRow(t *testing.T) {
	c := NewCollection()
	id := uuid.New()

	c.Apply(Event{Type: EventInsert, InvoiceID: id.String(), Invoice: invoiceRow(id, "a")})
	c.Apply(Event{Type: EventDelete, InvoiceID: id.String()})
	if c.Len() != 0 {
		t.Fatalf("Len = %d after delete, want 0", c.Len())
	}

	c.Apply(Event{Type: EventUpdate, InvoiceID: id.String(), Invoice: invoiceRow(id, "stale")})
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 (stale update re-inserts)", c.Len())
	}
}

func TestCollection_IgnoresNilPayloadAndUnknownDelete(t *testing.T) {
	c := NewCollection()
	id := uuid.New()

	c.Apply(Event{Type: EventInsert, InvoiceID: id.String(), Invoice: nil})
	if c.Len() != 0 {
		t.Errorf("insert without payload must be a no-op")
	}

	c.Apply(Event{Type: EventDelete, InvoiceID: id.String()})
	if c.Len() != 0 {
		t.Errorf("delete of unknown row must be a no-op")
	}
}

func TestCollection_Reset(t *testing.T) {
	c := NewCollection()
	old := uuid.New()
	c.Apply(Event{Type: EventInsert, InvoiceID: old.String(), Invoice: invoiceRow(old, "old")})

	id1 := uuid.New()
	id2 := uuid.New()
	c.Reset([]*entities.Invoice{invoiceRow(id1, "x"), invoiceRow(id2, "y")})

	snapshot := c.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("snapshot length = %d, want 2", len(snapshot))
	}
	if snapshot[0].ID != id1 || snapshot[1].ID != id2 {
		t.Errorf("reset must keep the given order")
	}
}
