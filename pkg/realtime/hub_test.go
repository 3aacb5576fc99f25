package realtime

import (
	"testing"

	"invoice-manager/entities"

	"github.com/google/uuid"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	userID := uuid.New().String()

	snapshot, ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()
	if len(snapshot) != 0 {
		t.Fatalf("fresh subscription snapshot length = %d, want 0", len(snapshot))
	}

	id := uuid.New()
	hub.Publish(Event{Type: EventInsert, UserID: userID, InvoiceID: id.String(), Invoice: &entities.Invoice{ID: id}})

	select {
	case event := <-ch:
		if event.Type != EventInsert || event.InvoiceID != id.String() {
			t.Errorf("unexpected event %+v", event)
		}
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHub_EventsAreScopedToUser(t *testing.T) {
	hub := NewHub()
	_, chA, unsubA := hub.Subscribe("user-a")
	defer unsubA()
	_, chB, unsubB := hub.Subscribe("user-b")
	defer unsubB()

	id := uuid.New()
	hub.Publish(Event{Type: EventInsert, UserID: "user-a", InvoiceID: id.String(), Invoice: &entities.Invoice{ID: id}})

	select {
	case <-chA:
	default:
		t.Error("user-a subscriber missed its event")
	}
	select {
	case event := <-chB:
		t.Errorf("user-b received foreign event %+v", event)
	default:
	}
}

func TestHub_SnapshotReflectsPublishedEvents(t *testing.T) {
	hub := NewHub()
	userID := uuid.New().String()

	id := uuid.New()
	hub.Publish(Event{Type: EventInsert, UserID: userID, InvoiceID: id.String(), Invoice: &entities.Invoice{ID: id}})

	snapshot, _, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()
	if len(snapshot) != 1 || snapshot[0].ID != id {
		t.Errorf("snapshot = %v, want the published invoice", snapshot)
	}
}

func TestHub_SeedReplacesCollection(t *testing.T) {
	hub := NewHub()
	userID := uuid.New().String()

	stale := uuid.New()
	hub.Publish(Event{Type: EventInsert, UserID: userID, InvoiceID: stale.String(), Invoice: &entities.Invoice{ID: stale}})

	fresh := uuid.New()
	hub.Seed(userID, []*entities.Invoice{{ID: fresh}})

	snapshot, _, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()
	if len(snapshot) != 1 || snapshot[0].ID != fresh {
		t.Errorf("snapshot = %v, want only the seeded invoice", snapshot)
	}
}

func TestHub_SlowSubscriberDropsEvents(t *testing.T) {
	hub := NewHub()
	userID := uuid.New().String()

	_, ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	// Fill the buffer and then some; Publish must never block.
	for i := 0; i < 32; i++ {
		id := uuid.New()
		hub.Publish(Event{Type: EventInsert, UserID: userID, InvoiceID: id.String(), Invoice: &entities.Invoice{ID: id}})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	if received != 16 {
		t.Errorf("received %d events, want the 16 that fit the buffer", received)
	}
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	userID := uuid.New().String()

	_, ch, unsubscribe := hub.Subscribe(userID)
	unsubscribe()

	id := uuid.New()
	hub.Publish(Event{Type: EventInsert, UserID: userID, InvoiceID: id.String(), Invoice: &entities.Invoice{ID: id}})

	if _, open := <-ch; open {
		t.Error("channel should be closed after unsubscribe")
	}
}
