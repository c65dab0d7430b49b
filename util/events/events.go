// util/events/events.go
//
// Domain events emitted by the cart, checkout and rental services. Delivery
// is fire-and-forget: publishers never block a mutation and subscribers get
// no reply channel. The default sink writes them to the structured log; a
// UI notification layer can swap in its own Publisher.
package events

import (
	"log/slog"
	"time"
)

type Event interface {
	EventName() string
}

type ItemAdded struct {
	BookID int64  `json:"book_id"`
	Mode   string `json:"mode"`
}

func (ItemAdded) EventName() string { return "item_added" }

type ItemRemoved struct {
	BookID int64  `json:"book_id"`
	Mode   string `json:"mode"`
}

func (ItemRemoved) EventName() string { return "item_removed" }

type CheckoutCompleted struct {
	PurchaseCount int `json:"purchase_count"`
	RentalCount   int `json:"rental_count"`
}

func (CheckoutCompleted) EventName() string { return "checkout_completed" }

type RentalExtended struct {
	RentalID string    `json:"rental_id"`
	NewEnd   time.Time `json:"new_end"`
	Cost     float64   `json:"cost"`
}

func (RentalExtended) EventName() string { return "rental_extended" }

type Publisher interface {
	Publish(e Event)
}

// LogPublisher is the default sink.
type LogPublisher struct {
	Log *slog.Logger
}

func (p LogPublisher) Publish(e Event) {
	if p.Log == nil {
		return
	}
	p.Log.Info("domain event", "event", e.EventName(), "payload", e)
}

// Discard swallows events. Handy in tests that don't assert on them.
type Discard struct{}

func (Discard) Publish(Event) {}
