// model/history.go
package model

import "time"

// PurchaseRecord is an immutable snapshot of a purchased cart line. One
// record covers the whole line; quantity is not expanded into copies.
type PurchaseRecord struct {
	ID          string    `json:"id"`
	CheckoutID  string    `json:"checkout_id"`
	BookID      int64     `json:"book_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// RentalRecord is the snapshot of a rented cart line. EndAt, RentDays and
// TotalExtensionCost are the only mutable fields, and only through Extend.
// There is no stored status: active vs expired is derived from EndAt against
// the clock on every read.
type RentalRecord struct {
	ID                 string    `json:"id"`
	CheckoutID         string    `json:"checkout_id"`
	BookID             int64     `json:"book_id"`
	Title              string    `json:"title"`
	Author             string    `json:"author"`
	Price              float64   `json:"price"`
	Quantity           int       `json:"quantity"`
	RentDays           int       `json:"rent_days"`
	StartAt            time.Time `json:"start_at"`
	EndAt              time.Time `json:"end_at"`
	TotalExtensionCost float64   `json:"total_extension_cost,omitempty"`
}

// Expired reports whether the rental has lapsed at the given instant.
// The boundary is strict: a rental ending exactly now is already expired.
func (r RentalRecord) Expired(now time.Time) bool {
	return !r.EndAt.After(now)
}
