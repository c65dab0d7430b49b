// model/cart.go
package model

const DefaultRentDays = 7

type Mode string

const (
	ModePurchase Mode = "PURCHASE"
	ModeRental   Mode = "RENTAL"
)

func (m Mode) Valid() bool { return m == ModePurchase || m == ModeRental }

// CartEntry is one cart line. The pair (BookID, Mode) is the cart key: the
// same book may sit in the cart once as a purchase and once as a rental, but
// never twice under the same mode. The entry carries no price; line prices
// are always derived from the catalog's current book price and only frozen
// into a history record at checkout.
type CartEntry struct {
	BookID   int64 `json:"book_id"`
	Mode     Mode  `json:"mode"`
	Quantity int   `json:"quantity"`
	// RentDays is meaningful only when Mode is RENTAL. The UI offers
	// 7/14/30 but any positive value is accepted.
	RentDays int `json:"rent_days,omitempty"`
}
