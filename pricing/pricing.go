// Package pricing holds the pure price derivations shared by the cart,
// checkout and rental services. Everything here is deterministic and
// side-effect free; rounding happens only at presentation boundaries so
// quantity and duration edits never compound rounding error.
package pricing

import (
	"math"

	"github.com/feregc/BiblioTech/model"
)

// DailyRateFactor is the rental rate: 10% of the purchase price per day.
const DailyRateFactor = 0.10

func PurchasePrice(b model.Book) float64 { return b.Price }

func DailyRate(price float64) float64 { return price * DailyRateFactor }

func RentalPrice(price float64, days int) float64 {
	return DailyRate(price) * float64(days)
}

// LineTotal prices a cart entry against the given unit price.
func LineTotal(e model.CartEntry, price float64) float64 {
	unit := price
	if e.Mode == model.ModeRental {
		unit = RentalPrice(price, e.RentDays)
	}
	return unit * float64(e.Quantity)
}

// Round2 rounds to 2 decimal places. For DTOs and display only.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
