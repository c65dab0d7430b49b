package pricing

import (
	"testing"

	"github.com/feregc/BiblioTech/model"
)

func TestPriceDerivation(t *testing.T) {
	book := model.Book{Price: 20.00}

	if got := PurchasePrice(book); got != 20.00 {
		t.Fatalf("PurchasePrice = %v; want 20.00", got)
	}
	if got := DailyRate(book.Price); got != 2.00 {
		t.Fatalf("DailyRate = %v; want 2.00", got)
	}
	if got := RentalPrice(book.Price, 7); got != 14.00 {
		t.Fatalf("RentalPrice(7) = %v; want 14.00", got)
	}
}

func TestLineTotal(t *testing.T) {
	cases := []struct {
		name  string
		entry model.CartEntry
		price float64
		want  float64
	}{
		{"purchase single", model.CartEntry{Mode: model.ModePurchase, Quantity: 1}, 20, 20},
		{"purchase stacked", model.CartEntry{Mode: model.ModePurchase, Quantity: 3}, 20, 60},
		{"rental default week", model.CartEntry{Mode: model.ModeRental, Quantity: 1, RentDays: 7}, 20, 14},
		{"rental off-menu days", model.CartEntry{Mode: model.ModeRental, Quantity: 2, RentDays: 10}, 20, 40},
	}
	for _, tc := range cases {
		if got := LineTotal(tc.entry, tc.price); got != tc.want {
			t.Fatalf("%s: LineTotal = %v; want %v", tc.name, got, tc.want)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(14.006); got != 14.01 {
		t.Fatalf("Round2(14.006) = %v; want 14.01", got)
	}
	if got := Round2(14.004); got != 14.0 {
		t.Fatalf("Round2(14.004) = %v; want 14.0", got)
	}
}
