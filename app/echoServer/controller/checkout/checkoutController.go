package checkout

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/feregc/BiblioTech/model"
	"github.com/feregc/BiblioTech/pricing"
	checkoutsvc "github.com/feregc/BiblioTech/service/checkout"
)

type Controller struct {
	Svc checkoutsvc.Service
	Log *slog.Logger
}

type purchaseResp struct {
	ID          string    `json:"id"`
	BookID      int64     `json:"book_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	PurchasedAt time.Time `json:"purchased_at"`
}

type rentalResp struct {
	ID       string    `json:"id"`
	BookID   int64     `json:"book_id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	RentDays int       `json:"rent_days"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
}

// POST /v1/checkout
func (h *Controller) Checkout(c echo.Context) error {
	res, err := h.Svc.Checkout(c.Request().Context(), time.Now().UTC())
	if err != nil {
		switch checkoutsvc.Code(err) {
		case checkoutsvc.ErrBookNotFound:
			return c.JSON(http.StatusConflict, echo.Map{"message": "a cart item is no longer in the catalog"})
		case checkoutsvc.ErrPersistence:
			h.Log.Error("checkout persist", "err", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "checkout not saved, retry"})
		default:
			h.Log.Error("checkout", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"purchase_count": len(res.Purchases),
		"rental_count":   len(res.Rentals),
		"purchases":      toPurchases(res.Purchases),
		"rentals":        toRentals(res.Rentals),
	})
}

func toPurchases(recs []model.PurchaseRecord) []purchaseResp {
	out := make([]purchaseResp, 0, len(recs))
	for _, r := range recs {
		out = append(out, purchaseResp{
			ID:          r.ID,
			BookID:      r.BookID,
			Title:       r.Title,
			Author:      r.Author,
			Price:       pricing.Round2(r.Price),
			Quantity:    r.Quantity,
			PurchasedAt: r.PurchasedAt,
		})
	}
	return out
}

func toRentals(recs []model.RentalRecord) []rentalResp {
	out := make([]rentalResp, 0, len(recs))
	for _, r := range recs {
		out = append(out, rentalResp{
			ID:       r.ID,
			BookID:   r.BookID,
			Title:    r.Title,
			Author:   r.Author,
			Price:    pricing.Round2(r.Price),
			Quantity: r.Quantity,
			RentDays: r.RentDays,
			StartAt:  r.StartAt,
			EndAt:    r.EndAt,
		})
	}
	return out
}
