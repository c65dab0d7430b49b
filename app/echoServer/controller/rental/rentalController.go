package rental

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/feregc/BiblioTech/pricing"
	rentalsvc "github.com/feregc/BiblioTech/service/rental"
)

type Controller struct {
	Svc rentalsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/rentals?at=RFC3339
//
// The optional at parameter classifies against a caller-supplied instant
// instead of the wall clock; status is derived, so this is just a read.
func (h *Controller) List(c echo.Context) error {
	now := time.Now().UTC()
	if at := c.QueryParam("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid at timestamp"})
		}
		now = parsed
	}

	got, err := h.Svc.Classify(c.Request().Context(), now)
	if err != nil {
		h.Log.Error("rental classify", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"active":  got.Active,
		"expired": got.Expired,
	})
}

// GET /v1/rentals/expiring?days=
func (h *Controller) Expiring(c echo.Context) error {
	days := 3
	if d := c.QueryParam("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid days"})
		}
		days = parsed
	}

	rows, err := h.Svc.ExpiringSoon(c.Request().Context(), time.Now().UTC(), time.Duration(days)*24*time.Hour)
	if err != nil {
		h.Log.Error("rental expiring", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/rentals/:id/extend
func (h *Controller) Extend(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ExtendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	rec, err := h.Svc.Extend(c.Request().Context(), id, req.Days, time.Now().UTC())
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rentalsvc.ErrInvalidInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "days must be positive"})
		case rentalsvc.ErrPersistence:
			h.Log.Error("rental extend persist", "err", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "extension not saved, retry"})
		default:
			h.Log.Error("rental extend", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"rental":               rec,
		"total_extension_cost": pricing.Round2(rec.TotalExtensionCost),
	})
}

// GET /v1/purchases
func (h *Controller) Purchases(c echo.Context) error {
	rows, err := h.Svc.Purchases(c.Request().Context())
	if err != nil {
		h.Log.Error("purchase history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
