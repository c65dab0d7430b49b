package cart

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/feregc/BiblioTech/model"
	"github.com/feregc/BiblioTech/pricing"
	cartsvc "github.com/feregc/BiblioTech/service/cart"
)

type Controller struct {
	Svc cartsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/cart/items
func (h *Controller) AddItem(c echo.Context) error {
	var req AddItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	if err := h.Svc.Add(c.Request().Context(), req.BookID, req.Mode); err != nil {
		switch cartsvc.Code(err) {
		case cartsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case cartsvc.ErrInvalidPrice, cartsvc.ErrInvalidInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "book cannot be added"})
		case cartsvc.ErrPersistence:
			h.Log.Error("cart add persist", "err", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "could not save cart, retry"})
		default:
			h.Log.Error("cart add", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return h.view(c, http.StatusCreated)
}

// DELETE /v1/cart/items/:id?mode=
func (h *Controller) RemoveItem(c echo.Context) error {
	id, mode, ok := itemKey(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id or mode"})
	}
	if err := h.Svc.Remove(c.Request().Context(), id, mode); err != nil {
		if cartsvc.Code(err) == cartsvc.ErrPersistence {
			h.Log.Error("cart remove persist", "err", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "could not save cart, retry"})
		}
		h.Log.Error("cart remove", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return h.view(c, http.StatusOK)
}

// PATCH /v1/cart/items/:id/quantity
func (h *Controller) UpdateQuantity(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateQuantityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	if err := h.Svc.UpdateQuantity(c.Request().Context(), id, req.Mode, req.Quantity); err != nil {
		if cartsvc.Code(err) == cartsvc.ErrPersistence {
			h.Log.Error("cart quantity persist", "err", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "could not save cart, retry"})
		}
		h.Log.Error("cart quantity", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return h.view(c, http.StatusOK)
}

// PATCH /v1/cart/items/:id/rent-days
func (h *Controller) UpdateRentDays(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateRentDaysReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	if err := h.Svc.UpdateRentDays(c.Request().Context(), id, req.Days); err != nil {
		switch cartsvc.Code(err) {
		case cartsvc.ErrInvalidInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "days must be positive"})
		case cartsvc.ErrPersistence:
			h.Log.Error("cart rent-days persist", "err", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "could not save cart, retry"})
		default:
			h.Log.Error("cart rent-days", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return h.view(c, http.StatusOK)
}

// GET /v1/cart
func (h *Controller) Get(c echo.Context) error {
	return h.view(c, http.StatusOK)
}

// DELETE /v1/cart
func (h *Controller) Clear(c echo.Context) error {
	if err := h.Svc.Clear(c.Request().Context()); err != nil {
		if cartsvc.Code(err) == cartsvc.ErrPersistence {
			h.Log.Error("cart clear persist", "err", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "could not save cart, retry"})
		}
		h.Log.Error("cart clear", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return h.view(c, http.StatusOK)
}

func (h *Controller) view(c echo.Context, status int) error {
	total, err := h.Svc.TotalPrice(c.Request().Context())
	if err != nil {
		h.Log.Error("cart total", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	entries := h.Svc.Entries()
	items := make([]EntryResp, 0, len(entries))
	for _, e := range entries {
		items = append(items, EntryResp{
			BookID:   e.BookID,
			Mode:     e.Mode,
			Quantity: e.Quantity,
			RentDays: e.RentDays,
		})
	}
	return c.JSON(status, CartResp{
		Items:      items,
		TotalItems: h.Svc.TotalItems(),
		TotalPrice: pricing.Round2(total),
	})
}

func itemKey(c echo.Context) (int64, model.Mode, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	mode := model.Mode(c.QueryParam("mode"))
	if !mode.Valid() {
		return 0, "", false
	}
	return id, mode, true
}
