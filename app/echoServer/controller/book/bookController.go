package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	booksvc "github.com/feregc/BiblioTech/service/book"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/books
func (h *Controller) List(c echo.Context) error {
	var q ListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid query"})
	}
	if err := h.V.Struct(q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	rows, err := h.Svc.List(c.Request().Context(), q.Filter())
	if err != nil {
		h.Log.Error("book list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	total := len(rows)
	if q.Limit > 0 {
		page := q.Page
		if page == 0 {
			page = 1
		}
		start := (page - 1) * q.Limit
		if start > total {
			start = total
		}
		end := start + q.Limit
		if end > total {
			end = total
		}
		rows = rows[start:end]
	}

	return c.JSON(http.StatusOK, echo.Map{"data": rows, "total": total})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("book detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	return c.JSON(http.StatusOK, row)
}
