package echoServer

import (
	"github.com/labstack/echo/v4"

	"github.com/feregc/BiblioTech/app/echoServer/controller/book"
	"github.com/feregc/BiblioTech/app/echoServer/controller/cart"
	"github.com/feregc/BiblioTech/app/echoServer/controller/checkout"
	"github.com/feregc/BiblioTech/app/echoServer/controller/rental"
)

type C struct {
	Book     *book.Controller
	Cart     *cart.Controller
	Checkout *checkout.Controller
	Rental   *rental.Controller
}

// Register wires the storefront routes. Everything is public: the product
// is a single-session storefront with no accounts.
func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1")

	// Catalog
	v1.GET("/books", c.Book.List)
	v1.GET("/books/:id", c.Book.Detail)

	// Cart
	v1.GET("/cart", c.Cart.Get)
	v1.DELETE("/cart", c.Cart.Clear)
	v1.POST("/cart/items", c.Cart.AddItem)
	v1.DELETE("/cart/items/:id", c.Cart.RemoveItem)
	v1.PATCH("/cart/items/:id/quantity", c.Cart.UpdateQuantity)
	v1.PATCH("/cart/items/:id/rent-days", c.Cart.UpdateRentDays)

	// Checkout
	v1.POST("/checkout", c.Checkout.Checkout)

	// History
	v1.GET("/rentals", c.Rental.List)
	v1.GET("/rentals/expiring", c.Rental.Expiring)
	v1.POST("/rentals/:id/extend", c.Rental.Extend)
	v1.GET("/purchases", c.Rental.Purchases)
}
