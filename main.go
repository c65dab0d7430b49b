// Package main BiblioTech API.
//
// @title           BiblioTech Storefront API
// @version         1.0
// @description     Digital bookstore: catalog browsing, cart with purchase and rental modes, checkout, rental lifecycle.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/feregc/BiblioTech/app/echoServer"
	bookctrl "github.com/feregc/BiblioTech/app/echoServer/controller/book"
	cartctrl "github.com/feregc/BiblioTech/app/echoServer/controller/cart"
	checkoutctrl "github.com/feregc/BiblioTech/app/echoServer/controller/checkout"
	rentalctrl "github.com/feregc/BiblioTech/app/echoServer/controller/rental"
	"github.com/feregc/BiblioTech/app/echoServer/validation"
	"github.com/feregc/BiblioTech/config"
	"github.com/feregc/BiblioTech/repository/catalog"
	"github.com/feregc/BiblioTech/repository/store"
	booksvc "github.com/feregc/BiblioTech/service/book"
	cartsvc "github.com/feregc/BiblioTech/service/cart"
	checkoutsvc "github.com/feregc/BiblioTech/service/checkout"
	rentalsvc "github.com/feregc/BiblioTech/service/rental"
	"github.com/feregc/BiblioTech/util/database"
	"github.com/feregc/BiblioTech/util/events"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// persistence
	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("store init failed", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}

	// catalog
	cat := catalog.NewStatic()
	if cfg.CatalogEnrich {
		if err := cat.Enrich(ctx, catalog.NewOpenLibrary()); err != nil {
			log.Warn("catalog enrichment incomplete", "err", err)
		}
	}

	// events
	pub := events.LogPublisher{Log: log}

	// services
	bs := booksvc.New(cat)
	cs, err := cartsvc.New(ctx, st, cat, pub, log)
	if err != nil {
		log.Error("cart init failed", "err", err)
		os.Exit(1)
	}
	chs := checkoutsvc.New(st, cs, cat, pub, log)
	rs := rentalsvc.New(st, pub, log)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	cartC := &cartctrl.Controller{Svc: cs, V: v, Log: log}
	checkoutC := &checkoutctrl.Controller{Svc: chs, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Book:     bookC,
		Cart:     cartC,
		Checkout: checkoutC,
		Rental:   rentalC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "store_driver", cfg.StoreDriver)

	e.Logger.Fatal(e.Start(":" + port))
}

func openStore(ctx context.Context, cfg config.App) (store.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		return store.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	case "postgres":
		pool, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return store.NewFile(cfg.StorePath)
	}
}
