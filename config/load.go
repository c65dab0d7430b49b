package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func Load() App {
	// Optional .env for local runs; real deployments set the environment.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env")
	}

	cfg := App{
		Port:          getenv("APP_PORT", "8080"),
		Env:           getenv("APP_ENV", "dev"),
		StoreDriver:   getenv("STORE_DRIVER", "file"),
		StorePath:     getenv("STORE_PATH", "./data"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CatalogEnrich: os.Getenv("CATALOG_ENRICH") == "true",
	}
	if cfg.StoreDriver == "postgres" {
		cfg.DatabaseURL = must("DATABASE_URL")
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
