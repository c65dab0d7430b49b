package config

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	Env           string `env:"APP_ENV" default:"dev"`
	StoreDriver   string `env:"STORE_DRIVER" default:"file"`
	StorePath     string `env:"STORE_PATH" default:"./data"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CatalogEnrich bool   `env:"CATALOG_ENRICH" default:"false"`
}
