package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageJSON   = "json"
	StorageSqlite = "sqlite"
	StorageRedis  = "redis"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"error"`
	Storage  Storage
	Redis    Redis
	Lending  Lending
}

type Storage struct {
	Driver     string `env:"STORAGE_DRIVER" envDefault:"json"`
	FilePath   string `env:"STORAGE_FILE_PATH" envDefault:"books_data.json"`
	SqlitePath string `env:"SQLITE_PATH" envDefault:"data/catalog.db"`
}

type Redis struct {
	Host       string `env:"REDIS_HOST" envDefault:"localhost"`
	Port       int    `env:"REDIS_PORT" envDefault:"6379"`
	Password   string `env:"REDIS_PASSWORD" envDefault:""`
	DB         int    `env:"REDIS_DB" envDefault:"0"`
	CatalogKey string `env:"REDIS_CATALOG_KEY" envDefault:"book_catalog:data"`
}

type Lending struct {
	LoanDays           int    `env:"LOAN_DAYS" envDefault:"14"`
	FinePerDay         int    `env:"FINE_PER_DAY" envDefault:"5"`
	FineCurrency       string `env:"FINE_CURRENCY" envDefault:"Rs."`
	RejectDoubleBorrow bool   `env:"REJECT_DOUBLE_BORROW" envDefault:"true"`
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	switch cfg.Storage.Driver {
	case StorageJSON, StorageSqlite, StorageRedis:
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	return cfg
}
