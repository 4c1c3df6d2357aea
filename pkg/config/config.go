package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable the service reads.
const EnvPrefix = "AQUATRACK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// KV backend selectors.
const (
	KVBackendGorm  = "gorm"
	KVBackendRedis = "redis"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
	DB    DBConfig
	Redis RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AQUATRACK_APP_ENV" default:"dev"`
	Port         string `envconfig:"AQUATRACK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"AQUATRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AQUATRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig tunes the in-memory store and its persistence lifecycle.
type StoreConfig struct {
	// Version is compared against the persisted app_version marker at boot.
	// A mismatch wipes every collection back to defaults once.
	Version           string `envconfig:"AQUATRACK_STORE_VERSION" default:"2.3.0"`
	KVBackend         string `envconfig:"AQUATRACK_KV_BACKEND" default:"gorm"`
	LowStockThreshold int    `envconfig:"AQUATRACK_LOW_STOCK_THRESHOLD" default:"20"`
}

func (s StoreConfig) validate() error {
	switch s.KVBackend {
	case KVBackendGorm, KVBackendRedis:
	default:
		return fmt.Errorf("unknown kv backend %q", s.KVBackend)
	}
	if s.Version == "" {
		return fmt.Errorf("store version marker must not be empty")
	}
	if s.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold must not be negative")
	}
	return nil
}

type DBConfig struct {
	DSN        string `envconfig:"AQUATRACK_DB_DSN"`
	UseSQLite  bool   `envconfig:"AQUATRACK_USE_SQLITE" default:"false"`
	SQLitePath string `envconfig:"AQUATRACK_SQLITE_PATH" default:"aquatrack.db"`

	MaxOpenConns    int           `envconfig:"AQUATRACK_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"AQUATRACK_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"AQUATRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AQUATRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AQUATRACK_REDIS_URL"`
	Address      string        `envconfig:"AQUATRACK_REDIS_ADDR"`
	Password     string        `envconfig:"AQUATRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"AQUATRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AQUATRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AQUATRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AQUATRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AQUATRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AQUATRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}
