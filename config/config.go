package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/united-manufacturing-hub/umh-utils/env"
)

type Config struct {
	AppName    string
	LogLevel   string
	PrettyLogs bool

	// Site base URL used to resolve node addresses
	BaseURL string
	// Mapper configuration file; empty uses the built-in table
	MapperConfigPath string
	// Node fixture file loaded into the in-memory store
	FixturePath string
	// Directory holding media assets
	MediaRoot string
	// Media cache entries
	MediaCacheSize int

	// Database DSN; empty uses the in-memory fixture store
	DatabaseURL string
	// Max Open Conns
	DatabaseMaxOpenConns int
	// Max Idle Conns
	DatabaseMaxIdleConns int
	// Conn Max Lifetime
	DatabaseConnMaxLifetime time.Duration

	// Redis address for the shared plan cache; empty keeps plans in memory
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// Plan cache TTL
	PlanCacheTTL time.Duration
	// Local plan cache entries
	PlanCacheMaxSize int

	MetricsEnabled bool
	TracingEnabled bool
}

// Load reads the configuration from the environment, after applying an
// optional .env file from the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv()
}

// FromEnv reads the configuration from the environment only.
func FromEnv() (*Config, error) {
	var (
		cfg Config
		err error
	)
	if cfg.AppName, err = env.GetAsString("APP_NAME", false, "fern"); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = env.GetAsString("LOG_LEVEL", false, "info"); err != nil {
		return nil, err
	}
	if cfg.PrettyLogs, err = env.GetAsBool("PRETTY_LOGS", false, false); err != nil {
		return nil, err
	}
	if cfg.BaseURL, err = env.GetAsString("BASE_URL", false, "http://localhost"); err != nil {
		return nil, err
	}
	if cfg.MapperConfigPath, err = env.GetAsString("MAPPER_CONFIG_PATH", false, ""); err != nil {
		return nil, err
	}
	if cfg.FixturePath, err = env.GetAsString("FIXTURE_PATH", false, ""); err != nil {
		return nil, err
	}
	if cfg.MediaRoot, err = env.GetAsString("MEDIA_ROOT", false, ""); err != nil {
		return nil, err
	}
	if cfg.MediaCacheSize, err = env.GetAsInt("MEDIA_CACHE_SIZE", false, 256); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL, err = env.GetAsString("DB_URL", false, ""); err != nil {
		return nil, err
	}
	if cfg.DatabaseMaxOpenConns, err = env.GetAsInt("DB_MAX_OPEN_CONNS", false, 25); err != nil {
		return nil, err
	}
	if cfg.DatabaseMaxIdleConns, err = env.GetAsInt("DB_MAX_IDLE_CONNS", false, 10); err != nil {
		return nil, err
	}
	lifetime, err := env.GetAsInt("DB_CONN_MAX_LIFETIME_SECONDS", false, 10)
	if err != nil {
		return nil, err
	}
	cfg.DatabaseConnMaxLifetime = time.Duration(lifetime) * time.Second

	if cfg.RedisAddr, err = env.GetAsString("REDIS_ADDR", false, ""); err != nil {
		return nil, err
	}
	if cfg.RedisPassword, err = env.GetAsString("REDIS_PASSWORD", false, ""); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = env.GetAsInt("REDIS_DB", false, 0); err != nil {
		return nil, err
	}
	ttl, err := env.GetAsInt("PLAN_CACHE_TTL_SECONDS", false, 3600)
	if err != nil {
		return nil, err
	}
	cfg.PlanCacheTTL = time.Duration(ttl) * time.Second
	if cfg.PlanCacheMaxSize, err = env.GetAsInt("PLAN_CACHE_MAX_SIZE", false, 1000); err != nil {
		return nil, err
	}

	if cfg.MetricsEnabled, err = env.GetAsBool("METRICS_ENABLED", false, true); err != nil {
		return nil, err
	}
	if cfg.TracingEnabled, err = env.GetAsBool("TRACING_ENABLED", false, false); err != nil {
		return nil, err
	}
	return &cfg, nil
}
