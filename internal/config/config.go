package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	CacheDriverNone   = "none"
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

type Config struct {
	App     App
	HTTP    HTTP
	Probe   Probe
	Metrics Metrics
	Log     Log
	Cache   Cache
	Redis   Redis
}

type App struct {
	Name    string `env:"APP_NAME"    envDefault:"valuation-service"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type HTTP struct {
	ListenAddress     string        `env:"HTTP_LISTEN_ADDRESS"      envDefault:":8083"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT"    envDefault:"10s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	AllowedOrigins    []string      `env:"HTTP_ALLOWED_ORIGINS"     envDefault:"http://localhost:3000,http://localhost:3001" envSeparator:","` //nolint:lll
	// 0 disables the limit.
	MaxBatchSize   int `env:"HTTP_MAX_BATCH_SIZE"    envDefault:"1000"`
	LogFieldMaxLen int `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"4096"`
}

type Probe struct {
	ListenAddress string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8084"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
}

type Log struct {
	Level  slog.Level `env:"LOG_LEVEL"  envDefault:"info"`
	Format string     `env:"LOG_FORMAT" envDefault:"tint"`
}

type Cache struct {
	Driver          string        `env:"CACHE_DRIVER"           envDefault:"memory"`
	TTL             time.Duration `env:"CACHE_TTL"              envDefault:"10m"`
	CleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" envDefault:"1m"`
}

type Redis struct {
	Address            string `env:"REDIS_ADDRESS"        envDefault:"localhost:6379"`
	Username           string `env:"REDIS_USERNAME"`
	Password           string `env:"REDIS_PASSWORD"`
	DatabaseNumber     int    `env:"REDIS_DB"             envDefault:"0"`
	PoolSize           int    `env:"REDIS_POOL_SIZE"      envDefault:"10"`
	MinIdleConnections int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	MaxIdleConnections int    `env:"REDIS_MAX_IDLE_CONNS" envDefault:"5"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	return Parse()
}

func Parse() (Config, error) {
	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Cache.validate(); err != nil {
		return Config{}, fmt.Errorf("cache: %w", err)
	}

	if config.HTTP.MaxBatchSize < 0 {
		return Config{}, fmt.Errorf("HTTP_MAX_BATCH_SIZE must not be negative, got %d", config.HTTP.MaxBatchSize)
	}

	return config, nil
}

func (c Cache) validate() error {
	switch c.Driver {
	case CacheDriverNone, CacheDriverMemory, CacheDriverRedis:
		return nil
	default:
		return fmt.Errorf("unknown CACHE_DRIVER %q", c.Driver)
	}
}
