package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `env:", prefix=SERVER_"`
	CoinGecko CoinGeckoConfig `env:", prefix=COINGECKO_"`
	Cache     CacheConfig     `env:", prefix=CACHE_"`
	Redis     RedisConfig     `env:", prefix=REDIS_"`
	Security  SecurityConfig  `env:", prefix=SECURITY_"`
	Logging   LoggingConfig   `env:", prefix=LOG_"`
	Protocol  ProtocolConfig  `env:", prefix=PROTOCOL_"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `env:"HOST, default=0.0.0.0"`
	Port         int           `env:"PORT, default=8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT, default=120s"`
}

// CoinGeckoConfig holds upstream price-index configuration
type CoinGeckoConfig struct {
	BaseURL        string        `env:"BASE_URL, default=https://api.coingecko.com/api/v3"`
	CoinID         string        `env:"COIN_ID, default=giza"`
	Currency       string        `env:"CURRENCY, default=usd"`
	APIKey         string        `env:"API_KEY"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=10s"`
	HistoryDays    int           `env:"HISTORY_DAYS, default=30"`
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	Backend string        `env:"BACKEND, default=memory"` // memory or redis
	TTL     time.Duration `env:"TTL, default=5m"`
}

// RedisConfig holds Redis configuration (used when CACHE_BACKEND=redis)
type RedisConfig struct {
	Host         string        `env:"HOST, default=localhost"`
	Port         int           `env:"PORT, default=6379"`
	Password     string        `env:"PASSWORD"`
	DB           int           `env:"DB, default=0"`
	PoolSize     int           `env:"POOL_SIZE, default=10"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT, default=5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=3s"`
}

// SecurityConfig holds CORS configuration for the dashboard origin
type SecurityConfig struct {
	CORSEnabled bool     `env:"CORS_ENABLED, default=true"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
	CORSMethods []string `env:"CORS_METHODS, default=GET,OPTIONS"`
	CORSHeaders []string `env:"CORS_HEADERS, default=*"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `env:"LEVEL, default=info"`
	Format string `env:"FORMAT, default=json"`
	Output string `env:"OUTPUT, default=stdout"`
}

// ProtocolConfig holds protocol-stat knobs that are not derivable from
// market data
type ProtocolConfig struct {
	AssetsUnderAgents float64 `env:"ASSETS_UNDER_AGENTS, default=11500000"`
}

// LoadDotEnv loads environment variables from a .env file if one exists.
// Missing files are fine; system env vars always take precedence.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("no .env file loaded: %w", err)
	}
	return nil
}

// Load loads configuration from environment variables using go-envconfig
func Load() (*Config, error) {
	ctx := context.Background()
	var cfg Config

	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.CoinGecko.BaseURL == "" {
		return fmt.Errorf("CoinGecko base URL is required")
	}

	if c.CoinGecko.CoinID == "" {
		return fmt.Errorf("coin ID is required")
	}

	if c.CoinGecko.HistoryDays <= 0 {
		return fmt.Errorf("invalid history window: %d days", c.CoinGecko.HistoryDays)
	}

	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("unknown cache backend: %s", c.Cache.Backend)
	}

	if c.Cache.Backend == "redis" && c.Redis.Host == "" {
		return fmt.Errorf("Redis host is required for the redis cache backend")
	}

	return nil
}

// GetRedisAddr returns Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns server address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
