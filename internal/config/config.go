package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"WEBSITE_PORT" envDefault:"4002"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Cache-Control max-age for the landing page and for /static assets
	PageCacheMaxAge   time.Duration `env:"PAGE_CACHE_MAX_AGE" envDefault:"5m"`
	StaticCacheMaxAge time.Duration `env:"STATIC_CACHE_MAX_AGE" envDefault:"24h"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	// TrustProxyHeaders takes the client address from X-Forwarded-For /
	// X-Real-IP. Only enable behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	RateLimit RateLimitConfig
	Otel      OtelConfig
}

// RateLimitConfig holds per-client request limiting settings
type RateLimitConfig struct {
	// RPS is the sustained requests per second per client. Zero disables limiting.
	RPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`
	// SweepInterval is how often idle client limiters are evicted
	SweepInterval time.Duration `env:"RATE_LIMIT_SWEEP" envDefault:"5m"`
	// MaxClients caps the tracked clients; the least recently seen is evicted
	MaxClients int `env:"RATE_LIMIT_MAX_CLIENTS" envDefault:"10000"`
}

// Enabled returns true when requests should be limited
func (r RateLimitConfig) Enabled() bool {
	return r.RPS > 0
}

// Addr returns the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerAddress, strconv.Itoa(c.ServerPort))
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("WEBSITE_PORT %d out of range 1-65535", c.ServerPort))
	}
	if c.RateLimit.RPS < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", c.RateLimit.RPS))
	}
	if c.RateLimit.Enabled() && c.RateLimit.Burst < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when limiting is enabled, got %d", c.RateLimit.Burst))
	}
	if c.RateLimit.Enabled() && c.RateLimit.MaxClients < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_MAX_CLIENTS must be at least 1 when limiting is enabled, got %d", c.RateLimit.MaxClients))
	}
	if c.RateLimit.Enabled() && c.RateLimit.SweepInterval <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_SWEEP must be positive when limiting is enabled"))
	}
	if c.Otel.SamplingRate < 0 || c.Otel.SamplingRate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLING_RATE must be within 0-1, got %v", c.Otel.SamplingRate))
	}
	return errors.Join(errs...)
}

// Load parses configuration from environment variables without logging
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.String("addr", cfg.Addr()),
		slog.Bool("metrics", cfg.MetricsEnabled),
		slog.Bool("rate_limit", cfg.RateLimit.Enabled()),
		slog.Bool("trust_proxy_headers", cfg.TrustProxyHeaders),
		slog.Bool("tracing", cfg.Otel.Enabled()),
	)

	return cfg, nil
}
