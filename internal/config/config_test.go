package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"WEBSITE_PORT", "SERVER_ADDRESS", "ENVIRONMENT", "PAGE_CACHE_MAX_AGE",
		"STATIC_CACHE_MAX_AGE", "METRICS_ENABLED", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"RATE_LIMIT_SWEEP", "SHUTDOWN_TIMEOUT", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_SERVICE_NAME", "OTEL_SAMPLING_RATE", "TRUST_PROXY_HEADERS", "RATE_LIMIT_MAX_CLIENTS",
	} {
		unsetEnv(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4002, cfg.ServerPort)
	assert.Equal(t, "0.0.0.0", cfg.ServerAddress)
	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, 5*time.Minute, cfg.PageCacheMaxAge)
	assert.Equal(t, 24*time.Hour, cfg.StaticCacheMaxAge)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 20.0, cfg.RateLimit.RPS)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.SweepInterval)
	assert.Equal(t, 10000, cfg.RateLimit.MaxClients)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.False(t, cfg.Otel.Enabled())
	assert.Equal(t, "frix-landing", cfg.Otel.ServiceName)
	assert.Equal(t, 1.0, cfg.Otel.SamplingRate)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("WEBSITE_PORT", "8080")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TRUST_PROXY_HEADERS", "true")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RPS", "0")
	t.Setenv("PAGE_CACHE_MAX_AGE", "1m")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.TrustProxyHeaders)
	assert.False(t, cfg.MetricsEnabled)
	assert.False(t, cfg.RateLimit.Enabled())
	assert.Equal(t, time.Minute, cfg.PageCacheMaxAge)
	assert.True(t, cfg.Otel.Enabled())
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("WEBSITE_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("WEBSITE_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEBSITE_PORT")
}

func TestConfig_Addr(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"all interfaces", Config{ServerAddress: "0.0.0.0", ServerPort: 4002}, "0.0.0.0:4002"},
		{"empty address", Config{ServerPort: 80}, ":80"},
		{"ipv6", Config{ServerAddress: "::1", ServerPort: 4002}, "[::1]:4002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Addr())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			ServerPort: 4002,
			RateLimit:  RateLimitConfig{RPS: 10, Burst: 20, SweepInterval: time.Minute, MaxClients: 100},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.ServerPort = 0 }, "WEBSITE_PORT"},
		{"negative rps", func(c *Config) { c.RateLimit.RPS = -1 }, "RATE_LIMIT_RPS"},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, "RATE_LIMIT_BURST"},
		{"zero max clients", func(c *Config) { c.RateLimit.MaxClients = 0 }, "RATE_LIMIT_MAX_CLIENTS"},
		{"zero sweep", func(c *Config) { c.RateLimit.SweepInterval = 0 }, "RATE_LIMIT_SWEEP"},
		{"sampling above one", func(c *Config) { c.Otel.SamplingRate = 1.5 }, "OTEL_SAMPLING_RATE"},
		{"disabled limiter ignores burst", func(c *Config) {
			c.RateLimit.RPS = 0
			c.RateLimit.Burst = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewConfig(t *testing.T) {
	unsetEnv(t, "WEBSITE_PORT")

	cfg, err := NewConfig(slog.Default())
	require.NoError(t, err)
	assert.Equal(t, 4002, cfg.ServerPort)
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	orig, ok := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if ok {
			os.Setenv(key, orig)
		} else {
			os.Unsetenv(key)
		}
	})
}
