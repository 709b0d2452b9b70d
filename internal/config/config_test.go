package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SESSION_DRIVER", "")
	t.Setenv("WEB_HOSTNAME", "")
	t.Setenv("PUBLIC_BASE_URL", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, _ := Load()
	assert.Equal(t, "3333", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, DriverRedis, cfg.SessionDriver)
	assert.Equal(t, "localhost:3333", cfg.WebHost)
	assert.Equal(t, "http://localhost:3333", cfg.PublicBaseURL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3333"}, cfg.CORSOrigins)
}

func TestCORSOriginsDefaultToPublicBaseURL(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("PUBLIC_BASE_URL", "https://fit.example.com:8443/app/")

	cfg, _ := Load()
	assert.Equal(t, []string{"https://fit.example.com:8443"}, cfg.CORSOrigins)

	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	cfg, _ = Load()
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SECURE_COOKIE", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://fit.example.com/")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg, _ := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookie)
	assert.Equal(t, "https://fit.example.com", cfg.PublicBaseURL)
	assert.Equal(t, 30, cfg.RateLimitBurst)
}

func validConfig() Config {
	return Config{
		StoreDriver:    DriverMemory,
		SessionDriver:  DriverMemory,
		SessionSecret:  secret,
		SessionTTL:     time.Hour,
		RateLimitRPS:   5,
		RateLimitBurst: 30,
		CORSOrigins:    []string{"http://localhost:3333"},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"postgres without url", func(c *Config) { c.StoreDriver = DriverPostgres }, "DATABASE_URL"},
		{"redis without addr", func(c *Config) { c.SessionDriver = DriverRedis }, "REDIS_ADDR"},
		{"unknown store", func(c *Config) { c.StoreDriver = "mongo" }, "STORE_DRIVER"},
		{"short secret", func(c *Config) { c.SessionSecret = "short" }, "SESSION_SECRET"},
		{"zero rate", func(c *Config) { c.RateLimitRPS = 0 }, "RATE_LIMIT_RPS"},
		{"wildcard origin", func(c *Config) { c.CORSOrigins = []string{"https://a.example.com", "*"} }, "CORS_ORIGINS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
