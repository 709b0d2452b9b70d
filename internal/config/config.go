// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Config struct {
	Port    string
	AppEnv  string
	WebHost string

	StoreDriver       string
	DatabaseURL       string
	DBMaxConns        int
	DBMinConns        int
	DBMaxConnLifetime time.Duration
	DBMaxConnIdleTime time.Duration

	SessionDriver string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionSecret string
	SessionTTL    time.Duration
	SecureCookie  bool
	RootDomain    string

	PublicBaseURL string

	KafkaBrokers []string
	KafkaTopic   string

	MetricsUser string
	MetricsPass string

	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads a .env file if present, then the environment. The returned
// bool reports whether a .env file was loaded.
func Load() (Config, bool) {
	loadedDotEnv := godotenv.Load() == nil

	port := getEnv("PORT", "3333")
	cfg := Config{
		Port:    port,
		AppEnv:  getEnv("APP_ENV", "production"),
		WebHost: getEnv("WEB_HOSTNAME", "localhost:"+port),

		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBMaxConns:        getIntEnv("DB_MAX_CONNS", 25),
		DBMinConns:        getIntEnv("DB_MIN_CONNS", 5),
		DBMaxConnLifetime: getDurationEnv("DB_MAX_CONN_LIFETIME", time.Hour),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),

		SessionDriver: strings.ToLower(getEnv("SESSION_DRIVER", DriverRedis)),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getDurationEnv("SESSION_TTL", 30*24*time.Hour),
		SecureCookie:  getBoolEnv("SECURE_COOKIE", false),
		RootDomain:    getEnv("ROOT_DOMAIN", ""),

		KafkaBrokers: splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "challenge-events"),

		MetricsUser: getEnv("METRICS_USER", ""),
		MetricsPass: getEnv("METRICS_PASS", ""),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 30),

		ReadTimeout:     getDurationEnv("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDurationEnv("HTTP_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:     getDurationEnv("HTTP_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
	cfg.PublicBaseURL = strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://"+cfg.WebHost), "/")
	cfg.CORSOrigins = splitAndTrim(getEnv("CORS_ORIGINS", originOf(cfg.PublicBaseURL)))
	return cfg, loadedDotEnv
}

// originOf reduces a base URL to scheme://host[:port].
func originOf(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return base
	}
	return u.Scheme + "://" + u.Host
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Validate reports every missing or contradictory setting at once.
func (c Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_DRIVER=postgres"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.SessionDriver {
	case DriverRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when SESSION_DRIVER=redis"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_DRIVER %q", c.SessionDriver))
	}

	if len(c.SessionSecret) < 32 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 32 bytes"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	// Session cookies travel on cross-origin requests, and browsers refuse a
	// wildcard origin on credentialed responses.
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			errs = append(errs, errors.New("CORS_ORIGINS must list explicit origins, not *"))
			break
		}
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
