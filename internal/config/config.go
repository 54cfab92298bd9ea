// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server and the alerts job.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitRPS and RateLimitBurst configure the per-client token bucket.
	// An RPS of 0 disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// RedisURL enables the shared alert ledger. Empty means in-memory.
	RedisURL string

	// AMQPURL enables publishing alerts to RabbitMQ. Empty means log only.
	AMQPURL      string
	AMQPExchange string

	// AlertThresholds are the remaining-day levels that trigger an alert.
	AlertThresholds []int

	// AlertConcurrency bounds how many users the sweep evaluates at once.
	AlertConcurrency int

	// AlertLedgerTTL is how long a sent alert is remembered.
	AlertLedgerTTL time.Duration

	// PushgatewayURL receives the alert sweep's metrics when set.
	PushgatewayURL string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that could not be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RedisURL:       os.Getenv("REDIS_URL"),
		AMQPURL:        os.Getenv("AMQP_URL"),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "stay-planner.alerts"),
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	p := parser{invalid: &invalid}
	cfg.MaxBodyBytes = p.int64("MAX_BODY_BYTES", 1<<20)
	cfg.RateLimitRPS = p.float("RATE_LIMIT_RPS", 10)
	cfg.RateLimitBurst = p.int("RATE_LIMIT_BURST", 20)
	cfg.AlertConcurrency = p.int("ALERT_CONCURRENCY", 4)
	cfg.AlertLedgerTTL = p.duration("ALERT_LEDGER_TTL", 48*time.Hour)
	cfg.AlertThresholds = p.ints("ALERT_THRESHOLDS", []int{15, 7, 3, 0})

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parser reads typed values, recording the name of every variable that is
// set but malformed.
type parser struct {
	invalid *[]string
}

func (p parser) fail(key string) {
	*p.invalid = append(*p.invalid, key)
}

func (p parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		p.fail(key)
		return fallback
	}
	return n
}

func (p parser) int64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n <= 0 {
		p.fail(key)
		return fallback
	}
	return n
}

func (p parser) float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		p.fail(key)
		return fallback
	}
	return f
}

func (p parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d <= 0 {
		p.fail(key)
		return fallback
	}
	return d
}

func (p parser) ints(key string, fallback []int) []int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []int
	for _, part := range splitCSV(v) {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			p.fail(key)
			return fallback
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		p.fail(key)
		return fallback
	}
	return out
}
