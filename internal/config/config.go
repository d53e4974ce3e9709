package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	ChargeSecret       string
	CORSAllowedOrigins []string

	// Delivery charge defaults, used when a widget instance carries no
	// signed override and as the fallback when payload verification fails.
	DeliveryDhaka   int64
	DeliveryOutside int64

	// Widget UX toggles. Each is independent: a deployment may enable any
	// subset of quantity selector, WhatsApp contact, and success redirect.
	EnableQuantity  bool
	WhatsAppNumber  string
	SuccessRedirect bool
	StoreBaseURL    string

	NonceTTL         time.Duration
	CatalogCacheTTL  time.Duration
	IdempotencyTTL   time.Duration
	OrderRateWindow  time.Duration
	OrderRateMax     int
	MaxRequestBytes  int64
	SecurityHeaders  bool
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		ChargeSecret:       k.String("CHARGE_SECRET"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		DeliveryDhaka:      parseInt64(k.String("DELIVERY_CHARGE_DHAKA"), 70),
		DeliveryOutside:    parseInt64(k.String("DELIVERY_CHARGE_OUTSIDE"), 130),
		EnableQuantity:     parseBoolDefault(k.String("WIDGET_ENABLE_QUANTITY"), true),
		WhatsAppNumber:     strings.TrimSpace(k.String("WIDGET_WHATSAPP_NUMBER")),
		SuccessRedirect:    parseBoolDefault(k.String("WIDGET_SUCCESS_REDIRECT"), false),
		StoreBaseURL:       strings.TrimRight(strings.TrimSpace(k.String("STORE_BASE_URL")), "/"),
		NonceTTL:           parseDuration(k.String("NONCE_TTL"), "12h"),
		CatalogCacheTTL:    parseDuration(k.String("CATALOG_CACHE_TTL"), "5m"),
		IdempotencyTTL:     parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
		OrderRateWindow:    parseDuration(k.String("ORDER_RATE_WINDOW"), "1m"),
		OrderRateMax:       int(parseInt64(k.String("ORDER_RATE_MAX"), 10)),
		MaxRequestBytes:    parseInt64(k.String("MAX_REQUEST_BYTES"), 64<<10),
		SecurityHeaders:    parseBoolDefault(k.String("SECURITY_HEADERS"), true),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.ChargeSecret == "" {
		return nil, errors.New("CHARGE_SECRET is required")
	}
	if cfg.DeliveryDhaka < 0 || cfg.DeliveryOutside < 0 {
		return nil, errors.New("delivery charges must be non-negative")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt64(value string, fallback int64) int64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseBoolDefault(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
