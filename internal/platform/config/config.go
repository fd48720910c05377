// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendSQLite    = "sqlite"
)

const defaultWebhookTimeout = 10 * time.Second

// ErrInvalid is wrapped by every configuration validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the fully resolved process configuration.
type Config struct {
	Port string

	FirebaseProjectID            string
	GoogleApplicationCredentials string

	StoreBackend string
	DatabaseURL  string

	// AllowedOrigins limits CORS; empty allows every origin.
	AllowedOrigins []string

	CacheWebhook WebhookConfig
}

// WebhookConfig configures the public-page cache invalidation webhook.
// An empty URL leaves invalidation unconfigured; edits then report a
// delayed-propagation warning instead of calling out.
type WebhookConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:                         valueOr(getenv("PORT"), "8080"),
		FirebaseProjectID:            firstNonEmpty(getenv("FIREBASE_PROJECT_ID"), getenv("GOOGLE_CLOUD_PROJECT")),
		GoogleApplicationCredentials: strings.TrimSpace(getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		StoreBackend:                 strings.ToLower(valueOr(getenv("STORE_BACKEND"), BackendFirestore)),
		DatabaseURL:                  strings.TrimSpace(getenv("DATABASE_URL")),
		AllowedOrigins:               splitList(getenv("CORS_ALLOWED_ORIGINS")),
		CacheWebhook: WebhookConfig{
			URL:     strings.TrimSpace(getenv("CACHE_WEBHOOK_URL")),
			Token:   strings.TrimSpace(getenv("CACHE_WEBHOOK_TOKEN")),
			Timeout: defaultWebhookTimeout,
		},
	}

	if raw := strings.TrimSpace(getenv("CACHE_WEBHOOK_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%w: CACHE_WEBHOOK_TIMEOUT %q", ErrInvalid, raw)
		}
		cfg.CacheWebhook.Timeout = d
	}

	switch cfg.StoreBackend {
	case BackendFirestore:
	case BackendPostgres, BackendSQLite:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("%w: DATABASE_URL is required for %s backend", ErrInvalid, cfg.StoreBackend)
		}
	default:
		return Config{}, fmt.Errorf("%w: unknown STORE_BACKEND %q", ErrInvalid, cfg.StoreBackend)
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
