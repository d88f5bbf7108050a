package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr     = ":8080"
	defaultDatabaseURL    = "tablebook.db"
	defaultLocalCachePath = "tablebook_local.db"
	defaultSessionTTL     = "24h"
)

// Config is the service runtime configuration, sourced from the environment
// with local-development defaults. JWTSecret has no default on purpose.
type Config struct {
	ListenAddr     string
	DatabaseURL    string
	LocalCachePath string
	JWTSecret      string
	SessionTTL     time.Duration
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:     getenv("LISTEN_ADDR", defaultListenAddr),
		DatabaseURL:    getenv("DATABASE_URL", defaultDatabaseURL),
		LocalCachePath: getenv("LOCAL_CACHE_PATH", defaultLocalCachePath),
		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	ttl, err := time.ParseDuration(getenv("SESSION_TTL", defaultSessionTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	return cfg, nil
}
