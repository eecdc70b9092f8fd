package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	// DatabaseURL selects Postgres for selection memory when set;
	// otherwise SelectionDBPath (SQLite) is used.
	DatabaseURL     string
	SelectionDBPath string

	// FeedURL wins over FeedPath. With neither set the embedded snapshot
	// is served.
	FeedURL  string
	FeedPath string

	EventTimezone  *time.Location
	FallbackTier   string
	FallbackDay    string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on system environment variables only
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:     env,
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SelectionDBPath: getEnv("SELECTION_DB_PATH", defaultSelectionDBPath()),
		FeedURL:         os.Getenv("FEED_URL"),
		FeedPath:        os.Getenv("FEED_PATH"),
		FallbackTier:    getEnv("FALLBACK_TIER", "General"),
		FallbackDay:     getEnv("FALLBACK_DAY", "2025-05-13"),
		AllowedOrigins:  splitList(os.Getenv("ALLOWED_ORIGINS")),
	}

	tz := getEnv("EVENT_TIMEZONE", "America/New_York")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_TIMEZONE %q: %w", tz, err)
	}
	cfg.EventTimezone = loc

	timeout := getEnv("REQUEST_TIMEOUT", "10s")
	cfg.RequestTimeout, err = time.ParseDuration(timeout)
	if err != nil || cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q", timeout)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultSelectionDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "agendafeed", "selection.db")
}
