package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultDatabaseURL    = "recipes.db"
	defaultDigestInterval = 24 * time.Hour
)

// Config keeps runtime settings for the catalog.
type Config struct {
	HTTPAddr       string
	HTTPSSL        bool
	DatabaseURL    string
	GinMode        string
	TelegramToken  string
	DigestInterval time.Duration
	DigestTime     string
}

// BotEnabled reports whether the Telegram digest bot should run.
func (c Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is applied first when present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := Config{
		HTTPAddr:      get("HTTP_ADDR"),
		DatabaseURL:   get("DATABASE_URL"),
		GinMode:       get("GIN_MODE"),
		TelegramToken: get("TELEGRAM_TOKEN"),
		DigestTime:    get("DIGEST_TIME"),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabaseURL
	}
	if cfg.GinMode == "" {
		cfg.GinMode = "release"
	}

	if raw := get("HTTP_SSL"); raw != "" {
		ssl, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("HTTP_SSL: invalid boolean %q", raw)
		}
		cfg.HTTPSSL = ssl
	}

	cfg.DigestInterval = parseInterval(get("DIGEST_INTERVAL_HOURS"))

	if cfg.DigestTime != "" {
		if _, err := time.Parse("15:04", cfg.DigestTime); err != nil {
			return cfg, fmt.Errorf("DIGEST_TIME: invalid time %q, expected HH:MM", cfg.DigestTime)
		}
	}

	return cfg, nil
}

// parseInterval returns the default for an unset value and 0 (disabled)
// for an explicit zero or anything unparsable.
func parseInterval(raw string) time.Duration {
	if raw == "" {
		return defaultDigestInterval
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
