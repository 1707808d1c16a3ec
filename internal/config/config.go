package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds process configuration from environment.
// Per-pipeline settings arrive in the check payload instead.
type Config struct {
	DatabaseURL    string
	LogLevel       slog.Level
	PerPage        int
	HTTPTimeoutSec int
}

// Default values when env vars are unset.
const (
	DefaultLogLevel       = slog.LevelInfo
	DefaultPerPage        = 100
	DefaultHTTPTimeoutSec = 30
)

// maxPerPage is the GitHub API ceiling for per_page.
const maxPerPage = 100

// Load reads configuration from the environment.
// Uses defaults for optional values when unset or invalid.
func Load() *Config {
	c := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		LogLevel:       DefaultLogLevel,
		PerPage:        DefaultPerPage,
		HTTPTimeoutSec: DefaultHTTPTimeoutSec,
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if l, ok := parseLevel(v); ok {
			c.LogLevel = l
		}
	}
	if v := os.Getenv("GITHUB_PER_PAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPerPage {
			c.PerPage = n
		}
	}
	if v := os.Getenv("HTTP_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.HTTPTimeoutSec = n
		}
	}
	return c
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}
