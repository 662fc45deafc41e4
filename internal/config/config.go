// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"sqlast/internal/sqlparse"
)

// Config holds settings shared by the CLI and the HTTP server. Every field
// has an SQLAST_* environment variable; CLI flags override them.
type Config struct {
	LogLevel  string // debug, info, warn, error (default "info")
	LogFormat string // text or json (default "text")

	Vendor   sqlparse.Vendor
	Features sqlparse.Features
	Workers  int // parallel file workers (default 4)

	DBPath     string // SQLite metadata store used by crud --db and the server
	ListenAddr string // HTTP listen address (default ":8080")

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 20)
	RateLimitBurst int     // burst capacity (default 40)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// MaxBodyBytes caps request bodies accepted by the server (default 1 MiB).
	MaxBodyBytes int64

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseOptions converts the parser-related settings to sqlparse.Options.
func (c *Config) ParseOptions(path string, logger *slog.Logger) sqlparse.Options {
	return sqlparse.Options{
		Path:     path,
		Vendor:   c.Vendor,
		Features: c.Features,
		Debug:    c.SlogLevel() == slog.LevelDebug,
		Logger:   logger,
	}
}

// LoadFromEnv loads configuration from environment variables. Malformed
// numbers fall back to defaults with a warning; an unknown vendor or
// feature is an error.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:   os.Getenv("SQLAST_LOG_LEVEL"),
		LogFormat:  strings.ToLower(os.Getenv("SQLAST_LOG_FORMAT")),
		DBPath:     os.Getenv("SQLAST_DB_PATH"),
		ListenAddr: os.Getenv("SQLAST_LISTEN_ADDR"),
	}

	if v := os.Getenv("SQLAST_VENDOR"); v != "" {
		vendor, err := sqlparse.ParseVendor(v)
		if err != nil {
			return nil, fmt.Errorf("SQLAST_VENDOR: %w", err)
		}
		cfg.Vendor = vendor
	}
	if v := os.Getenv("SQLAST_FEATURES"); v != "" {
		features, err := sqlparse.ParseFeatures(v)
		if err != nil {
			return nil, fmt.Errorf("SQLAST_FEATURES: %w", err)
		}
		cfg.Features = features
	}

	cfg.Workers = intEnv(cfg, "SQLAST_WORKERS")
	cfg.RateLimitBurst = intEnv(cfg, "SQLAST_RATE_LIMIT_BURST")
	if v := os.Getenv("SQLAST_RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring SQLAST_RATE_LIMIT_RPS=%q: not a number", v))
		}
	}
	if v := os.Getenv("SQLAST_MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxBodyBytes = n
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring SQLAST_MAX_BODY_BYTES=%q: not an integer", v))
		}
	}

	// CORS
	if v := os.Getenv("SQLAST_CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = compactNonEmpty(origins)
	}

	// Defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("SQLAST_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "sqlast.sqlite"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 20
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 40
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

func intEnv(cfg *Config, key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring %s=%q: not an integer", key, v))
		return 0
	}
	return n
}

func compactNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Environment variables take precedence.
		if _, set := os.LookupEnv(key); !set {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
