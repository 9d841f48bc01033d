// Package config assembles application settings from the environment and
// an optional .env file, and installs the process-wide logger.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the CLI, TUI and HTTP server.
type Config struct {
	// DBPath is the SQLite database file. Empty means store.DefaultDBPath.
	DBPath string

	// RedisURL selects the Redis result store when set.
	RedisURL string

	// Addr is the HTTP listen address for `laban serve`.
	Addr string

	// CORSOrigins lists allowed browser origins. "*" allows any.
	CORSOrigins []string

	// LogLevel filters slog output.
	LogLevel slog.Level

	// GinMode is passed to gin.SetMode ("debug", "release", "test").
	GinMode string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		CORSOrigins: []string{"*"},
		LogLevel:    slog.LevelWarn,
		GinMode:     "release",
	}
}

// Load reads the given .env files (".env" when none are named) without
// overriding variables already set, then builds the Config. Missing files
// are not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from LABAN_* environment variables.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("LABAN_DB")
	cfg.RedisURL = os.Getenv("LABAN_REDIS_URL")
	if a := os.Getenv("LABAN_ADDR"); a != "" {
		cfg.Addr = a
	}
	if o := os.Getenv("LABAN_CORS_ORIGINS"); o != "" {
		cfg.CORSOrigins = splitList(o)
	}
	if m := os.Getenv("LABAN_GIN_MODE"); m != "" {
		cfg.GinMode = m
	}
	if l := os.Getenv("LABAN_LOG_LEVEL"); l != "" {
		level, err := ParseLevel(l)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

// ParseLevel accepts slog level names (debug, info, warn, error) in any
// case, with optional offsets such as "info+2".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("LABAN_LOG_LEVEL: %w", err)
	}
	return l, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

// InstallLogger makes a stderr logger the slog default.
func (c Config) InstallLogger() {
	slog.SetDefault(c.NewLogger(os.Stderr))
}

// AllowAllOrigins reports whether CORS should accept any origin.
func (c Config) AllowAllOrigins() bool {
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.CORSOrigins) == 0
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
