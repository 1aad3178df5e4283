// Package config loads application configuration from the environment.
//
// Configuration problems are collected and reported together rather than
// failing on the first missing variable, so a misconfigured environment
// shows everything that needs fixing in one run.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults. The 10 second timeout matches the API gateway's own response
// deadline — anything slower is treated as a failed request.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultPageLimit = 10
)

// Config holds everything the client needs to talk to the snippet API.
// Using a struct for config (instead of individual parameters) keeps
// function signatures stable as options are added.
type Config struct {
	BaseURL   string        // SNIPSHARE_API_URL (required)
	Timeout   time.Duration // SNIPSHARE_TIMEOUT (optional)
	TokenFile string        // SNIPSHARE_TOKEN_FILE (optional)
	LogLevel  slog.Level    // SNIPSHARE_LOG_LEVEL (optional: debug|info|warn|error)
}

// Load reads configuration from the environment, after loading a .env file
// if one is present in the working directory. A missing .env is not an
// error — it only exists for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	var problems []string

	cfg := Config{
		Timeout:  DefaultTimeout,
		LogLevel: slog.LevelInfo,
	}

	cfg.BaseURL = strings.TrimRight(os.Getenv("SNIPSHARE_API_URL"), "/")
	if cfg.BaseURL == "" {
		problems = append(problems, "missing required environment variable: SNIPSHARE_API_URL")
	}

	if v := os.Getenv("SNIPSHARE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			problems = append(problems, fmt.Sprintf("invalid SNIPSHARE_TIMEOUT %q: expected a positive duration like 10s", v))
		} else {
			cfg.Timeout = d
		}
	}

	cfg.TokenFile = os.Getenv("SNIPSHARE_TOKEN_FILE")
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile()
	}

	if v := os.Getenv("SNIPSHARE_LOG_LEVEL"); v != "" {
		switch strings.ToLower(v) {
		case "debug":
			cfg.LogLevel = slog.LevelDebug
		case "info":
			cfg.LogLevel = slog.LevelInfo
		case "warn":
			cfg.LogLevel = slog.LevelWarn
		case "error":
			cfg.LogLevel = slog.LevelError
		default:
			problems = append(problems, fmt.Sprintf("invalid SNIPSHARE_LOG_LEVEL %q: expected debug, info, warn or error", v))
		}
	}

	if len(problems) > 0 {
		return Config{}, errors.New("config: " + strings.Join(problems, "; "))
	}
	return cfg, nil
}

// defaultTokenFile places the persisted session token under the user's
// config directory, falling back to the working directory when the OS
// doesn't report one.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".snipshare-token.json"
	}
	return filepath.Join(dir, "snipshare", "token.json")
}
