package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, url, timeout, tokenFile, logLevel string) {
	t.Helper()
	t.Setenv("SNIPSHARE_API_URL", url)
	t.Setenv("SNIPSHARE_TIMEOUT", timeout)
	t.Setenv("SNIPSHARE_TOKEN_FILE", tokenFile)
	t.Setenv("SNIPSHARE_LOG_LEVEL", logLevel)
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, "https://api.example.com", "", "", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.TokenFile == "" {
		t.Error("TokenFile should default to a concrete path")
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	setEnv(t, "https://api.example.com/", "", "", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q, want no trailing slash", cfg.BaseURL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, "http://localhost:8000", "30s", "/tmp/tok.json", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.TokenFile != "/tmp/tok.json" {
		t.Errorf("TokenFile = %q", cfg.TokenFile)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoad_MissingURLIsAnError(t *testing.T) {
	setEnv(t, "", "", "", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail without SNIPSHARE_API_URL")
	}
	if !strings.Contains(err.Error(), "SNIPSHARE_API_URL") {
		t.Errorf("error %q should name the missing variable", err)
	}
}

func TestLoad_CollectsAllProblems(t *testing.T) {
	setEnv(t, "", "soon", "", "loud")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail")
	}
	for _, want := range []string{"SNIPSHARE_API_URL", "SNIPSHARE_TIMEOUT", "SNIPSHARE_LOG_LEVEL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestLoad_RejectsNonPositiveTimeout(t *testing.T) {
	setEnv(t, "http://localhost:8000", "-5s", "", "")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a negative timeout")
	}
}
