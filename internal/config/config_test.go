package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stellacofre/stellacofre-bfa-go/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "SESSION_TTL", "OTEL_EXPORTER_OTLP_ENDPOINT", "CORS_ORIGINS", "MAX_CONCURRENCY"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("expected tracing export disabled, got %q", cfg.OTLPEndpoint)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("expected no origins, got %v", cfg.CORSOrigins)
	}
	if cfg.MaxConcurrency != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.MaxConcurrency)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MAX_RETRIES", "not-a-number")

	cfg := config.Load()

	if cfg.Port != 9090 {
		t.Errorf("expected 9090, got %d", cfg.Port)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("expected 5m, got %s", cfg.SessionTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("expected invalid value to fall back to 3, got %d", cfg.MaxRetries)
	}
}

func TestLoad_NonPositiveDurationsFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "0s")
	t.Setenv("SESSION_TOKEN_TTL", "-5m")
	t.Setenv("HTTP_TIMEOUT", "-1s")

	cfg := config.Load()

	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m fallback, got %s", cfg.SessionTTL)
	}
	if cfg.SessionTokenTTL != 24*time.Hour {
		t.Errorf("expected 24h fallback, got %s", cfg.SessionTokenTTL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("expected 5s fallback, got %s", cfg.HTTPTimeout)
	}
}

func TestLoadDotEnv_EnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("STELLA_TEST_A=from-file\nSTELLA_TEST_B=\"quoted\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STELLA_TEST_A", "from-env")
	t.Setenv("STELLA_TEST_B", "")
	os.Unsetenv("STELLA_TEST_B")

	if err := config.LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := os.Getenv("STELLA_TEST_A"); got != "from-env" {
		t.Errorf("expected env to win, got %q", got)
	}
	if got := os.Getenv("STELLA_TEST_B"); got != "quoted" {
		t.Errorf("expected quotes stripped, got %q", got)
	}
}
