package config_test

import (
	"testing"
	"time"

	"github.com/iho/txpulse/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatal("expected default database URL to be set")
	}

	if cfg.RedisURL != "" {
		t.Fatalf("expected redis URL default to be empty, got %q", cfg.RedisURL)
	}

	if cfg.HTTPPort != "8000" {
		t.Fatalf("expected default HTTP port 8000, got %s", cfg.HTTPPort)
	}

	if cfg.AnalyticsCacheTTL != 0 {
		t.Fatalf("expected analytics cache to be disabled by default, got %v", cfg.AnalyticsCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ANALYTICS_CACHE_TTL", "5s")
	t.Setenv("DATABASE_MAX_CONNS", "50")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.HTTPPort != "9999" {
		t.Fatalf("expected port 9999, got %s", cfg.HTTPPort)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.LogLevel)
	}
	if cfg.AnalyticsCacheTTL != 5*time.Second {
		t.Fatalf("expected 5s cache TTL, got %v", cfg.AnalyticsCacheTTL)
	}
	if cfg.DatabaseMaxConns != 50 {
		t.Fatalf("expected 50 max conns, got %d", cfg.DatabaseMaxConns)
	}
}
