package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RINKSTAT_DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("expected error without a database URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rinkstat")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIPort != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.APIPort)
	}
	if cfg.FetchPerMinute != 30 {
		t.Errorf("expected default fetch rate 30/min, got %d", cfg.FetchPerMinute)
	}
	if cfg.AutoupdateInterval != 30*time.Minute {
		t.Errorf("expected default autoupdate interval 30m, got %s", cfg.AutoupdateInterval)
	}
	if !cfg.CacheEnabled {
		t.Error("cache should default to enabled")
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rinkstat")
	t.Setenv("API_PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIPort != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.APIPort)
	}
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "https://b.example" {
		t.Errorf("CORS origins parsed wrong: %v", cfg.CORSAllowOrigins)
	}
	if cfg.RateLimitEnabled {
		t.Error("rate limiting should be disabled")
	}
}
