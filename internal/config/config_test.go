package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DASHBOARD_API_URL", "http://localhost:5000/api")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Environment != "development" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("expected 15s timeout got %v", cfg.RequestTimeout)
	}
	if cfg.Locale != "en-IN" || cfg.TimeZone != "Local" {
		t.Fatalf("unexpected display settings %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if cfg.NotificationHistory != 50 {
		t.Fatalf("expected history 50 got %d", cfg.NotificationHistory)
	}
	if cfg.IsProduction() {
		t.Fatalf("development config reported as production")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_API_URL", "https://ads.example.com")
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DASHBOARD_REQUEST_TIMEOUT", "3s")
	t.Setenv("DASHBOARD_CORS_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || !cfg.IsProduction() || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected two origins got %v", cfg.CORSOrigins)
	}
}

func TestLoadRequiresAPIURL(t *testing.T) {
	t.Setenv("DASHBOARD_API_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without api url")
	}

	t.Setenv("DASHBOARD_API_URL", "not a url")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid api url")
	}
}

func TestLoadRejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("DASHBOARD_API_URL", "http://localhost:5000")
	t.Setenv("ENVIRONMENT", "qa")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown environment")
	}
}
