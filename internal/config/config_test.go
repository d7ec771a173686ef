package config

import (
	"testing"
	"time"

	"budgetdash/internal/logger"
)

func init() {
	logger.Init("test")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENV", "")
		t.Setenv("PORT", "")
		t.Setenv("DB_DRIVER", "")
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("SESSION_TTL", "")
		t.Setenv("COOKIE_SECURE", "")
		t.Setenv("AUTO_MIGRATE", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.DBDriver != "postgres" {
			t.Errorf("expected postgres driver, got %s", cfg.DBDriver)
		}
		if cfg.SessionTTL != 24*time.Hour {
			t.Errorf("expected 24h session TTL, got %s", cfg.SessionTTL)
		}
		if cfg.CookieSecure {
			t.Error("expected insecure cookies outside production")
		}
		if !cfg.AutoMigrate {
			t.Error("expected auto migrate to default to true")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("ENV", "staging")
		t.Setenv("PORT", "9090")
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("DB_PATH", "/tmp/budgets.db")
		t.Setenv("SESSION_TTL", "30m")
		t.Setenv("COOKIE_SECURE", "true")
		t.Setenv("AUTO_MIGRATE", "false")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "9090" {
			t.Errorf("expected port 9090, got %s", cfg.Port)
		}
		if cfg.DBDriver != "sqlite" || cfg.DBPath != "/tmp/budgets.db" {
			t.Errorf("unexpected sqlite settings: %s %s", cfg.DBDriver, cfg.DBPath)
		}
		if cfg.SessionTTL != 30*time.Minute {
			t.Errorf("expected 30m session TTL, got %s", cfg.SessionTTL)
		}
		if !cfg.CookieSecure {
			t.Error("expected secure cookies")
		}
		if cfg.AutoMigrate {
			t.Error("expected auto migrate disabled")
		}
	})

	t.Run("invalid_ttl_falls_back", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "")
		t.Setenv("SESSION_TTL", "soon")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.SessionTTL != 24*time.Hour {
			t.Errorf("expected fallback to 24h, got %s", cfg.SessionTTL)
		}
	})

	t.Run("unsupported_driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for unsupported driver")
		}
	})

	t.Run("production_requires_secret", func(t *testing.T) {
		t.Setenv("ENV", "production")
		t.Setenv("DB_DRIVER", "")
		t.Setenv("SESSION_SECRET", "")

		if _, err := Load(); err == nil {
			t.Fatal("expected error when production runs with the development secret")
		}
	})
}
