package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("BOOKING_TIME_SLOTS", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.WebhookTimeout != 15*time.Second {
		t.Fatalf("expected default webhook timeout, got %s", cfg.WebhookTimeout)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected default session TTL, got %s", cfg.SessionTTL)
	}
	if len(cfg.TimeSlots) != 6 || cfg.TimeSlots[0] != "09:00" {
		t.Fatalf("expected default slot list, got %v", cfg.TimeSlots)
	}
	if cfg.SourceLabel != "Trader Brothers Booking Form" {
		t.Fatalf("expected default source label, got %s", cfg.SourceLabel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/bookings")
	t.Setenv("WEBHOOK_TIMEOUT", "5s")
	t.Setenv("BOOKING_TIME_SLOTS", "08:30, 12:00 ,17:15")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://traderbros.example,https://booking.example")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.WebhookURL != "https://hooks.example.com/bookings" {
		t.Fatalf("expected webhook override, got %s", cfg.WebhookURL)
	}
	if cfg.WebhookTimeout != 5*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.WebhookTimeout)
	}
	if len(cfg.TimeSlots) != 3 || cfg.TimeSlots[1] != "12:00" {
		t.Fatalf("expected trimmed slot override, got %v", cfg.TimeSlots)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if !cfg.RedisTLS {
		t.Fatal("expected redis TLS override")
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected two CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvAsListEmpty(t *testing.T) {
	t.Setenv("BOOKING_TIME_SLOTS", " , ,")
	cfg := Load()
	if len(cfg.TimeSlots) != 0 {
		t.Fatalf("expected empty slot list, got %v", cfg.TimeSlots)
	}
}
