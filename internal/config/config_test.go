package config

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL)
	}
	if cfg.AdminUsername != "admin" || cfg.AdminEmail != "admin@example.com" {
		t.Fatalf("unexpected bootstrap defaults: %s %s", cfg.AdminUsername, cfg.AdminEmail)
	}
	if cfg.NotificationsEnabled() {
		t.Fatal("notifications must be off without SMTP_HOST")
	}
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("TOKEN_TTL_SECONDS", "120")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("ADMIN_PASSWORD", "rotated")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TokenTTL != 2*time.Minute {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL)
	}
	if !cfg.NotificationsEnabled() {
		t.Fatal("notifications must be on with SMTP_HOST set")
	}
	if cfg.AdminPassword != "rotated" {
		t.Fatalf("unexpected admin password: %s", cfg.AdminPassword)
	}
}

func TestNewConfigRejectsBadTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL_SECONDS", "nope")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected an error for a non-numeric TTL")
	}

	t.Setenv("TOKEN_TTL_SECONDS", "-5")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected an error for a negative TTL")
	}
}
