package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("expected default port 5000, got %s", cfg.Port)
	}
	if cfg.ReservationTTL != 15*time.Second {
		t.Errorf("expected default TTL 15s, got %s", cfg.ReservationTTL)
	}
	if len(cfg.CORSAllow) != 1 || cfg.CORSAllow[0] != "*" {
		t.Errorf("expected wildcard CORS default, got %v", cfg.CORSAllow)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("RESERVATION_TTL", "250ms")
	t.Setenv("CORS_ALLOW", "http://localhost:3000,https://ransilvav29.github.io")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8081" {
		t.Errorf("expected port 8081, got %s", cfg.Port)
	}
	if cfg.ReservationTTL != 250*time.Millisecond {
		t.Errorf("expected TTL 250ms, got %s", cfg.ReservationTTL)
	}
	if len(cfg.CORSAllow) != 2 {
		t.Errorf("expected 2 CORS origins, got %v", cfg.CORSAllow)
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Run("unparseable", func(t *testing.T) {
		t.Setenv("RESERVATION_TTL", "not-a-duration")
		if _, err := Load(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("non-positive", func(t *testing.T) {
		t.Setenv("RESERVATION_TTL", "0s")
		_, err := Load()
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "RESERVATION_TTL") {
			t.Errorf("unexpected error %v", err)
		}
	})
}
