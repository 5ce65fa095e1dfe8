package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("TOKEN_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "ratehub" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected port %q", cfg.HTTPPort)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected token ttl %v", cfg.TokenTTL)
	}
}

func TestSecretsHaveNoDefaults(t *testing.T) {
	// The signing secret and the database DSN must come from the
	// environment; boot fails without them instead of running on a
	// guessable value.
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("POSTGRES_DSN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.TokenSecret != "" {
		t.Fatalf("expected empty token secret, got %q", cfg.TokenSecret)
	}
	if cfg.PostgresDSN != "" {
		t.Fatalf("expected empty dsn, got %q", cfg.PostgresDSN)
	}
}

func TestTokenTTLFromEnvironment(t *testing.T) {
	t.Setenv("TOKEN_TTL", "45m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.TokenTTL != 45*time.Minute {
		t.Fatalf("unexpected token ttl %v", cfg.TokenTTL)
	}
}
