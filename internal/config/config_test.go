package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("STORAGE", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()

	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}

	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}

	if cfg.Storage != StorageFile {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageFile)
	}

	if len(cfg.AllowedOrigins) == 0 {
		t.Error("AllowedOrigins empty, want development defaults")
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when JWT_SECRET is unset")
	}
}

func TestLoadParsesTTLAndOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()

	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}

	found := 0

	for _, origin := range cfg.AllowedOrigins {
		if origin == "https://app.example.com" || origin == "https://staging.example.com" {
			found++
		}
	}

	if found != 2 {
		t.Errorf("AllowedOrigins = %v, want both configured origins present", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE", "cloud")

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown STORAGE value")
	}
}

func TestLoadDatabaseStorageRequiresDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE", StorageDatabase)
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when STORAGE=database without DATABASE_URL")
	}
}
