package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	StorageFile     = "file"
	StorageDatabase = "database"
)

// Default allowed origins for development
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

type Config struct {
	Port           string
	SecretKey      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	Storage        string
	DatabaseURL    string
	DataDir        string
	StaticDir      string
	AdminName      string
	AdminEmail     string
	AdminPassword  string
}

func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "3000"),
		SecretKey:     os.Getenv("JWT_SECRET"),
		Storage:       getEnv("STORAGE", StorageFile),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DataDir:       getEnv("DATA_DIR", "data"),
		StaticDir:     os.Getenv("STATIC_DIR"),
		AdminName:     getEnv("ADMIN_NAME", "Tee Johnson"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "tee@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "password123"),
	}

	if cfg.SecretKey == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	cfg.TokenTTL = time.Hour

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.TokenTTL = parsed
	}

	if cfg.Storage != StorageFile && cfg.Storage != StorageDatabase {
		return Config{}, fmt.Errorf("unknown STORAGE %q (expected %q or %q)", cfg.Storage, StorageFile, StorageDatabase)
	}

	if cfg.Storage == StorageDatabase && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required when STORAGE=%s", StorageDatabase)
	}

	cfg.AllowedOrigins = loadAllowedOrigins()

	return cfg, nil
}

func loadAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		for _, origin := range strings.Split(allowedOrigins, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
