package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file
// in the working directory is loaded first if present; real environment
// variables win over file values.
//
// Recognized variables:
//
//	ADDRESS            HTTP bind address
//	NOTES_BACKEND      "sqlite" (default) or "postgres"
//	SQLITE_PATH        sqlite database file
//	DATABASE_DSN       PostgreSQL DSN
//	SECRET_KEY         JWT HMAC secret
//	ACCESS_TOKEN_TTL   token lifetime, Go duration (e.g. "30m")
//	ALLOWED_ORIGINS    comma-separated CORS origins
//	TEST_USER          seeded username
//	TEST_PASSWORD      seeded password
func parseEnv(cfg *Config) error {
	// Missing .env is not an error; the file is a convenience overlay.
	_ = godotenv.Load()

	cfg.Address = getEnvString("ADDRESS", cfg.Address)
	cfg.Backend = Backend(getEnvString("NOTES_BACKEND", string(cfg.Backend)))
	cfg.SQLitePath = getEnvString("SQLITE_PATH", cfg.SQLitePath)
	cfg.DatabaseDSN = getEnvString("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.SecretKey = getEnvString("SECRET_KEY", cfg.SecretKey)
	cfg.SeedUser = getEnvString("TEST_USER", cfg.SeedUser)
	cfg.SeedPassword = getEnvString("TEST_PASSWORD", cfg.SeedPassword)

	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ACCESS_TOKEN_TTL %q: %w", v, err)
		}
		cfg.AccessTokenValidityDuration = d
	}

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitOrigins(v)
	}

	return nil
}

// getEnvString returns the environment variable value or the fallback
// when the variable is unset or empty.
func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
