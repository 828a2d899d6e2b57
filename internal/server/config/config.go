// Package config handles configuration for the notekeeper server,
// including defaults, an optional .env file, and process environment
// variables. Invalid backend selections abort startup rather than
// failing on first use.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// Backend selects the relational store the note repository runs on.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Config holds runtime settings for the notekeeper server.
//
// Fields:
//   - Address: bind address for the HTTP endpoint.
//   - Backend: storage backend selector ("sqlite" or "postgres").
//   - SQLitePath: sqlite database file (sqlite backend only).
//   - DatabaseDSN: PostgreSQL DSN (pgx), required for the postgres backend.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the
//     test default in prod.
//   - AccessTokenValidityDuration: bearer token lifetime.
//   - AllowedOrigins: origins allowed by the CORS policy.
//   - SeedUser / SeedPassword: the single credential provisioned at startup.
type Config struct {
	Address                     string
	Backend                     Backend
	SQLitePath                  string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	AllowedOrigins              []string
	SeedUser                    string
	SeedPassword                string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Address = ":8000"
	c.Backend = BackendSQLite
	c.SQLitePath = "notes.db"
	c.DatabaseDSN = ""
	c.SecretKey = "your-secret-key"
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.AllowedOrigins = []string{"http://localhost:8000"}
	c.SeedUser = "testuser"
	c.SeedPassword = "testpassword"
}

// Validate checks the loaded configuration. A non-default backend choice
// with missing required values is a startup error, not a lazy one.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite backend requires a database path")
		}
	case BackendPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("postgres backend requires DATABASE_DSN")
		}
	default:
		return fmt.Errorf("%w: %q", common.ErrUnsupportedBackend, c.Backend)
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("token validity duration must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional .env file and the process environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
