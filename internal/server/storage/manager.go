// Package storage selects and initializes the relational backend the note
// repository runs on. Migrations are embedded and applied at open time, so
// a successfully opened manager is always ready to serve.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/notes"
)

// Manager owns the database handle and hands out repositories bound to it.
type Manager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Notes() notes.Repository
	Close() error
}

// Open builds the manager for the configured backend. An unsupported
// backend value is a configuration error and must abort startup.
func Open(ctx context.Context, cfg *config.Config) (Manager, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return NewSQLiteManager(ctx, cfg.SQLitePath)
	case config.BackendPostgres:
		return NewPostgresManager(ctx, cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedBackend, cfg.Backend)
	}
}
