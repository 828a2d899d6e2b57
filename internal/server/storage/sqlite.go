package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/server/migrations/sqlite"
	"github.com/dmitrijs2005/notekeeper/internal/server/notes"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteManager runs the note store on a sqlite database file.
type SQLiteManager struct {
	db    *sql.DB
	notes notes.Repository
}

func NewSQLiteManager(ctx context.Context, dsn string) (*SQLiteManager, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// sqlite allows a single writer; one pooled connection avoids
	// SQLITE_BUSY under concurrent requests (and keeps ":memory:"
	// databases on one connection).
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := &SQLiteManager{
		db:    db,
		notes: notes.NewSQLiteRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

// RunMigrations sets up goose with the embedded migrations and runs them.
func (m *SQLiteManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(sqlite.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

func (m *SQLiteManager) Conn() *sql.DB {
	return m.db
}

func (m *SQLiteManager) Notes() notes.Repository {
	return m.notes
}

func (m *SQLiteManager) Close() error {
	return m.db.Close()
}
