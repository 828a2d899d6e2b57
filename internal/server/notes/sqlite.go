package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
)

// SQLiteRepository implements note storage over a sqlite database
// (modernc.org/sqlite driver). It needs a *sql.DB rather than a DBTX
// because Update runs its write-then-read inside a transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, title, content string) (int64, error) {
	query := `INSERT INTO notes (title, content) VALUES (?, ?)`

	res, err := r.db.ExecContext(ctx, query, title, content)
	if err != nil {
		return 0, fmt.Errorf("%w: insert note: %v", common.ErrStorage, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return id, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*Note, error) {
	query := `SELECT id, title, content FROM notes ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: select notes: %v", common.ErrStorage, err)
	}
	defer rows.Close()

	var result []*Note
	for rows.Next() {
		var item Note
		if err := rows.Scan(&item.ID, &item.Title, &item.Content); err != nil {
			return nil, fmt.Errorf("%w: scan note: %v", common.ErrStorage, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*Note, error) {
	return getNote(ctx, r.db, id)
}

// Update runs in a transaction so the returned record is exactly the row
// the update produced, even under concurrent writers.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, patch Patch) (*Note, error) {
	query := `
		UPDATE notes
		SET title = COALESCE(?, title), content = COALESCE(?, content)
		WHERE id = ?
	`
	var note *Note
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, query, patch.Title, patch.Content, id)
		if err != nil {
			return fmt.Errorf("%w: update note: %v", common.ErrStorage, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: rows affected: %v", common.ErrStorage, err)
		}
		if n == 0 {
			return common.ErrNotFound
		}
		note, err = getNote(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM notes WHERE id = ?`

	// Rows affected is deliberately not checked: deleting an absent id
	// is a success.
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: delete note: %v", common.ErrStorage, err)
	}
	return nil
}

func getNote(ctx context.Context, db dbx.DBTX, id int64) (*Note, error) {
	query := `SELECT id, title, content FROM notes WHERE id = ?`

	note := &Note{}
	err := db.QueryRowContext(ctx, query, id).Scan(&note.ID, &note.Title, &note.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: select note: %v", common.ErrStorage, err)
	}
	return note, nil
}
