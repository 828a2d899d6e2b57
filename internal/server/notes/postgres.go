package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
)

// PostgresRepository implements note storage over a dbx.DBTX
// (*sql.DB or *sql.Tx) using the pgx stdlib driver.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, title, content string) (int64, error) {
	query := `
		INSERT INTO notes (title, content)
		VALUES ($1, $2)
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, title, content).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: insert note: %v", common.ErrStorage, err)
	}
	return id, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Note, error) {
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

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Note, error) {
	query := `SELECT id, title, content FROM notes WHERE id = $1`

	note := &Note{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&note.ID, &note.Title, &note.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: select note: %v", common.ErrStorage, err)
	}
	return note, nil
}

// Update applies the non-nil patch fields in a single round trip: NULL
// arguments fall through COALESCE and keep the stored value.
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch Patch) (*Note, error) {
	query := `
		UPDATE notes
		SET title = COALESCE($2, title), content = COALESCE($3, content)
		WHERE id = $1
		RETURNING id, title, content
	`
	note := &Note{}
	err := r.db.QueryRowContext(ctx, query, id, patch.Title, patch.Content).
		Scan(&note.ID, &note.Title, &note.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: update note: %v", common.ErrStorage, err)
	}
	return note, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM notes WHERE id = $1`

	// Rows affected is deliberately not checked: deleting an absent id
	// is a success.
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: delete note: %v", common.ErrStorage, err)
	}
	return nil
}
