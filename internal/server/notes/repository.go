package notes

import (
	"context"
)

// Repository is the persistence contract for notes. Implementations wrap
// backend failures into common.ErrStorage and report a missing id as
// common.ErrNotFound. Delete is idempotent: removing an absent id is not
// an error.
type Repository interface {
	// Create persists a new note and returns the assigned id. The record
	// is durable before Create returns.
	Create(ctx context.Context, title, content string) (int64, error)

	// List returns all notes ordered by id.
	List(ctx context.Context) ([]*Note, error)

	// Get returns the note with the given id.
	Get(ctx context.Context, id int64) (*Note, error)

	// Update applies the non-nil fields of patch and returns the full
	// post-update record.
	Update(ctx context.Context, id int64, patch Patch) (*Note, error)

	// Delete removes the note if present.
	Delete(ctx context.Context, id int64) error
}
