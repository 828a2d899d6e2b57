package users

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// Repository provides read-only lookup of credential records.
type Repository interface {
	Find(ctx context.Context, username string) (*User, error)
}

// SeededRepository holds the credentials provisioned at process start.
// It is immutable after construction, so concurrent reads need no
// synchronization.
type SeededRepository struct {
	byName map[string]*User
}

// NewSeededRepository builds a repository over the given records.
func NewSeededRepository(records ...*User) *SeededRepository {
	byName := make(map[string]*User, len(records))
	for _, u := range records {
		byName[u.Username] = u
	}
	return &SeededRepository{byName: byName}
}

// Find returns the record for username, or common.ErrNotFound.
func (r *SeededRepository) Find(_ context.Context, username string) (*User, error) {
	user, ok := r.byName[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return user, nil
}
