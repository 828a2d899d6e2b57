// Package notes provides the note model, its persistence contract, and
// the repositories backing it.
package notes

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// Service validates note operations before they reach the repository and
// owns the shape of the results handlers see.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new note and reads it back so the caller gets the
// record exactly as stored.
func (s *Service) Create(ctx context.Context, title, content string) (*Note, error) {
	id, err := s.repo.Create(ctx, title, content)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Note, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Note, error) {
	return s.repo.Get(ctx, id)
}

// Update applies a partial update. An empty patch is rejected with
// common.ErrEmptyUpdate before the repository is reached.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Note, error) {
	if patch.Empty() {
		return nil, common.ErrEmptyUpdate
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes the note. Deleting an absent id succeeds; the operation
// is idempotent at the repository level.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
