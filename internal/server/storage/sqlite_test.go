package storage

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteManager_MigratesAndServes(t *testing.T) {
	ctx := context.Background()

	m, err := NewSQLiteManager(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	id, err := m.Notes().Create(ctx, "Shopping", "milk, eggs")
	require.NoError(t, err)

	got, err := m.Notes().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Shopping", got.Title)
	assert.Equal(t, "milk, eggs", got.Content)
}

func TestOpen_UnsupportedBackendRejectedByConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Backend = config.Backend("cloud")

	// Validate catches this before Open; Open double-checks.
	require.Error(t, cfg.Validate())

	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
}
