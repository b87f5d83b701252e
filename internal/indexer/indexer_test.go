package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/gofile/internal/config"
	"github.com/mwantia/gofile/pkg/db/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.BaseConfig {
	t.Helper()

	cfg := config.GetDefault()
	cfg.Index.SQLite.Path = filepath.Join(t.TempDir(), "index.db")
	cfg.Log.Level = "ERROR"
	return &cfg
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("alpha"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.png"), []byte{0x89, 0x50}, 0644))

	cfg := testConfig(t)
	result, err := NewIndexer(cfg).Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Indexed)
	assert.Equal(t, 0, result.Skipped)

	st, err := store.NewSQLiteStore(store.SQLiteConfig{Path: cfg.Index.SQLite.Path})
	require.NoError(t, err)
	defer st.Close()

	refs, err := st.ListReferences(context.Background(), "", 0, 0)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "a.txt", refs[0].Name)
	assert.Equal(t, "b.png", refs[1].Name)
}

func TestScanIsIdempotent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("alpha"), 0644))

	cfg := testConfig(t)

	_, err := NewIndexer(cfg).Scan(context.Background(), root)
	require.NoError(t, err)
	_, err = NewIndexer(cfg).Scan(context.Background(), root)
	require.NoError(t, err)

	st, err := store.NewSQLiteStore(store.SQLiteConfig{Path: cfg.Index.SQLite.Path})
	require.NoError(t, err)
	defer st.Close()

	refs, err := st.ListReferences(context.Background(), "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}

func TestScanMissingRoot(t *testing.T) {
	cfg := testConfig(t)
	_, err := NewIndexer(cfg).Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
