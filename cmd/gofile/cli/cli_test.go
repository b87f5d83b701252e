package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/gofile/pkg/fileref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRef(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf"), 0644))

	t.Run("local path", func(t *testing.T) {
		ref, err := buildRef(path, false, false, false, 0, "")
		require.NoError(t, err)
		assert.Equal(t, fileref.OriginPath, ref.Origin())
	})

	t.Run("http argument is a url", func(t *testing.T) {
		ref, err := buildRef("https://h/a.png", false, false, false, 0, "")
		require.NoError(t, err)
		assert.Equal(t, fileref.OriginURL, ref.Origin())
	})

	t.Run("forced url", func(t *testing.T) {
		ref, err := buildRef("media/a.png", true, false, false, 1024, "")
		require.NoError(t, err)
		assert.Equal(t, fileref.OriginURL, ref.Origin())
		assert.Equal(t, int64(1024), ref.Size())
	})

	t.Run("forced asset", func(t *testing.T) {
		ref, err := buildRef("assets/a.png", false, true, false, 0, "video/mp4")
		require.NoError(t, err)
		assert.Equal(t, fileref.OriginAsset, ref.Origin())
		assert.Equal(t, "video/mp4", ref.MIMEType())
	})

	t.Run("forced bytes reads content", func(t *testing.T) {
		ref, err := buildRef(path, false, false, true, 0, "")
		require.NoError(t, err)
		assert.Equal(t, fileref.OriginBytes, ref.Origin())
		assert.Equal(t, "doc.pdf", ref.Name())
		// Content hash, not the path metadata hash.
		assert.Equal(t, fileref.NewFromBytes("doc.pdf", []byte("pdf")).Hash(), ref.Hash())
	})

	t.Run("forced bytes on missing path fails", func(t *testing.T) {
		_, err := buildRef(filepath.Join(t.TempDir(), "missing.bin"), false, false, true, 0, "")
		assert.Error(t, err)
	})

	t.Run("missing path fails", func(t *testing.T) {
		_, err := buildRef(filepath.Join(t.TempDir(), "missing.txt"), false, false, false, 0, "")
		assert.Error(t, err)
	})
}

func TestParseLabel(t *testing.T) {
	key, value, err := parseLabel("album=summer")
	require.NoError(t, err)
	assert.Equal(t, "album", key)
	assert.Equal(t, "summer", value)

	_, _, err = parseLabel("noseparator")
	assert.Error(t, err)

	_, _, err = parseLabel("=value")
	assert.Error(t, err)
}
