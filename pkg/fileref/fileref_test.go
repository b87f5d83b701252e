package fileref

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestNewFromPath(t *testing.T) {
	content := make([]byte, 2048)
	path := writeTempFile(t, "photo.jpg", content)

	ref, err := NewFromPath(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, "photo.jpg", ref.Name())
	assert.Equal(t, OriginPath, ref.Origin())
	assert.Equal(t, path, ref.LocalPath())
	assert.Equal(t, int64(2048), ref.Size())
	assert.Equal(t, ".jpg", ref.Extension())
	assert.Equal(t, "2.0 KiB", ref.ReadableSize())
	assert.True(t, ref.IsImage())
	assert.True(t, ref.IsFromPath())
	assert.True(t, ref.HasLocalContent())
	assert.False(t, ref.IsFromURL())

	// Metadata pseudo-hash: size, mtime millis, bare extension.
	expected := fmt.Sprintf("%d-%d-jpg", info.Size(), info.ModTime().UnixMilli())
	assert.Equal(t, expected, ref.Hash())
}

func TestNewFromPathErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFromPath(filepath.Join(t.TempDir(), "missing.txt"))
		assert.Error(t, err)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := NewFromPath(t.TempDir())
		assert.Error(t, err)
	})
}

func TestNewFromBytes(t *testing.T) {
	data := []byte("hello world")
	ref := NewFromBytes("greeting.txt", data)

	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), ref.Hash())
	assert.Equal(t, int64(len(data)), ref.Size())
	assert.Equal(t, OriginBytes, ref.Origin())
	assert.Equal(t, "text/plain", ref.MIMEType())
	assert.True(t, ref.IsFromBytes())
	assert.True(t, ref.HasLocalContent())

	// Identical content hashes identically, one differing byte does not.
	same := NewFromBytes("other.txt", []byte("hello world"))
	assert.Equal(t, ref.Hash(), same.Hash())

	changed := NewFromBytes("greeting.txt", []byte("hello worlD"))
	assert.NotEqual(t, ref.Hash(), changed.Hash())
}

func TestNewFromBytesEmptyBuffer(t *testing.T) {
	ref := NewFromBytes("empty.bin", []byte{})

	assert.Equal(t, OriginBytes, ref.Origin())
	assert.True(t, ref.IsFromBytes())
	assert.True(t, ref.HasLocalContent())
	assert.Equal(t, int64(0), ref.Size())
	// SHA-256 of empty input.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ref.Hash())
}

func TestNewFromBytesSniffsContent(t *testing.T) {
	// No usable extension, so the content itself decides.
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	ref := NewFromBytes("upload", png)

	assert.Equal(t, "image/png", ref.MIMEType())
	assert.True(t, ref.IsImage())
}

func TestNewFromURL(t *testing.T) {
	ref := NewFromURL("https://x.com/a/song.mp3")

	assert.Equal(t, "song.mp3", ref.Name())
	assert.Equal(t, "song", ref.Hash())
	assert.Equal(t, OriginURL, ref.Origin())
	assert.Equal(t, int64(0), ref.Size())
	assert.Equal(t, "audio/mpeg", ref.MIMEType())
	assert.True(t, ref.IsFile())
	assert.False(t, ref.IsImage())
	assert.False(t, ref.IsVideo())
	assert.True(t, ref.IsFromURL())
	assert.False(t, ref.HasLocalContent())
}

func TestNewFromURLNameStripsQueryAndFragment(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantName string
		wantHash string
	}{
		{"plain", "https://h/p/clip.mp4", "clip.mp4", "clip"},
		{"query", "https://h/p/clip.mp4?v=2", "clip.mp4", "clip"},
		{"fragment", "https://h/p/clip.mp4#t=10", "clip.mp4", "clip"},
		{"spaces in name", "https://h/my song.mp3", "my song.mp3", "my-song"},
		{"relative", "media/track.mp3", "track.mp3", "track"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := NewFromURL(tt.url)
			assert.Equal(t, tt.wantName, ref.Name())
			assert.Equal(t, tt.wantHash, ref.Hash())
		})
	}
}

func TestNewFromURLWithKnownSize(t *testing.T) {
	ref := NewFromURL("https://h/big.zip", WithKnownSize(1024*1024))
	assert.Equal(t, int64(1024*1024), ref.Size())
	assert.Equal(t, 1.0, ref.SizeInMB())
}

func TestNewFromAsset(t *testing.T) {
	ref := NewFromAsset("assets/images/app icon.png")

	assert.Equal(t, "app icon.png", ref.Name())
	assert.Equal(t, "app-icon", ref.Hash())
	assert.Equal(t, OriginAsset, ref.Origin())
	assert.Equal(t, "assets/images/app icon.png", ref.AssetPath())
	assert.True(t, ref.IsFromAsset())
	assert.True(t, ref.IsImage())
}

func TestWithMIMEType(t *testing.T) {
	ref := NewFromBytes("data.bin", []byte{1, 2, 3}, WithMIMEType("Video/MP4; codecs=avc1"))
	assert.Equal(t, "video/mp4", ref.MIMEType())
	assert.True(t, ref.IsVideo())
}

func TestContent(t *testing.T) {
	t.Run("bytes origin returns buffer", func(t *testing.T) {
		ref := NewFromBytes("a.txt", []byte("abc"))
		data, err := ref.Content()
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), data)
	})

	t.Run("path origin reads from disk", func(t *testing.T) {
		path := writeTempFile(t, "b.txt", []byte("from disk"))
		ref, err := NewFromPath(path)
		require.NoError(t, err)

		data, err := ref.Content()
		require.NoError(t, err)
		assert.Equal(t, []byte("from disk"), data)
	})

	t.Run("path origin fails when file vanishes", func(t *testing.T) {
		path := writeTempFile(t, "c.txt", []byte("soon gone"))
		ref, err := NewFromPath(path)
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))
		_, err = ref.Content()
		assert.Error(t, err)
	})

	t.Run("url origin has no content", func(t *testing.T) {
		ref := NewFromURL("https://h/x.pdf")
		data, err := ref.Content()
		require.NoError(t, err)
		assert.Empty(t, data)
	})
}

func TestMediaFlagsAreExclusive(t *testing.T) {
	refs := []*Ref{
		NewFromBytes("a.png", []byte{1}),
		NewFromBytes("b.mp4", []byte{1}),
		NewFromBytes("c.pdf", []byte{1}),
		NewFromURL("https://h/noextension"),
	}

	for _, ref := range refs {
		count := 0
		for _, flag := range []bool{ref.IsImage(), ref.IsVideo(), ref.IsFile()} {
			if flag {
				count++
			}
		}
		assert.Equal(t, 1, count, "exactly one media flag for %s", ref.Name())
	}
}

func TestEqual(t *testing.T) {
	a := NewFromBytes("a.txt", []byte("same"))
	b := NewFromBytes("a.txt", []byte("same"))
	c := NewFromBytes("a.txt", []byte("different"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}
