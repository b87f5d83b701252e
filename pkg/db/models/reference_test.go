package models

import (
	"encoding/base64"
	"testing"

	"github.com/mwantia/gofile/pkg/fileref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReferenceFromBytes(t *testing.T) {
	ref := fileref.NewFromBytes("note.txt", []byte("indexed content"))

	record, err := NewReference(ref)
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "note.txt", record.CacheKey)
	assert.Equal(t, "note.txt", record.Name)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("indexed content")), record.Bytes)
	assert.Equal(t, ref.Hash(), record.FileHash)
	assert.Equal(t, int64(15), record.FileSize)
}

func TestReferenceRoundTrip(t *testing.T) {
	ref := fileref.NewFromBytes("photo.png", []byte{0x01, 0x02})

	record, err := NewReference(ref)
	require.NoError(t, err)

	restored, err := record.ToRef()
	require.NoError(t, err)
	assert.True(t, ref.Equal(restored))
}

func TestNewReferenceFromURL(t *testing.T) {
	ref := fileref.NewFromURL("https://h/a/clip.mp4?sig=abc")

	record, err := NewReference(ref)
	require.NoError(t, err)

	assert.Equal(t, "clip.mp4", record.Name)
	assert.Equal(t, "https://h/a/clip.mp4?sig=abc", record.NetworkURL)
	assert.Empty(t, record.Bytes)

	// Cache key ignores the query string.
	other, err := NewReference(fileref.NewFromURL("https://h/a/clip.mp4?sig=def"))
	require.NoError(t, err)
	assert.Equal(t, record.CacheKey, other.CacheKey)
}

func TestToRefRejectsCorruptRecord(t *testing.T) {
	record := &Reference{CacheKey: "broken", Name: "a"}
	_, err := record.ToRef()
	assert.Error(t, err)
}
