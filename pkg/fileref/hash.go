package fileref

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// contentHash returns the SHA-256 hex digest of data.
func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// metadataHash builds the local-path identity hash from file size,
// modification time in milliseconds and the bare extension, joined as
// "{size}-{mtime}-{ext}". Changes to the file change the hash; distinct
// files with identical metadata collide.
func metadataHash(size int64, mtime time.Time, path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return fmt.Sprintf("%d-%d-%s", size, mtime.UnixMilli(), ext)
}

// nameSlug derives the URL/asset identity hash from a file name: the
// extension is dropped and spaces become hyphens.
func nameSlug(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(base, " ", "-")
}

// nameFromURL extracts the final path segment of a raw URL, with query
// and fragment stripped. The URL is not validated here; malformed input
// only surfaces when the URL is actually parsed for a cache key.
func nameFromURL(rawURL string) string {
	trimmed := rawURL
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return trimmed
}
