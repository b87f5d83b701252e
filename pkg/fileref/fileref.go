// Package fileref provides a cross-platform file-reference value type.
// A Ref describes one file from exactly one of four origins (local path,
// in-memory bytes, network URL, bundled asset) and derives its metadata
// (name, extension, MIME type, media category, size, hash) uniformly
// regardless of origin.
package fileref

import (
	"fmt"
	"os"
	"path/filepath"
)

// Origin identifies the source category a reference was built from.
type Origin string

const (
	OriginPath  Origin = "path"
	OriginBytes Origin = "bytes"
	OriginURL   Origin = "url"
	OriginAsset Origin = "asset"
)

// Ref is an immutable file reference. All derived fields are computed
// once inside the constructors; values are never mutated afterwards.
type Ref struct {
	name   string
	origin Origin

	localPath  string
	data       []byte
	networkURL string
	assetPath  string

	mimeType string
	size     int64
	hash     string
	media    MediaType
}

// Option customizes construction of a Ref.
type Option func(*Ref)

// WithKnownSize sets the byte length for origins that cannot measure it
// themselves (URLs and assets default to 0, meaning unknown).
func WithKnownSize(size int64) Option {
	return func(r *Ref) {
		r.size = size
	}
}

// WithMIMEType declares the MIME type up front, skipping name-based lookup.
func WithMIMEType(mimeType string) Option {
	return func(r *Ref) {
		r.mimeType = NormalizeMIME(mimeType)
	}
}

// NewFromPath builds a reference to a file on the local filesystem.
// The size is read from disk and the hash combines size, modification
// time and extension. This is NOT a content hash: two different files
// with identical size, mtime and extension collide, and editing a file
// changes its hash. Suitable for cache invalidation by modification
// time, not for content deduplication.
func NewFromPath(path string, opts ...Option) (*Ref, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path %q is a directory, not a file", path)
	}

	r := &Ref{
		name:      filepath.Base(path),
		origin:    OriginPath,
		localPath: path,
		size:      info.Size(),
		hash:      metadataHash(info.Size(), info.ModTime(), path),
	}
	r.apply(opts)
	r.derive()
	return r, nil
}

// NewFromBytes builds a reference to an in-memory byte buffer. The hash
// is the SHA-256 hex digest of the content, a true content hash.
func NewFromBytes(name string, data []byte, opts ...Option) *Ref {
	r := &Ref{
		name:   name,
		origin: OriginBytes,
		data:   data,
		size:   int64(len(data)),
		hash:   contentHash(data),
	}
	r.apply(opts)
	r.derive()
	return r
}

// NewFromURL builds a reference to a remote file. The name is the final
// path segment of the URL (query and fragment stripped), the hash is the
// name without its extension with spaces replaced by hyphens, and the
// size stays 0 unless supplied via WithKnownSize. The raw URL is kept as
// given, possibly relative; see URLResolver for base-URL resolution.
func NewFromURL(rawURL string, opts ...Option) *Ref {
	r := &Ref{
		name:       nameFromURL(rawURL),
		origin:     OriginURL,
		networkURL: rawURL,
	}
	r.hash = nameSlug(r.name)
	r.apply(opts)
	r.derive()
	return r
}

// NewFromAsset builds a reference to a bundled asset. Name, hash and
// size follow the same rules as NewFromURL.
func NewFromAsset(assetPath string, opts ...Option) *Ref {
	r := &Ref{
		name:      filepath.Base(assetPath),
		origin:    OriginAsset,
		assetPath: assetPath,
	}
	r.hash = nameSlug(r.name)
	r.apply(opts)
	r.derive()
	return r
}

func (r *Ref) apply(opts []Option) {
	for _, opt := range opts {
		opt(r)
	}
}

// derive fills the MIME type and media category. Declared MIME types
// win; otherwise the name is matched against the extension table and,
// for byte buffers, the content itself is sniffed as a last resort.
func (r *Ref) derive() {
	if r.mimeType == "" {
		r.mimeType = MIMEByName(r.name)
	}
	if r.mimeType == "" && r.origin == OriginBytes && len(r.data) > 0 {
		r.mimeType = SniffMIME(r.data)
	}
	r.media = MediaTypeOf(r.mimeType)
}

// Name returns the file name including its extension.
func (r *Ref) Name() string {
	return r.name
}

// Origin returns the source category the reference was built from.
func (r *Ref) Origin() Origin {
	return r.origin
}

// LocalPath returns the filesystem path, or "" for other origins.
func (r *Ref) LocalPath() string {
	return r.localPath
}

// NetworkURL returns the raw network URL as given, or "" for other
// origins. Use FullURL or URLResolver.Resolve for base-URL resolution.
func (r *Ref) NetworkURL() string {
	return r.networkURL
}

// AssetPath returns the bundled asset path, or "" for other origins.
func (r *Ref) AssetPath() string {
	return r.assetPath
}

// MIMEType returns the declared or sniffed MIME type, or "" if unknown.
func (r *Ref) MIMEType() string {
	return r.mimeType
}

// Size returns the byte length, 0 when unknown.
func (r *Ref) Size() int64 {
	return r.size
}

// Hash returns the identity hash. The derivation rule depends on the
// origin: SHA-256 content digest for byte buffers, size/mtime/extension
// for local paths, a filename slug for URLs and assets.
func (r *Ref) Hash() string {
	return r.hash
}

// Extension returns the name's extension including the leading dot,
// or "" if the name has none.
func (r *Ref) Extension() string {
	return filepath.Ext(r.name)
}

// IsFromPath reports whether the reference carries a local path.
func (r *Ref) IsFromPath() bool {
	return r.localPath != ""
}

// IsFromBytes reports whether the reference carries an in-memory
// buffer. The buffer may be empty, so this checks the origin tag as
// well as the data itself.
func (r *Ref) IsFromBytes() bool {
	return r.origin == OriginBytes || len(r.data) > 0
}

// IsFromURL reports whether the reference carries a network URL.
func (r *Ref) IsFromURL() bool {
	return r.networkURL != ""
}

// IsFromAsset reports whether the reference carries a bundled asset path.
func (r *Ref) IsFromAsset() bool {
	return r.assetPath != ""
}

// HasLocalContent reports whether the content is available without the
// network, from memory or from the local filesystem.
func (r *Ref) HasLocalContent() bool {
	return r.IsFromBytes() || r.IsFromPath()
}

// Content returns the raw bytes of the referenced file. Byte-buffer
// references return their buffer directly; path references read the
// whole file from disk on every call, so callers invoking this
// repeatedly should keep the result. URL and asset references return
// nil.
func (r *Ref) Content() ([]byte, error) {
	if len(r.data) > 0 {
		return r.data, nil
	}
	if r.localPath != "" {
		data, err := os.ReadFile(r.localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %q: %w", r.localPath, err)
		}
		return data, nil
	}
	return nil, nil
}

// Equal reports whether two references match on every identity field:
// name, origin fields, size, hash, MIME type and byte content.
func (r *Ref) Equal(other *Ref) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.name != other.name ||
		r.localPath != other.localPath ||
		r.networkURL != other.networkURL ||
		r.assetPath != other.assetPath ||
		r.size != other.size ||
		r.hash != other.hash ||
		r.mimeType != other.mimeType {
		return false
	}
	if len(r.data) != len(other.data) {
		return false
	}
	for i := range r.data {
		if r.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
