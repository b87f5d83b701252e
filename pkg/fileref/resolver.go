package fileref

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sync/atomic"
)

// URLResolver resolves possibly-relative network URLs against an
// optional base media URL. The base may be set and read concurrently;
// readers always observe a complete value. Resolution itself is pure,
// so a resolver can be injected wherever ambient configuration is
// undesirable.
type URLResolver struct {
	base atomic.Pointer[string]
}

// SetBase sets the base media URL prepended to relative network URLs.
// An empty string clears it.
func (rv *URLResolver) SetBase(baseURL string) {
	rv.base.Store(&baseURL)
}

// Base returns the configured base media URL, or "" if unset.
func (rv *URLResolver) Base() string {
	if p := rv.base.Load(); p != nil {
		return *p
	}
	return ""
}

// Resolve returns the full network URL of a reference: "" when the
// reference has no network URL, the URL unchanged when it already
// starts with "http", otherwise the base joined in front when one is
// configured.
func (rv *URLResolver) Resolve(r *Ref) string {
	raw := r.networkURL
	if raw == "" {
		return ""
	}
	if len(raw) >= 4 && raw[:4] == "http" {
		return raw
	}
	if base := rv.Base(); base != "" {
		return base + raw
	}
	return raw
}

// defaultResolver backs the package-level convenience accessors.
var defaultResolver URLResolver

// SetBaseMediaURL configures the process-wide base media URL used by
// Ref.FullURL. Affects only resolutions performed afterwards.
func SetBaseMediaURL(baseURL string) {
	defaultResolver.SetBase(baseURL)
}

// BaseMediaURL returns the process-wide base media URL, or "" if unset.
func BaseMediaURL() string {
	return defaultResolver.Base()
}

// FullURL resolves the network URL against the process-wide base media
// URL. Returns "" for references without a network URL.
func (r *Ref) FullURL() string {
	return defaultResolver.Resolve(r)
}

// CacheKey returns a stable identifier for the referenced content.
// References without a network URL use their name. URL references hash
// the normalized scheme://host/path form, so the same URL varying only
// in query string or fragment maps to the same key. Malformed URLs
// surface as a parse error.
func (r *Ref) CacheKey() (string, error) {
	if r.networkURL == "" {
		return r.name, nil
	}
	u, err := url.Parse(r.networkURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse network url %q: %w", r.networkURL, err)
	}
	normalized := u.Scheme + "://" + u.Host + u.Path
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:]), nil
}
