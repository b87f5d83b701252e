package fileref

import (
	"encoding/base64"
	"encoding/json"

	"github.com/spf13/cast"
)

// Wire-format keys. These names are part of the external contract and
// must not change; stored maps produced by older versions may also
// carry the legacy "url" key in place of "networkUrl".
const (
	keyName       = "name"
	keyNetworkURL = "networkUrl"
	keyFilePath   = "filePath"
	keyAssetsPath = "assetsPath"
	keyBytes      = "bytes"
	keyMimeType   = "mimeType"
	keyFileSize   = "fileSize"
	keyFileHash   = "fileHash"
	keyLegacyURL  = "url"
)

// ToMap serializes the reference into its wire format. Byte content is
// Base64 encoded; empty origin fields and an empty MIME type are
// omitted.
func (r *Ref) ToMap() map[string]any {
	m := map[string]any{
		keyName:     r.name,
		keyFileSize: r.size,
		keyFileHash: r.hash,
	}
	if r.networkURL != "" {
		m[keyNetworkURL] = r.networkURL
	}
	if r.localPath != "" {
		m[keyFilePath] = r.localPath
	}
	if r.assetPath != "" {
		m[keyAssetsPath] = r.assetPath
	}
	if r.IsFromBytes() {
		m[keyBytes] = base64.StdEncoding.EncodeToString(r.data)
	}
	if r.mimeType != "" {
		m[keyMimeType] = r.mimeType
	}
	return m
}

// FromMap reconstructs a reference from its wire format. The map must
// carry a name and at least one origin field (filePath, bytes,
// networkUrl or assetsPath); anything else fails with an ArgumentError.
// A missing fileHash is not an error: it degrades to the same
// name-derived hash the URL and asset constructors use, so incomplete
// legacy records still deserialize deterministically. No file I/O is
// performed; sizes and hashes are taken from the map as stored.
func FromMap(m map[string]any) (*Ref, error) {
	name := cast.ToString(m[keyName])
	if name == "" {
		return nil, &ArgumentError{Reason: `missing required field "name"`, Map: m}
	}

	networkURL := cast.ToString(m[keyNetworkURL])
	if networkURL == "" {
		networkURL = cast.ToString(m[keyLegacyURL])
	}
	localPath := cast.ToString(m[keyFilePath])
	assetPath := cast.ToString(m[keyAssetsPath])

	// An empty "bytes" value is a valid origin (an empty buffer), so
	// key presence decides, not the decoded length.
	rawBytes, hasBytes := m[keyBytes]
	if rawBytes == nil {
		hasBytes = false
	}

	if localPath == "" && !hasBytes && networkURL == "" && assetPath == "" {
		return nil, &ArgumentError{
			Reason: `missing origin field, need one of "filePath", "bytes", "networkUrl" or "assetsPath"`,
			Map:    m,
		}
	}

	var data []byte
	if hasBytes {
		decoded, err := base64.StdEncoding.DecodeString(cast.ToString(rawBytes))
		if err != nil {
			return nil, &ArgumentError{Reason: `field "bytes" is not valid base64`, Map: m}
		}
		data = decoded
	}

	hash := cast.ToString(m[keyFileHash])
	if hash == "" {
		hash = nameSlug(name)
	}

	r := &Ref{
		name:       name,
		origin:     originOf(localPath, hasBytes, networkURL, assetPath),
		localPath:  localPath,
		data:       data,
		networkURL: networkURL,
		assetPath:  assetPath,
		mimeType:   NormalizeMIME(cast.ToString(m[keyMimeType])),
		size:       cast.ToInt64(m[keyFileSize]),
		hash:       hash,
	}
	r.derive()
	return r, nil
}

// originOf picks the origin tag for deserialized references. Stored
// maps may carry more than one origin field; the first populated one
// wins in the order path, bytes, url, asset.
func originOf(localPath string, hasBytes bool, networkURL, assetPath string) Origin {
	switch {
	case localPath != "":
		return OriginPath
	case hasBytes:
		return OriginBytes
	case networkURL != "":
		return OriginURL
	default:
		return OriginAsset
	}
}

// MarshalJSON encodes the reference as its wire-format map.
func (r *Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// UnmarshalJSON decodes a wire-format map, applying the same validation
// as FromMap.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	decoded, err := FromMap(m)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}
