package models

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/gofile/pkg/fileref"
	"gorm.io/gorm"
)

// Reference persists the wire form of a file reference, keyed by its
// cache key. Column names mirror the serialization contract so records
// written by other consumers of the wire format stay readable.
type Reference struct {
	ID       string `gorm:"primaryKey;type:text"`
	CacheKey string `gorm:"type:text;not null;uniqueIndex"`

	Name       string `gorm:"type:text;not null"`
	NetworkURL string `gorm:"type:text"`
	FilePath   string `gorm:"type:text"`
	AssetsPath string `gorm:"type:text"`
	// Bytes holds base64-encoded content for byte-buffer references.
	Bytes    string `gorm:"type:text"`
	MimeType string `gorm:"type:text"`
	FileSize int64  `gorm:"not null;default:0"`
	FileHash string `gorm:"type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Labels []Label `gorm:"foreignKey:ReferenceID;constraint:OnDelete:CASCADE"`
}

// TableName avoids the default "references" table name, which is a
// reserved word in SQLite.
func (Reference) TableName() string {
	return "file_references"
}

// NewReference builds an index record from a file reference.
func NewReference(ref *fileref.Ref) (*Reference, error) {
	key, err := ref.CacheKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive cache key: %w", err)
	}

	record := &Reference{
		ID:         uuid.NewString(),
		CacheKey:   key,
		Name:       ref.Name(),
		NetworkURL: ref.NetworkURL(),
		FilePath:   ref.LocalPath(),
		AssetsPath: ref.AssetPath(),
		MimeType:   ref.MIMEType(),
		FileSize:   ref.Size(),
		FileHash:   ref.Hash(),
	}

	if ref.IsFromBytes() {
		data, err := ref.Content()
		if err != nil {
			return nil, err
		}
		record.Bytes = base64.StdEncoding.EncodeToString(data)
	}

	return record, nil
}

// ToRef reconstructs the file reference from the stored record, going
// through the same wire-format validation as any other deserialization.
func (r *Reference) ToRef() (*fileref.Ref, error) {
	m := map[string]any{
		"name":     r.Name,
		"fileSize": r.FileSize,
		"fileHash": r.FileHash,
	}
	if r.NetworkURL != "" {
		m["networkUrl"] = r.NetworkURL
	}
	if r.FilePath != "" {
		m["filePath"] = r.FilePath
	}
	if r.AssetsPath != "" {
		m["assetsPath"] = r.AssetsPath
	}
	if r.Bytes != "" {
		m["bytes"] = r.Bytes
	}
	if r.MimeType != "" {
		m["mimeType"] = r.MimeType
	}

	ref, err := fileref.FromMap(m)
	if err != nil {
		return nil, fmt.Errorf("stored reference %q is not valid: %w", r.CacheKey, err)
	}
	return ref, nil
}
