package store

import (
	"context"

	"github.com/mwantia/gofile/pkg/db/models"
)

// ReferenceStore defines the interface for the reference index. It is
// an index of serialized file references keyed by cache key, not a
// cache: there is no eviction and no expiry.
type ReferenceStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Reference operations
	PutReference(ctx context.Context, ref *models.Reference) error
	GetReference(ctx context.Context, cacheKey string) (*models.Reference, error)
	ListReferences(ctx context.Context, namePrefix string, limit, offset int) ([]models.Reference, error)
	DeleteReference(ctx context.Context, cacheKey string) error

	// Label operations
	AddLabel(ctx context.Context, cacheKey, key, value string) error
	GetLabels(ctx context.Context, cacheKey string) ([]models.Label, error)
	FindByLabel(ctx context.Context, key, value string, limit, offset int) ([]models.Reference, error)
	DeleteLabels(ctx context.Context, cacheKey string) error
}
