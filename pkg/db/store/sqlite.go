package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/gofile/pkg/db/migrations"
	"github.com/mwantia/gofile/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore implements ReferenceStore using SQLite
type SQLiteStore struct {
	db           *gorm.DB
	path         string
	maxOpenConns int
}

// DB returns the underlying GORM database instance
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path         string
	MaxOpenConns int
	LogLevel     logger.LogLevel
}

// NewSQLiteStore creates a new SQLite-backed reference index
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite is single-writer; a wider pool would also split :memory:
	// databases across connections.
	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 1
	}

	return &SQLiteStore{
		db:           db,
		path:         cfg.Path,
		maxOpenConns: cfg.MaxOpenConns,
	}, nil
}

// Connect verifies the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	sqlDB.SetMaxOpenConns(s.maxOpenConns)

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return nil
}

// Close releases the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	return sqlDB.Close()
}

// Migrate runs all pending schema migrations
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return migrations.NewMigrator(s.db).Migrate(ctx)
}

// Health checks whether the store is usable
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	return sqlDB.PingContext(ctx)
}

// PutReference inserts or updates a reference record by cache key
func (s *SQLiteStore) PutReference(ctx context.Context, ref *models.Reference) error {
	var existing models.Reference
	err := s.db.WithContext(ctx).Where("cache_key = ?", ref.CacheKey).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.WithContext(ctx).Create(ref).Error; err != nil {
			return fmt.Errorf("failed to create reference: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to query reference: %w", err)
	}

	ref.ID = existing.ID
	ref.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(ref).Error; err != nil {
		return fmt.Errorf("failed to update reference: %w", err)
	}
	return nil
}

// GetReference retrieves a reference record by cache key
func (s *SQLiteStore) GetReference(ctx context.Context, cacheKey string) (*models.Reference, error) {
	var ref models.Reference
	if err := s.db.WithContext(ctx).Where("cache_key = ?", cacheKey).First(&ref).Error; err != nil {
		return nil, fmt.Errorf("failed to get reference %q: %w", cacheKey, err)
	}
	return &ref, nil
}

// ListReferences lists reference records, optionally filtered by a name
// prefix, ordered by name
func (s *SQLiteStore) ListReferences(ctx context.Context, namePrefix string, limit, offset int) ([]models.Reference, error) {
	query := s.db.WithContext(ctx).Order("name")
	if namePrefix != "" {
		query = query.Where("name LIKE ?", namePrefix+"%")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var refs []models.Reference
	if err := query.Find(&refs).Error; err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	return refs, nil
}

// DeleteReference removes a reference record and its labels
func (s *SQLiteStore) DeleteReference(ctx context.Context, cacheKey string) error {
	ref, err := s.GetReference(ctx, cacheKey)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reference_id = ?", ref.ID).Delete(&models.Label{}).Error; err != nil {
			return fmt.Errorf("failed to delete labels: %w", err)
		}
		// Hard delete, a soft-deleted row would still hold the unique
		// cache key and block re-indexing.
		if err := tx.Unscoped().Delete(ref).Error; err != nil {
			return fmt.Errorf("failed to delete reference: %w", err)
		}
		return nil
	})
}

// AddLabel attaches a key/value label to a reference
func (s *SQLiteStore) AddLabel(ctx context.Context, cacheKey, key, value string) error {
	ref, err := s.GetReference(ctx, cacheKey)
	if err != nil {
		return err
	}

	label := models.Label{
		ReferenceID: ref.ID,
		Key:         key,
		Value:       value,
	}
	if err := s.db.WithContext(ctx).Create(&label).Error; err != nil {
		return fmt.Errorf("failed to create label: %w", err)
	}
	return nil
}

// GetLabels returns all labels attached to a reference
func (s *SQLiteStore) GetLabels(ctx context.Context, cacheKey string) ([]models.Label, error) {
	ref, err := s.GetReference(ctx, cacheKey)
	if err != nil {
		return nil, err
	}

	var labels []models.Label
	if err := s.db.WithContext(ctx).Where("reference_id = ?", ref.ID).Find(&labels).Error; err != nil {
		return nil, fmt.Errorf("failed to get labels: %w", err)
	}
	return labels, nil
}

// FindByLabel returns references carrying a matching label
func (s *SQLiteStore) FindByLabel(ctx context.Context, key, value string, limit, offset int) ([]models.Reference, error) {
	query := s.db.WithContext(ctx).
		Joins("JOIN labels ON labels.reference_id = file_references.id").
		Where("labels.key = ? AND labels.value = ?", key, value).
		Order("file_references.name")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var refs []models.Reference
	if err := query.Find(&refs).Error; err != nil {
		return nil, fmt.Errorf("failed to find references by label: %w", err)
	}
	return refs, nil
}

// DeleteLabels removes all labels attached to a reference
func (s *SQLiteStore) DeleteLabels(ctx context.Context, cacheKey string) error {
	ref, err := s.GetReference(ctx, cacheKey)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Where("reference_id = ?", ref.ID).Delete(&models.Label{}).Error; err != nil {
		return fmt.Errorf("failed to delete labels: %w", err)
	}
	return nil
}
