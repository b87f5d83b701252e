package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"time"

	"github.com/mwantia/fabric/pkg/container"
	"github.com/mwantia/gofile/internal/config"
	"github.com/mwantia/gofile/pkg/db/models"
	"github.com/mwantia/gofile/pkg/db/store"
	"github.com/mwantia/gofile/pkg/fileref"
	"github.com/mwantia/gofile/pkg/log"
)

// Indexer walks a directory tree, builds file references for every
// regular file and upserts them into the reference index.
type Indexer struct {
	cfg  *config.BaseConfig
	sc   *container.ServiceContainer
	log  log.LoggerService
	proc *log.LoggerTagProcessor
}

// ScanResult summarizes one indexing run.
type ScanResult struct {
	Indexed int
	Skipped int
}

func NewIndexer(cfg *config.BaseConfig) *Indexer {
	return &Indexer{
		cfg:  cfg,
		sc:   container.NewServiceContainer(),
		log:  log.NewLoggerService("gofile", cfg.Log),
		proc: log.NewLoggerTagProcessor(),
	}
}

func (idx *Indexer) setupServices(st *store.SQLiteStore) error {
	errs := container.Errors{}

	idx.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.Logger](idx.sc,
		container.With[log.LoggerService](),
		container.WithInstance(idx.log)))

	idx.log.Debug("Registering 'LoggerTagProcessor'...")
	errs.Add(container.Register[log.LoggerTagProcessor](idx.sc,
		container.WithInstance(idx.proc)))

	idx.log.Debug("Registering 'ReferenceStore'...")
	errs.Add(container.Register[store.SQLiteStore](idx.sc,
		container.With[store.ReferenceStore](),
		container.WithInstance(st)))

	return errs.Errors()
}

// Scan indexes every regular file under root. Unreadable files are
// logged and skipped; the scan itself only fails on store errors or a
// broken walk.
func (idx *Indexer) Scan(ctx context.Context, root string) (*ScanResult, error) {
	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: idx.cfg.Index.SQLite.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open reference index: %w", err)
	}
	defer st.Close()

	if err := st.Connect(ctx); err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		return nil, err
	}

	if err := idx.setupServices(st); err != nil {
		return nil, err
	}
	defer idx.cleanup()

	scanLog := idx.scopedLogger(ctx, "scan")
	result := &ScanResult{}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		ref, err := fileref.NewFromPath(path)
		if err != nil {
			scanLog.Warn("Skipping %q: %v", path, err)
			result.Skipped++
			return nil
		}

		record, err := models.NewReference(ref)
		if err != nil {
			scanLog.Warn("Skipping %q: %v", path, err)
			result.Skipped++
			return nil
		}

		if err := st.PutReference(ctx, record); err != nil {
			return err
		}

		scanLog.Debug("Indexed %q (%s, %s)", path, ref.MIMEType(), ref.ReadableSize())
		result.Indexed++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %q: %w", root, err)
	}

	idx.log.Info("Scan of %q complete, %d indexed, %d skipped", root, result.Indexed, result.Skipped)
	return result, nil
}

// scopedLogger resolves a named logger through the logger tag
// processor, so scoped loggers flow through the same injection path as
// tagged service fields. Falls back to Named if the container cannot
// serve the request.
func (idx *Indexer) scopedLogger(ctx context.Context, name string) log.LoggerService {
	field := reflect.TypeOf(struct {
		Log log.LoggerService `fabric:"logger"`
	}{}).Field(0)

	tag := "logger:" + name
	if !idx.proc.CanProcess(tag) {
		return idx.log.Named(name)
	}

	resolved, err := idx.proc.Process(ctx, idx.sc, field, tag)
	if err != nil {
		idx.log.Warn("Failed to resolve scoped logger %q: %v", name, err)
		return idx.log.Named(name)
	}

	scoped, ok := resolved.(log.LoggerService)
	if !ok {
		return idx.log.Named(name)
	}
	return scoped
}

func (idx *Indexer) cleanup() {
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := idx.sc.Cleanup(shutdown); err != nil {
		idx.log.Error("Failed to complete service container cleanup: %v", err)
	}
}
