package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bookshelf/internal/config"
	"github.com/MKhiriev/go-bookshelf/internal/logger"
)

// Storages bundles every persistence backend used by the services.
type Storages struct {
	UserRepository UserRepository
	BookRepository BookRepository
	ContentStorage ContentStorage

	db *DB
}

// NewStorages connects to the database, applies migrations and opens the
// content bucket: object storage when configured, a directory otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	content, err := newContentStorage(ctx, cfg)
	if err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error opening content storage")
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db),
		BookRepository: NewBookRepository(db),
		ContentStorage: content,
		db:             db,
	}, nil
}

func newContentStorage(ctx context.Context, cfg config.Storage) (ContentStorage, error) {
	if cfg.Bucket.Enabled() {
		return NewMinioContentStorage(ctx, cfg.Bucket)
	}
	return NewFileContentStorage(cfg.Files.Dir)
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("error closing database: %w", err)
	}
	return nil
}
