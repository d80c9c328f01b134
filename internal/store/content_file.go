package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-bookshelf/internal/logger"
)

var errInvalidContentKey = errors.New("invalid content key")

// fileContentStorage is a [ContentStorage] keeping every object as a file in
// a single directory. It is used when no object storage endpoint is set.
type fileContentStorage struct {
	dir string
}

// NewFileContentStorage creates dir if needed and returns a [ContentStorage]
// backed by it.
func NewFileContentStorage(dir string) (ContentStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: error creating content directory: %w", ErrContentStorage, err)
	}

	return &fileContentStorage{dir: dir}, nil
}

func (s *fileContentStorage) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || filepath.Base(key) != key {
		return "", fmt.Errorf("%w: %q", errInvalidContentKey, key)
	}
	return filepath.Join(s.dir, key), nil
}

// Upload streams r into a temporary file which is renamed to key once fully
// written, so readers never observe partial content.
func (s *fileContentStorage) Upload(ctx context.Context, key string, r io.Reader, _ string) error {
	log := logger.FromContext(ctx)

	target, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		log.Err(err).Str("func", "*fileContentStorage.Upload").Msg("error creating temporary file")
		return fmt.Errorf("%w: %w", ErrContentStorage, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, contextReader{ctx: ctx, r: r}); err != nil {
		_ = tmp.Close()
		log.Err(err).Str("func", "*fileContentStorage.Upload").Msg("error writing content")
		return fmt.Errorf("%w: %w", ErrContentStorage, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrContentStorage, err)
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		log.Err(err).Str("func", "*fileContentStorage.Upload").Msg("error moving content in place")
		return fmt.Errorf("%w: %w", ErrContentStorage, err)
	}

	return nil
}

// Download opens the file stored under key.
func (s *fileContentStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	target, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrContentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentStorage, err)
	}

	return f, nil
}

// Delete removes the file stored under key. Removing a missing key is not
// an error.
func (s *fileContentStorage) Delete(_ context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}

	if err = os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrContentStorage, err)
	}

	return nil
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
