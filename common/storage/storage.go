// Package storage persists uploaded attachment blobs under content keys like
// uploads/user_files/<token>.png. It sits on an afero filesystem so tests
// run against an in-memory FS and production against the configured root.
package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/spf13/afero"

	"github.com/pashadev/cadvault/common/config"
	"github.com/pashadev/cadvault/common/logger"
)

// Store is the blob store used for attachment uploads
type Store interface {
	Save(ctx context.Context, key string, data []byte) error
	Open(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// FileStore is an afero-backed Store
type FileStore struct {
	fs  afero.Fs
	log *logger.Logger
}

// New creates a Store rooted at the configured storage directory
func New(cfg *config.Config, log *logger.Logger) *FileStore {
	base := afero.NewBasePathFs(afero.NewOsFs(), cfg.Storage.Root)
	return &FileStore{fs: base, log: log}
}

// NewWithFs creates a Store on an explicit filesystem (in-memory in tests)
func NewWithFs(fs afero.Fs, log *logger.Logger) *FileStore {
	return &FileStore{fs: fs, log: log}
}

// Save writes a blob, creating parent directories as needed
func (s *FileStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return fmt.Errorf("create blob directory: %w", err)
	}

	if err := afero.WriteFile(s.fs, key, data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}

	s.log.Debug("blob written", "key", key, "size", len(data))
	return nil
}

// Open reads a blob back
func (s *FileStore) Open(ctx context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, key)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}

// Delete removes a blob. Deleting a missing key is not an error; the row
// update may have failed after the blob was already released.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	exists, err := afero.Exists(s.fs, key)
	if err != nil {
		return fmt.Errorf("stat blob %s: %w", key, err)
	}
	if !exists {
		return nil
	}

	if err := s.fs.Remove(key); err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}

	s.log.Debug("blob deleted", "key", key)
	return nil
}
