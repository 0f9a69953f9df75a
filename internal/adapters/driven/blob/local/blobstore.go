// Package local provides a filesystem-backed implementation of the blob
// store driven port. Uploaded documents are plain files under a root
// directory; paths are resolved relative to that root and may never
// escape it.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/credentia-labs/corpora-cli/internal/core/domain"
	"github.com/credentia-labs/corpora-cli/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore reads uploaded document bytes from a root directory.
type BlobStore struct {
	root string
}

// NewBlobStore creates a blob store rooted at dir. If dir is empty,
// defaults to ~/.corpora/uploads.
func NewBlobStore(dir string) (*BlobStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".corpora", "uploads")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}

	return &BlobStore{root: dir}, nil
}

// Root returns the uploads directory.
func (s *BlobStore) Root() string {
	return s.root
}

// Read returns the bytes stored at path.
func (s *BlobStore) Read(_ context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading upload %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether a stored path is readable.
func (s *BlobStore) Exists(_ context.Context, path string) bool {
	full, err := s.resolve(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.Mode().IsRegular()
}

// resolve joins path against the root and rejects escapes.
func (s *BlobStore) resolve(path string) (string, error) {
	if path == "" {
		return "", domain.ErrInvalidInput
	}

	// Absolute paths inside the root are accepted as-is. This is the
	// common case for watcher events.
	if filepath.IsAbs(path) {
		if !strings.HasPrefix(filepath.Clean(path), s.root+string(filepath.Separator)) {
			return "", domain.ErrInvalidInput
		}
		return filepath.Clean(path), nil
	}

	full := filepath.Join(s.root, path)
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", domain.ErrInvalidInput
	}
	return full, nil
}
