package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	portsrepo "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/repositories"
)

// DiskStore persists supporting documents under a base directory, one file
// per storage key. Keys are opaque UUIDs, so the layout stays flat.
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates the base directory if needed and returns the store.
func NewDiskStore(baseDir string) (*DiskStore, error) {
	if baseDir == "" {
		return nil, errors.New("document store directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create document store directory: %w", err)
	}
	return &DiskStore{baseDir: baseDir}, nil
}

var _ portsrepo.DocumentStore = (*DiskStore)(nil)

func (s *DiskStore) path(storageKey string) (string, error) {
	// Keys are generated server-side, but never trust them as path segments.
	if storageKey == "" || strings.ContainsAny(storageKey, `/\`) || storageKey == "." || storageKey == ".." {
		return "", fmt.Errorf("invalid storage key %q", storageKey)
	}
	return filepath.Join(s.baseDir, storageKey), nil
}

// SaveFile writes the contents under the storage key and returns the byte count.
func (s *DiskStore) SaveFile(ctx context.Context, storageKey string, contents io.Reader) (int64, error) {
	p, err := s.path(storageKey)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return 0, fmt.Errorf("failed to create document file: %w", err)
	}

	written, err := io.Copy(f, contents)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(p)
		return 0, fmt.Errorf("failed to write document file: %w", err)
	}
	return written, nil
}

// OpenFile opens a stored document for reading.
func (s *DiskStore) OpenFile(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	p, err := s.path(storageKey)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open document file: %w", err)
	}
	return f, nil
}

// RemoveFile deletes a stored document. Removing a missing file is not an error.
func (s *DiskStore) RemoveFile(ctx context.Context, storageKey string) error {
	p, err := s.path(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove document file: %w", err)
	}
	return nil
}
