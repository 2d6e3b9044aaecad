package repositories

import (
	"context"
	"io"
)

// DocumentStore defines blob storage operations for supporting documents.
// Implementations persist file contents under an opaque storage key; the
// database keeps the metadata.
type DocumentStore interface {
	// SaveFile writes the file contents under the given storage key and
	// returns the number of bytes written.
	SaveFile(ctx context.Context, storageKey string, contents io.Reader) (int64, error)

	// OpenFile opens the stored file for reading. The caller must close it.
	OpenFile(ctx context.Context, storageKey string) (io.ReadCloser, error)

	// RemoveFile deletes the stored file. Removing a missing file is not an error.
	RemoveFile(ctx context.Context, storageKey string) error
}
