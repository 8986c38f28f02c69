// Package files stores and retrieves uploaded report documents. The record
// store only ever sees the opaque reference returned by Store.
package files

import (
	"context"
	"io"
)

// Store is the file-storage surface the report service depends on.
type Store interface {
	// Store writes the file bytes and returns an opaque reference.
	Store(ctx context.Context, r io.Reader, ownerID, fileName string) (string, error)

	// Open returns the stored bytes for download.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)

	// Delete releases the stored bytes. Deleting an absent reference is
	// not an error.
	Delete(ctx context.Context, ref string) error

	// List streams every stored reference to fn. Used by the orphan sweep.
	List(ctx context.Context, fn func(ref string) error) error
}
