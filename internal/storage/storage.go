package storage

import (
	"context"
	"io"
)

// BlobStore is the durable object store the pipeline stages write audio,
// transcripts, and templates through. Get returns utils.ErrNotFound for
// missing keys.
type BlobStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) error
	Get(ctx context.Context, key string) ([]byte, error)
}
