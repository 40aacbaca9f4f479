// Package storage is the object-store collaborator holding uploaded CV files.
// The core never inspects store failures; they propagate opaquely to the HTTP
// boundary.
package storage

import (
	"context"
	"io"
)

// Store accepts a byte buffer plus content type and returns a public URL for
// it. Open is the read side used when serving the public URL back.
type Store interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
	Open(name string) (io.ReadCloser, string, error)
}
