// Package blob stores uploaded proof documents. Keys are opaque strings
// scoped under the submission token ("<token>/<uuid>"). Three drivers:
// memory (tests), filesystem (dev), and S3 (production, presigned GETs).
package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("blob not found")

// ErrPresignUnsupported is returned by drivers that cannot issue presigned
// URLs; callers fall back to streaming the object themselves.
var ErrPresignUnsupported = errors.New("presigned URLs not supported by this driver")

// Store is the document storage surface the upload step needs.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	// Get returns the object body and its content type.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL, or
	// ErrPresignUnsupported.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
