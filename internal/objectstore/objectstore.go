// Package objectstore talks to the S3-compatible bucket (Cloudflare R2,
// MinIO, AWS S3) holding uploaded images. Browsers upload directly with a
// presigned PUT URL; the server only signs URLs and deletes objects.
package objectstore

//go:generate mockgen -source=objectstore.go -destination=../mock/objectstore_mock.go -package=mock

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrPresign is returned when a PUT URL cannot be signed.
	ErrPresign = errors.New("cannot presign upload")
	// ErrDelete is returned when the bucket refuses a delete.
	ErrDelete = errors.New("cannot delete object")
)

// ObjectStorage signs uploads and removes objects by key.
type ObjectStorage interface {
	// PresignPut returns a URL accepting one PUT of contentType to key
	// until expires elapses.
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
