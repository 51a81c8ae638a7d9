package repositories

import (
	"context"
	"time"
)

// FileStorage defines object storage operations
type FileStorage interface {
	Upload(ctx context.Context, bucket, path string, content []byte, contentType string) error
	Remove(ctx context.Context, bucket, path string) error
	PublicURL(bucket, path string) string
	SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error)
}
