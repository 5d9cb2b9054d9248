// Package store persists compiled chart artifacts and issues time-limited
// URLs to retrieve them.
//
// Every backend follows the same put-then-sign pattern:
//
//	key, err := st.Put(ctx, svg, "image/svg+xml")   // "charts/chart-<uuid>.svg"
//	url, err := st.SignedGet(ctx, key, time.Hour)
//
// [S3Store] delegates signing to S3 presigned requests. [FileStore] and
// [MongoStore] sign with a [URLSigner] and rely on the HTTP server to serve
// the bytes through [Reader].
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// KeyPrefix is the folder every artifact key lives under.
const KeyPrefix = "charts/"

// DefaultTTL is the lifetime of signed URLs.
const DefaultTTL = time.Hour

// Store persists artifacts.
//
// Put stores data under a fresh key and returns the key. SignedGet returns a
// URL through which the artifact can be fetched until ttl elapses. Neither
// operation retries; transient failures are wrapped with cache.Retryable so
// callers can retry them.
type Store interface {
	Put(ctx context.Context, data []byte, contentType string) (key string, err error)
	SignedGet(ctx context.Context, key string, ttl time.Duration) (url string, err error)
}

// Reader is implemented by stores whose artifacts are served by this process.
type Reader interface {
	Get(ctx context.Context, key string) (data []byte, contentType string, err error)
}

var extensions = map[string]string{
	"image/svg+xml":   ".svg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// Extension returns the file extension for a content type, ".bin" if unknown.
func Extension(contentType string) string {
	if ext, ok := extensions[contentType]; ok {
		return ext
	}
	return ".bin"
}

// ContentTypeOf returns the content type implied by a key's extension.
func ContentTypeOf(key string) string {
	for ct, ext := range extensions {
		if len(key) > len(ext) && key[len(key)-len(ext):] == ext {
			return ct
		}
	}
	return "application/octet-stream"
}

// NewKey returns a fresh artifact key such as "charts/chart-<uuid>.svg".
func NewKey(contentType string) string {
	return KeyPrefix + "chart-" + uuid.NewString() + Extension(contentType)
}
