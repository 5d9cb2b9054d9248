// Package cache stores compiled chart artifacts keyed by a hash of the
// chart specification that produced them.
//
// Compilation is deterministic, so an artifact never goes stale; TTLs only
// bound storage. Three backends are provided:
//
//   - [NullCache]: stores nothing, used when caching is disabled
//   - [FileCache]: JSON entries on disk, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//
// Keys come from a [Keyer] so that deployments can namespace them with
// [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cached entries.
const (
	ArtifactTTL  = 7 * 24 * time.Hour
	PublishedTTL = time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with ok=false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey keys compiled output of the spec with the given hash.
	ArtifactKey(specHash string, opts ArtifactKeyOpts) string
	// PublishedKey keys the storage key under which an artifact was published.
	PublishedKey(specHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", specHash, opts)
}

// PublishedKey implements [Keyer].
func (DefaultKeyer) PublishedKey(specHash string, opts ArtifactKeyOpts) string {
	return hashKey("published", specHash, opts)
}
