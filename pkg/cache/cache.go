// Package cache provides artifact caching for the chartfit pipeline.
//
// Rendered and fitted SVGs are expensive to produce (each one costs at least
// one round trip to the external renderer), so the pipeline caches final
// artifacts keyed by a hash of the chart spec and the render options.
//
// # Backends
//
//   - FileCache: directory-backed cache for CLI usage
//   - RedisCache: Redis-backed cache for server deployments
//   - NullCache: no-op cache used to disable caching
//
// # Keys
//
// The Keyer interface derives cache keys from spec hashes and render
// options. ScopedKeyer prefixes keys for multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that affect a fitted artifact.
// Two renders with the same spec hash but different options must not share
// a cache entry.
type ArtifactKeyOpts struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding string  `json:"padding,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// HTTPKey generates a key for HTTP response caching.
	HTTPKey(namespace, key string) string

	// ArtifactKey generates a key for a fitted artifact.
	ArtifactKey(specHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key derivation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ArtifactKey generates a key for a fitted artifact.
func (k *DefaultKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+specHash, opts)
}
