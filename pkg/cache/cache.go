// Package cache stores rendered document artifacts keyed by content hash.
//
// Document layout is deterministic: the same sheet and geometry always
// produce the same PDF bytes. That makes rendered artifacts safe to cache
// by a hash of their inputs, which the serve mode uses to skip
// re-rendering repeated requests.
//
// Three implementations are provided: a file-based cache for CLI usage, a
// Redis-backed cache for server deployments, and a null cache that
// disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with TTL support.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey builds the cache key for a rendered document from the
// inputs that determine its bytes: the sheet and the geometry config.
func ArtifactKey(parts ...any) string {
	return hashKey("artifact", parts...)
}
