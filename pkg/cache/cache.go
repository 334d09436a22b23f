// Package cache provides the artifact cache used by the pipeline runner.
//
// Rendering a recipe is deterministic, so encoded outputs can be reused
// across runs when nothing changed. The pipeline stores final artifacts
// keyed by a content hash of the recipe plus the output format; backends
// range from a no-op (caching disabled) through in-memory and file-based
// stores to Redis for shared deployments.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached artifacts stay valid unless the caller
// overrides it.
const DefaultTTL = 24 * time.Hour

// Cache is the storage backend interface.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact from the
// recipe's raw bytes and the output format.
func ArtifactKey(recipe []byte, format string) string {
	return hashKey("artifact", Hash(recipe), format)
}
