// Package cache provides byte-level caching for rendered carousel frames.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a local directory, used by the CLI
//   - [RedisCache]: shared cache for multi-instance servers
//   - [NullCache]: never stores anything, used with --no-cache
//
// # Keys
//
// A [Keyer] derives deterministic keys from everything that influences an
// output. [DefaultKeyer] hashes its inputs; [ScopedKeyer] prefixes another
// keyer's keys to isolate namespaces (per catalog, per tenant).
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached data.
const (
	// FrameTTL is how long a serialized layout pass stays cached.
	FrameTTL = 7 * 24 * time.Hour
	// ArtifactTTL is how long rendered SVG/PNG output stays cached.
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache stores opaque byte slices by key.
//
// Get returns (nil, false, nil) on a miss; an error is reserved for backend
// failures. A ttl of zero stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
