// internal/core/ports/cache.go
package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by CacheRepository.Get when a key is absent or
// expired. A miss is an expected outcome, not a failure.
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository is the time-bounded key-value cache in front of the item
// store. Entries expire lazily after their TTL; there is no background
// eviction and no cross-key transaction.
type CacheRepository interface {
	// Get unmarshals the snapshot stored at key into dest, or returns
	// ErrCacheMiss.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set unconditionally overwrites key with a serialized snapshot of value.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Invalidate removes the given keys. Absent keys are a no-op, not an
	// error.
	Invalidate(ctx context.Context, keys ...string) error

	// Ping checks connectivity to the cache backend.
	Ping(ctx context.Context) error
}
