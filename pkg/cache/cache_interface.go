package cache

import (
	"context"
	"time"
)

// Cache is the key/value contract used for read-through caching of the
// ballot snapshot and vote tallies. Values are stored as JSON.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found is false on a miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern, e.g. "tally:*".
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
