// Package cache defines the key/value port the cache-aside policy is built
// on, plus key builders and typed accessors for serialized entity values.
//
// The cache is an optimization, never a dependency: wrap any Store with
// Failsafe and backend failures degrade to misses on read and no-ops on
// write, logged but never surfaced to the caller.
package cache

import (
	"context"
	"time"
)

// Store is the contract every cache backend implements. Values are opaque
// serialized bytes. A miss is (nil, false, nil); errors are reserved for
// backend failures.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
