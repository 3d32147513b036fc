// Package cacheinfra provides the concrete cache backends behind the
// cache.Store port: an in-process sturdyc cache and a Redis client.
package cacheinfra

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config sizes the in-process sturdyc backend.
type Config struct {
	// Capacity is the maximum number of entries the cache can hold.
	Capacity int

	// NumShards controls concurrent access; higher values trade memory for
	// less shard contention.
	NumShards int

	// TTL applies to every entry. sturdyc fixes TTL per client, so backends
	// needing distinct TTLs get distinct store instances.
	TTL time.Duration

	// EvictionPercentage is how much of the cache to evict at capacity, 1-100.
	EvictionPercentage int
}

// DefaultConfig returns sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// WithTTL returns a copy of the config with the TTL replaced.
func (c Config) WithTTL(ttl time.Duration) Config {
	c.TTL = ttl
	return c
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&c.NumShards, validation.Required, validation.Min(1)),
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.EvictionPercentage, validation.Required, validation.Min(1), validation.Max(100)),
	)
}
