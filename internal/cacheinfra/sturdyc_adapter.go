package cacheinfra

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// SturdycStore backs the cache port with an in-process sturdyc client.
// Values are stored as raw bytes; serialization is the caller's concern.
//
// Version compatibility note: this adapter assumes the sturdyc v1.x API.
type SturdycStore struct {
	client *sturdyc.Client[[]byte]
}

// NewSturdycStore validates the configuration and initializes the client.
func NewSturdycStore(cfg Config) (*SturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[[]byte](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
	)
	return &SturdycStore{client: client}, nil
}

// Get reports a miss for absent or expired keys; it never errors.
func (s *SturdycStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := s.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

// Set stores value under key. sturdyc applies the client-wide TTL from
// Config; the per-call ttl is honored only by backends with per-entry expiry.
func (s *SturdycStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.client.Set(key, value)
	return nil
}

// Delete removes the entry so the next read fetches fresh data.
func (s *SturdycStore) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}
