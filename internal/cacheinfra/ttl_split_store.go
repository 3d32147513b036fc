package cacheinfra

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// TTLSplitStore honors distinct per-call TTLs on the in-process backend by
// keeping one sturdyc client per configured TTL. sturdyc fixes TTL per
// client, so a single client would let every entry live for the client-wide
// TTL regardless of what the caller asked for.
//
// A write is routed to the partition matching its ttl and evicted from the
// rest, so a key lives in at most one partition and a rewrite with a
// different ttl cannot leave a shadow entry behind. A ttl with no matching
// partition falls back to the shortest one.
type TTLSplitStore struct {
	ttls  []time.Duration
	parts map[time.Duration]*SturdycStore
}

// NewTTLSplitStore builds one partition per distinct ttl, each sized from
// base with its TTL replaced.
func NewTTLSplitStore(base Config, ttls ...time.Duration) (*TTLSplitStore, error) {
	if len(ttls) == 0 {
		return nil, fmt.Errorf("cacheinfra: at least one ttl is required")
	}

	s := &TTLSplitStore{parts: map[time.Duration]*SturdycStore{}}
	for _, ttl := range ttls {
		if _, ok := s.parts[ttl]; ok {
			continue
		}
		part, err := NewSturdycStore(base.WithTTL(ttl))
		if err != nil {
			return nil, err
		}
		s.parts[ttl] = part
		s.ttls = append(s.ttls, ttl)
	}
	sort.Slice(s.ttls, func(i, j int) bool { return s.ttls[i] < s.ttls[j] })
	return s, nil
}

// Get returns the first partition hit. Set keeps each key in a single
// partition, so at most one can answer.
func (s *TTLSplitStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	for _, ttl := range s.ttls {
		value, ok, err := s.parts[ttl].Get(ctx, key)
		if err != nil || ok {
			return value, ok, err
		}
	}
	return nil, false, nil
}

// Set stores value in the partition matching ttl and removes the key from
// every other partition.
func (s *TTLSplitStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	target, ok := s.parts[ttl]
	if !ok {
		target = s.parts[s.ttls[0]]
	}
	for _, t := range s.ttls {
		if part := s.parts[t]; part != target {
			if err := part.Delete(ctx, key); err != nil {
				return err
			}
		}
	}
	return target.Set(ctx, key, value, ttl)
}

// Delete removes the key from every partition.
func (s *TTLSplitStore) Delete(ctx context.Context, key string) error {
	for _, ttl := range s.ttls {
		if err := s.parts[ttl].Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
