package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// failsafeStore absorbs backend failures: reads degrade to misses, writes and
// invalidations to no-ops. Failures are logged at Warn and never propagated.
type failsafeStore struct {
	inner Store
	log   *zap.Logger
}

// Failsafe wraps a Store so cache unavailability can never fail the enclosing
// read or write. Wrapping an already wrapped store is harmless.
func Failsafe(inner Store, log *zap.Logger) Store {
	if log == nil {
		log = zap.NewNop()
	}
	if _, ok := inner.(*failsafeStore); ok {
		return inner
	}
	return &failsafeStore{inner: inner, log: log}
}

func (s *failsafeStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok, err := s.inner.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache get failed, treating as miss", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return value, ok, nil
}

func (s *failsafeStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.inner.Set(ctx, key, value, ttl); err != nil {
		s.log.Warn("cache set failed, skipping", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (s *failsafeStore) Delete(ctx context.Context, key string) error {
	if err := s.inner.Delete(ctx, key); err != nil {
		s.log.Warn("cache invalidation failed, skipping", zap.String("key", key), zap.Error(err))
	}
	return nil
}
