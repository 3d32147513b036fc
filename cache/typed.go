package cache

import (
	"context"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// GetTyped reads key and decodes the stored msgpack value into T.
// A backend miss and a missing key both report (zero, false, nil); decode
// failures surface so callers can treat the entry as poisoned.
func GetTyped[T any](ctx context.Context, store Store, key string) (T, bool, error) {
	var zero T

	data, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}

	var value T
	if err := msgpack.Unmarshal(data, &value); err != nil {
		return zero, false, err
	}
	return value, true, nil
}

// SetTyped encodes value as msgpack and stores it under key with the ttl.
func SetTyped[T any](ctx context.Context, store Store, key string, value T, ttl time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, data, ttl)
}
