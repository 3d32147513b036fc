package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// memStore is a minimal in-memory Store for exercising the helpers.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

// brokenStore fails every operation.
type brokenStore struct{}

var errBackendDown = errors.New("connection refused")

func (brokenStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errBackendDown
}

func (brokenStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errBackendDown
}

func (brokenStore) Delete(ctx context.Context, key string) error {
	return errBackendDown
}

func TestEntityKey(t *testing.T) {
	if got := EntityKey("user", 42); got != "user:42" {
		t.Fatalf("EntityKey = %q, want %q", got, "user:42")
	}
}

func TestAPIKeyKeyDigestsRawCredential(t *testing.T) {
	raw := "super-secret-key"
	key := APIKeyKey(raw)

	if !strings.HasPrefix(key, "api_key:") {
		t.Fatalf("key %q missing api_key namespace", key)
	}
	if strings.Contains(key, raw) {
		t.Fatalf("raw credential leaked into key %q", key)
	}
	if key != APIKeyKey(raw) {
		t.Fatal("digest is not stable")
	}
	if APIKeyKey("other") == key {
		t.Fatal("distinct credentials collided")
	}
}

func TestTypedRoundTrip(t *testing.T) {
	type user struct {
		ID   int64
		Name string
	}

	ctx := context.Background()
	store := newMemStore()

	if err := SetTyped(ctx, store, "user:1", user{ID: 1, Name: "Ada"}, time.Minute); err != nil {
		t.Fatalf("SetTyped: %v", err)
	}

	got, ok, err := GetTyped[user](ctx, store, "user:1")
	if err != nil || !ok {
		t.Fatalf("GetTyped: ok=%v err=%v", ok, err)
	}
	if got.Name != "Ada" || got.ID != 1 {
		t.Fatalf("got %+v", got)
	}

	_, ok, err = GetTyped[user](ctx, store, "user:2")
	if err != nil || ok {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}
}

func TestGetTypedSurfacesDecodeFailure(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.data["user:1"] = []byte("\xc1not msgpack")

	type user struct{ ID int64 }
	if _, _, err := GetTyped[user](ctx, store, "user:1"); err == nil {
		t.Fatal("expected decode error for poisoned entry")
	}
}

func TestFailsafeAbsorbsBackendFailures(t *testing.T) {
	ctx := context.Background()
	store := Failsafe(brokenStore{}, nil)

	value, ok, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get must degrade to a miss, got %v", err)
	}
	if ok || value != nil {
		t.Fatalf("degraded Get reported a hit: ok=%v value=%v", ok, value)
	}

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set must degrade to a no-op, got %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete must degrade to a no-op, got %v", err)
	}
}

func TestFailsafeIsIdempotent(t *testing.T) {
	inner := Failsafe(brokenStore{}, nil)
	if Failsafe(inner, nil) != inner {
		t.Fatal("double wrapping should return the existing failsafe store")
	}
}

func TestFailsafePassesThroughHealthyStore(t *testing.T) {
	ctx := context.Background()
	store := Failsafe(newMemStore(), nil)

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || string(value) != "v" {
		t.Fatalf("Get = %q, %v, %v", value, ok, err)
	}
}
