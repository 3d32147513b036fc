// Package entitycache applies the cache-aside policy around a generic
// repository: reads check the per-entity cache before the store and populate
// it on a miss; every successful write invalidates the entity's cache entry
// rather than updating it in place, so the next read repopulates from the
// store and a partially failed write can never leave a stale value behind.
package entitycache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/entitykit/entitykit/cache"
	"github.com/entitykit/entitykit/errors"
	"github.com/entitykit/entitykit/repository"
)

// Interface assertion to ensure CachedRepository implements Repository[T].
var _ repository.Repository[struct{}] = (*CachedRepository[struct{}])(nil)

// CachedRepository decorates a base repository with the cache-aside policy.
// The store is wrapped failsafe, so cache unavailability degrades to plain
// store access and never fails a request.
type CachedRepository[T any] struct {
	base  repository.Repository[T]
	store cache.Store
	name  string
	ttl   time.Duration
	log   *zap.Logger
}

// New creates a CachedRepository for T. Entries live under "{entity}:{id}"
// with the given ttl.
func New[T any](base repository.Repository[T], store cache.Store, ttl time.Duration, log *zap.Logger) *CachedRepository[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedRepository[T]{
		base:  base,
		store: cache.Failsafe(store, log),
		name:  repository.EntityName[T](),
		ttl:   ttl,
		log:   log,
	}
}

// FindByID checks the cache first and populates it on a store hit. A store
// miss is surfaced as the usual absent signal and is not cached.
func (c *CachedRepository[T]) FindByID(ctx context.Context, id int64) (*T, bool, error) {
	if id <= 0 {
		// Let the base repository produce the validation error.
		return c.base.FindByID(ctx, id)
	}

	key := cache.EntityKey(c.name, id)
	cached, ok, err := cache.GetTyped[T](ctx, c.store, key)
	if err != nil {
		c.log.Warn("cache entry undecodable, treating as miss", zap.String("key", key), zap.Error(err))
	} else if ok {
		return &cached, true, nil
	}

	record, found, err := c.base.FindByID(ctx, id)
	if err != nil || !found {
		return record, found, err
	}
	if err := cache.SetTyped(ctx, c.store, key, *record, c.ttl); err != nil {
		c.log.Warn("cache populate failed, skipping", zap.String("key", key), zap.Error(err))
	}
	return record, true, nil
}

// FindAll passes through: paginated results are never cached as a unit, only
// individual entities are.
func (c *CachedRepository[T]) FindAll(ctx context.Context, filters []repository.Filter, page repository.Pagination) (repository.Result[T], error) {
	return c.base.FindAll(ctx, filters, page)
}

// FindOneBy passes through; natural-key reads hit the store directly.
func (c *CachedRepository[T]) FindOneBy(ctx context.Context, field string, value any) (*T, bool, error) {
	return c.base.FindOneBy(ctx, field, value)
}

// ExistsBy passes through.
func (c *CachedRepository[T]) ExistsBy(ctx context.Context, field string, value any) (bool, error) {
	return c.base.ExistsBy(ctx, field, value)
}

// Create writes through to the store. It deliberately does not pre-populate
// the cache; the first read fetches the stored row.
func (c *CachedRepository[T]) Create(ctx context.Context, record *T) (*T, error) {
	return c.base.Create(ctx, record)
}

// CreateUnique enforces a natural-key uniqueness rule with an explicit
// lookup before the write, then creates the record.
func (c *CachedRepository[T]) CreateUnique(ctx context.Context, record *T, field string, value any) (*T, error) {
	exists, err := c.base.ExistsBy(ctx, field, value)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewConflict("%s with %s=%v already exists", c.name, field, value)
	}
	return c.Create(ctx, record)
}

// Update writes through to the store, then invalidates the entity's cache
// entry only after the store confirms success.
func (c *CachedRepository[T]) Update(ctx context.Context, id int64, patch *T) (*T, bool, error) {
	record, found, err := c.base.Update(ctx, id, patch)
	if err == nil && found {
		c.invalidate(ctx, id)
	}
	return record, found, err
}

// Delete removes the record, then invalidates its cache entry.
func (c *CachedRepository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := c.base.Delete(ctx, id)
	if err == nil && deleted {
		c.invalidate(ctx, id)
	}
	return deleted, err
}

// Handlers returns the model handlers from the base repository.
func (c *CachedRepository[T]) Handlers() repository.ModelHandlers[T] {
	return c.base.Handlers()
}

func (c *CachedRepository[T]) invalidate(ctx context.Context, id int64) {
	// The failsafe store absorbs backend failures here.
	_ = c.store.Delete(ctx, cache.EntityKey(c.name, id))
}
