// Package di wires the process-wide collaborators: the shared database pool,
// the cache backend, the logger, and factories for repositories, cache-aside
// decorators, and the credential gate. Everything is constructed once at
// process start and passed explicitly, so tests can substitute doubles.
package di

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"go.uber.org/zap"

	"github.com/entitykit/entitykit/auth"
	"github.com/entitykit/entitykit/cache"
	"github.com/entitykit/entitykit/config"
	"github.com/entitykit/entitykit/entitycache"
	"github.com/entitykit/entitykit/internal/cacheinfra"
	"github.com/entitykit/entitykit/repository"
)

// Container holds the singleton instances shared across requests.
type Container struct {
	cfg   config.Config
	db    *bun.DB
	store cache.Store
	redis *cacheinfra.RedisStore
	log   *zap.Logger
}

// New builds the container from configuration. Pass a nil logger to get a
// production zap logger.
func New(cfg config.Config, log *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		var err error
		log, err = zap.NewProduction()
		if err != nil {
			return nil, err
		}
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	c := &Container{cfg: cfg, db: db, log: log}
	if cfg.RedisAddr != "" {
		c.redis = cacheinfra.NewRedisStore(cacheinfra.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		c.store = c.redis
	} else {
		store, err := cacheinfra.NewSturdycStore(cacheinfra.DefaultConfig().WithTTL(cfg.EntityTTL))
		if err != nil {
			db.Close()
			return nil, err
		}
		c.store = store
	}
	return c, nil
}

func openDB(cfg config.Config) (*bun.DB, error) {
	sqldb, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		// In-memory sqlite needs a single connection or each new
		// connection sees an empty database.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case config.DriverPostgres:
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		sqldb.Close()
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// DB returns the shared database pool.
func (c *Container) DB() *bun.DB { return c.db }

// Store returns the shared cache backend.
func (c *Container) Store() cache.Store { return c.store }

// Logger returns the shared logger.
func (c *Container) Logger() *zap.Logger { return c.log }

// Config returns a copy of the configuration the container was built with.
func (c *Container) Config() config.Config { return c.cfg }

// Close releases the database pool and, when in use, the Redis client.
func (c *Container) Close() error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warn("closing redis client", zap.Error(err))
		}
	}
	return c.db.Close()
}

// NewAPIKeyGate builds the credential gate over the api_keys repository.
// Redis honors per-entry TTLs directly; the in-process backend gets a store
// partitioned by TTL so positive and negative verdicts each expire on their
// own configured TTL.
func (c *Container) NewAPIKeyGate() (*auth.Gate, error) {
	store := c.store
	if c.redis == nil {
		own, err := cacheinfra.NewTTLSplitStore(cacheinfra.DefaultConfig(), c.cfg.APIKeyTTL, c.cfg.APIKeyNegativeTTL)
		if err != nil {
			return nil, err
		}
		store = own
	}
	lookup := auth.NewRepositoryKeyLookup(repository.New(c.db, auth.APIKeyHandlers()))
	gateCfg := auth.GateConfig{
		PositiveTTL: c.cfg.APIKeyTTL,
		NegativeTTL: c.cfg.APIKeyNegativeTTL,
	}
	return auth.NewGate(lookup, store, gateCfg, c.log), nil
}

// NewRepository creates the bun-backed repository for T against the shared
// pool. Methods cannot have type parameters, so the generic factories are
// package-level functions.
func NewRepository[T any](c *Container, handlers repository.ModelHandlers[T]) *repository.BunRepository[T] {
	return repository.New(c.db, handlers)
}

// NewCachedRepository creates a repository for T wrapped in the cache-aside
// decorator, sharing the container's cache backend and entity TTL.
func NewCachedRepository[T any](c *Container, handlers repository.ModelHandlers[T]) *entitycache.CachedRepository[T] {
	return entitycache.New[T](repository.New(c.db, handlers), c.store, c.cfg.EntityTTL, c.log)
}
