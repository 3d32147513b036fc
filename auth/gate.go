// Package auth implements the admission gate that precedes business logic.
// Two independent paths admit a request: an upstream-asserted identity whose
// trust boundary is established outside this layer, and a caller-supplied API
// key checked against a credential cache before the store. Valid verdicts
// carry the associated subject; invalid verdicts are cached on their own TTL
// to throttle repeated bad attempts against the store.
package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/entitykit/entitykit/cache"
	"github.com/entitykit/entitykit/errors"
	"github.com/entitykit/entitykit/repository"
)

// Source identifies which admission path accepted a request.
type Source string

const (
	SourceUpstream Source = "upstream"
	SourceAPIKey   Source = "api_key"
)

// Identity is the admitted caller.
type Identity struct {
	Subject string
	Source  Source
}

// verdict is the cached outcome of a credential lookup. Validity and subject
// are cached together so a hit never needs a second store round trip.
type verdict struct {
	Valid   bool   `msgpack:"valid"`
	Subject string `msgpack:"subject"`
}

// KeyLookup resolves an API key digest against the store.
type KeyLookup interface {
	LookupDigest(ctx context.Context, digest string) (subject string, ok bool, err error)
}

// RepositoryKeyLookup resolves digests through the generic repository.
// Revoked keys resolve as invalid.
type RepositoryKeyLookup struct {
	repo repository.Repository[APIKey]
}

func NewRepositoryKeyLookup(repo repository.Repository[APIKey]) *RepositoryKeyLookup {
	return &RepositoryKeyLookup{repo: repo}
}

func (l *RepositoryKeyLookup) LookupDigest(ctx context.Context, digest string) (string, bool, error) {
	record, found, err := l.repo.FindOneBy(ctx, "digest", digest)
	if err != nil || !found {
		return "", false, err
	}
	if record.Revoked {
		return "", false, nil
	}
	return record.Subject, true, nil
}

// GateConfig carries the two verdict TTLs. The negative TTL throttles
// repeated invalid-credential lookups and is configured separately from the
// positive one.
type GateConfig struct {
	PositiveTTL time.Duration
	NegativeTTL time.Duration
}

// DefaultGateConfig caches valid keys for five minutes and invalid ones for
// an hour.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		PositiveTTL: 5 * time.Minute,
		NegativeTTL: time.Hour,
	}
}

// Gate is the combined "accept either" admission check.
type Gate struct {
	lookup KeyLookup
	store  cache.Store
	cfg    GateConfig
	log    *zap.Logger
}

// NewGate wraps the store failsafe: credential cache unavailability degrades
// to store lookups, never to rejected requests.
func NewGate(lookup KeyLookup, store cache.Store, cfg GateConfig, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PositiveTTL <= 0 {
		cfg.PositiveTTL = DefaultGateConfig().PositiveTTL
	}
	if cfg.NegativeTTL <= 0 {
		cfg.NegativeTTL = DefaultGateConfig().NegativeTTL
	}
	return &Gate{
		lookup: lookup,
		store:  cache.Failsafe(store, log),
		cfg:    cfg,
		log:    log,
	}
}

// Authenticate admits a request through exactly one path. An upstream
// subject is accepted on presence alone. Absent both credentials the request
// is rejected before any cache or store access.
func (g *Gate) Authenticate(ctx context.Context, upstreamSubject, rawKey string) (Identity, error) {
	upstreamSubject = strings.TrimSpace(upstreamSubject)
	rawKey = strings.TrimSpace(rawKey)

	if upstreamSubject == "" && rawKey == "" {
		return Identity{}, errors.NewUnauthorized("no credentials supplied")
	}
	if upstreamSubject != "" {
		return Identity{Subject: upstreamSubject, Source: SourceUpstream}, nil
	}
	return g.checkKey(ctx, rawKey)
}

func (g *Gate) checkKey(ctx context.Context, rawKey string) (Identity, error) {
	key := cache.APIKeyKey(rawKey)

	cached, ok, err := cache.GetTyped[verdict](ctx, g.store, key)
	if err != nil {
		g.log.Warn("credential cache entry undecodable, treating as miss", zap.String("key", key), zap.Error(err))
	} else if ok {
		return g.admit(cached)
	}

	subject, valid, err := g.lookup.LookupDigest(ctx, cache.KeyDigest(rawKey))
	if err != nil {
		// Store failures propagate; an unavailable store must not be
		// mistaken for an invalid credential.
		return Identity{}, err
	}

	v := verdict{Valid: valid, Subject: subject}
	ttl := g.cfg.NegativeTTL
	if valid {
		ttl = g.cfg.PositiveTTL
	}
	if err := cache.SetTyped(ctx, g.store, key, v, ttl); err != nil {
		g.log.Warn("credential verdict not cached", zap.String("key", key), zap.Error(err))
	}
	return g.admit(v)
}

func (g *Gate) admit(v verdict) (Identity, error) {
	if !v.Valid {
		return Identity{}, errors.NewUnauthorized("invalid api key")
	}
	return Identity{Subject: v.Subject, Source: SourceAPIKey}, nil
}
