package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/entitykit/entitykit/cache"
	"github.com/entitykit/entitykit/repository"
)

// APIKey is the stored credential entity. Only the digest of the raw key is
// persisted; raw keys exist solely in the caller's hands.
type APIKey struct {
	bun.BaseModel `bun:"table:api_keys"`

	ID        int64     `bun:"id,pk,autoincrement" msgpack:"id"`
	Digest    string    `bun:"digest" msgpack:"digest"`
	Subject   string    `bun:"subject" msgpack:"subject"`
	Revoked   bool      `bun:"revoked" msgpack:"revoked"`
	CreatedAt time.Time `bun:"created_at,nullzero" msgpack:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero" msgpack:"updated_at"`
}

// APIKeyHandlers wires the credential entity into the generic repository.
func APIKeyHandlers() repository.ModelHandlers[APIKey] {
	return repository.ModelHandlers[APIKey]{
		Table: "api_keys",
		GetID: func(k *APIKey) int64 { return k.ID },
		SetCreatedAt: func(k *APIKey, t time.Time) { k.CreatedAt = t },
		SetUpdatedAt: func(k *APIKey, t time.Time) { k.UpdatedAt = t },
		Filterable: map[string]string{
			"digest":  "digest",
			"subject": "subject",
			"revoked": "revoked",
		},
		Patch: func(k *APIKey) map[string]any {
			values := map[string]any{}
			if k.Subject != "" {
				values["subject"] = k.Subject
			}
			// Revocation is one way: a revoked key gets replaced, never
			// reinstated, so false is not a patchable state.
			if k.Revoked {
				values["revoked"] = true
			}
			return values
		},
	}
}

// GenerateKey issues a new raw API key. Hand the raw value to the caller and
// persist only its digest.
func GenerateKey() (raw, digest string) {
	raw = uuid.NewString()
	return raw, cache.KeyDigest(raw)
}
