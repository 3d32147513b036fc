package cache

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator delimits cache key segments.
const KeySeparator = ":"

// apiKeyPrefix namespaces credential verdict entries.
const apiKeyPrefix = "api_key"

// EntityKey builds the per-entity cache key, e.g. "user:42". Key builders
// live here so the key space stays in one place.
func EntityKey(entity string, id int64) string {
	return entity + KeySeparator + strconv.FormatInt(id, 10)
}

// APIKeyKey builds the credential cache key from a raw API key. The raw
// value is digested so credentials never appear verbatim in the key space.
func APIKeyKey(raw string) string {
	return apiKeyPrefix + KeySeparator + KeyDigest(raw)
}

// KeyDigest returns the hex xxhash digest of a raw credential. The same
// digest is what the store persists, so lookups never handle the raw key.
func KeyDigest(raw string) string {
	return strconv.FormatUint(xxhash.Sum64String(raw), 16)
}
