// Package config loads process-wide configuration from the environment.
// The result is constructed once at startup and injected; nothing in this
// module reads the environment after load.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config carries store, cache, and credential-gate settings.
type Config struct {
	// Driver selects the SQL dialect: sqlite3 or postgres.
	Driver string
	// DSN is the database connection string.
	DSN string

	// RedisAddr enables the Redis cache backend when non-empty; otherwise
	// the in-process backend is used.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// EntityTTL bounds how long a cached entity may serve reads.
	EntityTTL time.Duration

	// APIKeyTTL and APIKeyNegativeTTL are the credential verdict TTLs.
	APIKeyTTL         time.Duration
	APIKeyNegativeTTL time.Duration
}

// Default returns the configuration used when the environment is empty.
func Default() Config {
	return Config{
		Driver:            DriverSQLite,
		DSN:               "file::memory:?cache=shared",
		EntityTTL:         5 * time.Minute,
		APIKeyTTL:         5 * time.Minute,
		APIKeyNegativeTTL: time.Hour,
	}
}

// Load reads configuration from ENTITYKIT_* environment variables, falling
// back to defaults for anything unset.
func Load() Config {
	cfg := Default()
	cfg.Driver = getenv("ENTITYKIT_DB_DRIVER", cfg.Driver)
	cfg.DSN = getenv("ENTITYKIT_DB_DSN", cfg.DSN)
	cfg.RedisAddr = getenv("ENTITYKIT_REDIS_ADDR", "")
	cfg.RedisPassword = getenv("ENTITYKIT_REDIS_PASSWORD", "")
	cfg.RedisDB = getint("ENTITYKIT_REDIS_DB", 0)
	cfg.EntityTTL = getduration("ENTITYKIT_CACHE_TTL", cfg.EntityTTL)
	cfg.APIKeyTTL = getduration("ENTITYKIT_API_KEY_TTL", cfg.APIKeyTTL)
	cfg.APIKeyNegativeTTL = getduration("ENTITYKIT_API_KEY_NEGATIVE_TTL", cfg.APIKeyNegativeTTL)
	return cfg
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverSQLite, DriverPostgres)),
		validation.Field(&c.DSN, validation.Required),
		validation.Field(&c.EntityTTL, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.APIKeyTTL, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.APIKeyNegativeTTL, validation.Required, validation.Min(time.Duration(1))),
	)
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getint(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
