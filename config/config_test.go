package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Driver != DriverSQLite {
		t.Fatalf("Driver = %q, want %q", cfg.Driver, DriverSQLite)
	}
	if cfg.EntityTTL != 5*time.Minute {
		t.Fatalf("EntityTTL = %v", cfg.EntityTTL)
	}
	if cfg.APIKeyNegativeTTL != time.Hour {
		t.Fatalf("APIKeyNegativeTTL = %v", cfg.APIKeyNegativeTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENTITYKIT_DB_DRIVER", "postgres")
	t.Setenv("ENTITYKIT_DB_DSN", "postgres://localhost:5432/app?sslmode=disable")
	t.Setenv("ENTITYKIT_REDIS_ADDR", "localhost:6379")
	t.Setenv("ENTITYKIT_REDIS_DB", "3")
	t.Setenv("ENTITYKIT_CACHE_TTL", "90s")

	cfg := Load()
	if cfg.Driver != DriverPostgres {
		t.Fatalf("Driver = %q", cfg.Driver)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 3 {
		t.Fatalf("redis settings = %q / %d", cfg.RedisAddr, cfg.RedisDB)
	}
	if cfg.EntityTTL != 90*time.Second {
		t.Fatalf("EntityTTL = %v", cfg.EntityTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ENTITYKIT_REDIS_DB", "not-a-number")
	t.Setenv("ENTITYKIT_CACHE_TTL", "soon")

	cfg := Load()
	if cfg.RedisDB != 0 {
		t.Fatalf("RedisDB = %d, want fallback 0", cfg.RedisDB)
	}
	if cfg.EntityTTL != 5*time.Minute {
		t.Fatalf("EntityTTL = %v, want fallback", cfg.EntityTTL)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := Default()
	cfg.Driver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unsupported driver")
	}
}

func TestValidateRejectsZeroTTL(t *testing.T) {
	cfg := Default()
	cfg.EntityTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero TTL")
	}
}
