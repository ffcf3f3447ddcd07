// Package config defines the engine's configuration structures, defaults, and
// loading.  This file holds only plain data types and validation; parsing
// lives in loader.go and defaults in defaults.go.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/ChemGraph-Engine/internal/infrastructure/cache"
	"github.com/turtacn/ChemGraph-Engine/internal/infrastructure/monitoring/logging"
)

// EngineConfig bounds and tunes the chemistry engine itself.
type EngineConfig struct {
	// MaxInputBytes caps accepted SMILES length.  Zero disables the check.
	MaxInputBytes int `mapstructure:"max_input_bytes"`

	// MaxBranchDepth caps '(' nesting during parsing.
	MaxBranchDepth int `mapstructure:"max_branch_depth"`

	// FingerprintBits is the path-fingerprint width.
	FingerprintBits int `mapstructure:"fingerprint_bits"`

	// FingerprintMaxPathBonds bounds enumerated path length.
	FingerprintMaxPathBonds int `mapstructure:"fingerprint_max_path_bonds"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend string `mapstructure:"backend"`

	// TTL applies to cached canonical forms, fingerprints, and descriptors.
	TTL time.Duration `mapstructure:"ttl"`

	Redis cache.RedisConfig `mapstructure:"redis"`
}

// MetricsConfig controls the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Addr      string `mapstructure:"addr"`
	Namespace string `mapstructure:"namespace"`
}

// Config is the root configuration for every binary.
type Config struct {
	Engine  EngineConfig   `mapstructure:"engine"`
	Cache   CacheConfig    `mapstructure:"cache"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
	Log     logging.Config `mapstructure:"log"`
}

// Validate checks cross-field consistency after defaults have been applied.
func (c *Config) Validate() error {
	if c.Engine.MaxInputBytes < 0 {
		return fmt.Errorf("engine.max_input_bytes must not be negative")
	}
	if c.Engine.MaxBranchDepth < 0 {
		return fmt.Errorf("engine.max_branch_depth must not be negative")
	}
	if c.Engine.FingerprintBits <= 0 || c.Engine.FingerprintBits%8 != 0 {
		return fmt.Errorf("engine.fingerprint_bits must be a positive multiple of 8, got %d",
			c.Engine.FingerprintBits)
	}
	if c.Engine.FingerprintMaxPathBonds < 0 {
		return fmt.Errorf("engine.fingerprint_max_path_bonds must not be negative")
	}

	switch c.Cache.Backend {
	case "memory":
	case "redis":
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required when cache.backend is \"redis\"")
		}
	default:
		return fmt.Errorf("cache.backend must be \"memory\" or \"redis\", got %q", c.Cache.Backend)
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required when metrics are enabled")
	}
	return nil
}
