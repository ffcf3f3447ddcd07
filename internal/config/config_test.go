package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/ChemGraph-Engine/internal/config"
)

// validConfig returns a Config that passes Validate().
func validConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantMsg string
	}{
		{"negative input bytes", func(c *config.Config) { c.Engine.MaxInputBytes = -1 }, "max_input_bytes"},
		{"negative branch depth", func(c *config.Config) { c.Engine.MaxBranchDepth = -1 }, "max_branch_depth"},
		{"zero fingerprint bits", func(c *config.Config) { c.Engine.FingerprintBits = 0 }, "fingerprint_bits"},
		{"unaligned fingerprint bits", func(c *config.Config) { c.Engine.FingerprintBits = 100 }, "fingerprint_bits"},
		{"negative path bonds", func(c *config.Config) { c.Engine.FingerprintMaxPathBonds = -1 }, "fingerprint_max_path_bonds"},
		{"unknown cache backend", func(c *config.Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"redis without addr", func(c *config.Config) {
			c.Cache.Backend = "redis"
			c.Cache.Redis.Addr = ""
		}, "cache.redis.addr"},
		{"metrics without addr", func(c *config.Config) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = ""
		}, "metrics.addr"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestConfig_Validate_RedisBackendWithAddr(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Cache.Backend = "redis"
	cfg.Cache.Redis.Addr = "localhost:6379"
	assert.NoError(t, cfg.Validate())
}
