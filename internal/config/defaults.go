package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultMaxInputBytes           = 64 * 1024
	DefaultMaxBranchDepth          = 512
	DefaultFingerprintBits         = 1024
	DefaultFingerprintMaxPathBonds = 7

	DefaultCacheBackend = "memory"
	DefaultCacheTTL     = 15 * time.Minute

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "chemgraph:"

	DefaultMetricsAddr      = ":9090"
	DefaultMetricsNamespace = "chemgraph"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins.  Call after unmarshalling and before Validate.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Engine ────────────────────────────────────────────────────────────────
	if cfg.Engine.MaxInputBytes == 0 {
		cfg.Engine.MaxInputBytes = DefaultMaxInputBytes
	}
	if cfg.Engine.MaxBranchDepth == 0 {
		cfg.Engine.MaxBranchDepth = DefaultMaxBranchDepth
	}
	if cfg.Engine.FingerprintBits == 0 {
		cfg.Engine.FingerprintBits = DefaultFingerprintBits
	}
	if cfg.Engine.FingerprintMaxPathBonds == 0 {
		cfg.Engine.FingerprintMaxPathBonds = DefaultFingerprintMaxPathBonds
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCacheBackend
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.Backend == "redis" && cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Cache.Redis.KeyPrefix == "" {
		cfg.Cache.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = DefaultMetricsAddr
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	// ── Logging ───────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stdout"}
	}
}
