package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
engine:
  max_input_bytes: 1024
  fingerprint_bits: 2048
cache:
  backend: memory
  ttl: 5m
metrics:
  enabled: true
  addr: ":9191"
log:
  level: debug
  format: console
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chemgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Engine.MaxInputBytes)
	assert.Equal(t, 2048, cfg.Engine.FingerprintBits)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9191", cfg.Metrics.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	// Fields absent from the file take defaults.
	assert.Equal(t, DefaultMaxBranchDepth, cfg.Engine.MaxBranchDepth)
	assert.Equal(t, DefaultFingerprintMaxPathBonds, cfg.Engine.FingerprintMaxPathBonds)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfigFile(t, "engine: [not a map"))
	assert.Error(t, err)
}

func TestLoad_FailsValidation(t *testing.T) {
	_, err := Load(writeConfigFile(t, "engine:\n  fingerprint_bits: 100\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultFingerprintBits, cfg.Engine.FingerprintBits)
	assert.Equal(t, DefaultCacheBackend, cfg.Cache.Backend)
	assert.NoError(t, cfg.Validate())
}

func TestMustLoad_PanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
	})
}

func TestMustLoad_ReturnsConfig(t *testing.T) {
	cfg := MustLoad(writeConfigFile(t, validConfigYAML))
	assert.Equal(t, 2048, cfg.Engine.FingerprintBits)
}

func TestWatch_InvokesOnChange(t *testing.T) {
	path := writeConfigFile(t, validConfigYAML)

	changed := make(chan *Config, 1)
	Watch(path, func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})

	require.NoError(t, os.WriteFile(path,
		[]byte("engine:\n  fingerprint_bits: 512\n"), 0o644))

	select {
	case cfg := <-changed:
		assert.Equal(t, 512, cfg.Engine.FingerprintBits)
	case <-time.After(3 * time.Second):
		t.Skip("filesystem watch event not delivered in time")
	}
}
