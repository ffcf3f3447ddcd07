package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewFromCore(core), logs
}

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "s", Value: "v"}, String("s", "v"))
	assert.Equal(t, Field{Key: "i", Value: 42}, Int("i", 42))
	assert.Equal(t, Field{Key: "f", Value: 1.5}, Float64("f", 1.5))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "d", Value: time.Second}, Duration("d", time.Second))
	assert.Equal(t, Field{Key: "a", Value: []int{1}}, Any("a", []int{1}))

	assert.Equal(t, Field{Key: "error", Value: "boom"}, Err(errors.New("boom")))
	assert.Equal(t, Field{Key: "error", Value: "<nil>"}, Err(nil))
}

func TestLogger_EmitsFields(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)

	log.Info("parsed molecule",
		String("smiles", "CCO"),
		Int("atoms", 3),
		Bool("aromatic", false))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "parsed molecule", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "CCO", ctx["smiles"])
	assert.EqualValues(t, 3, ctx["atoms"])
	assert.Equal(t, false, ctx["aromatic"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	log, logs := observed(zapcore.WarnLevel)

	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept")
	log.Error("kept too")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[1].Level)
}

func TestLogger_With(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)

	child := log.With(String("component", "parser"))
	child.Info("first")
	log.Info("second")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "parser", entries[0].ContextMap()["component"])
	assert.NotContains(t, entries[1].ContextMap(), "component",
		"With must not mutate the parent")
}

func TestLogger_Named(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)

	log.Named("engine").Named("canon").Info("ranked")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "engine.canon", entries[0].LoggerName)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"defaults", Config{}},
		{"json info", Config{Level: "info", Format: "json"}},
		{"console debug", Config{Level: "debug", Format: "console", OutputPaths: []string{"stderr"}}},
		{"unknown level falls back", Config{Level: "loud"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, err := New(tc.cfg)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestNop(t *testing.T) {
	log := NewNop()
	assert.NotPanics(t, func() {
		log.Debug("x")
		log.Info("x", String("k", "v"))
		log.Warn("x")
		log.Error("x")
		log.With(Int("i", 1)).Named("sub").Info("x")
	})
}

func TestDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	log, _ := observed(zapcore.DebugLevel)
	SetDefault(log)
	assert.Equal(t, log, Default())

	SetDefault(nil)
	assert.Equal(t, log, Default(), "nil is ignored")
}
