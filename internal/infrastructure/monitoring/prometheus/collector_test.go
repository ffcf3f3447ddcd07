package prometheus

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemGraph-Engine/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "chemgraph_test"}, logging.NewNop())
	require.NoError(t, err)
	return c
}

func scrape(t *testing.T, c MetricsCollector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, logging.NewNop())
	assert.Error(t, err)
}

func TestRegisterCounter(t *testing.T) {
	c := newTestCollector(t)

	counter := c.RegisterCounter("parse_total", "parses", "result")
	counter.WithLabelValues("ok").Inc()
	counter.WithLabelValues("ok").Add(2)
	counter.WithLabelValues("SMI_001").Inc()

	body := scrape(t, c)
	assert.Contains(t, body, `chemgraph_test_parse_total{result="ok"} 3`)
	assert.Contains(t, body, `chemgraph_test_parse_total{result="SMI_001"} 1`)
}

func TestRegisterGauge(t *testing.T) {
	c := newTestCollector(t)

	gauge := c.RegisterGauge("cache_entries", "entries", "backend")
	gauge.WithLabelValues("memory").Set(10)
	gauge.WithLabelValues("memory").Inc()
	gauge.WithLabelValues("memory").Dec()

	assert.Contains(t, scrape(t, c), `chemgraph_test_cache_entries{backend="memory"} 10`)
}

func TestRegisterHistogram(t *testing.T) {
	c := newTestCollector(t)

	hist := c.RegisterHistogram("parse_duration_seconds", "durations", []float64{0.01, 0.1, 1}, "kind")
	hist.WithLabelValues("smiles").Observe(0.05)
	hist.WithLabelValues("smiles").Observe(0.5)

	body := scrape(t, c)
	assert.Contains(t, body, `chemgraph_test_parse_duration_seconds_count{kind="smiles"} 2`)
	assert.Contains(t, body, `chemgraph_test_parse_duration_seconds_bucket{kind="smiles",le="0.1"} 1`)
}

func TestRegister_DuplicateReturnsExisting(t *testing.T) {
	c := newTestCollector(t)

	first := c.RegisterCounter("dup_total", "dup", "l")
	second := c.RegisterCounter("dup_total", "dup", "l")

	first.WithLabelValues("a").Inc()
	second.WithLabelValues("a").Inc()

	assert.Contains(t, scrape(t, c), `chemgraph_test_dup_total{l="a"} 2`,
		"both handles feed one instrument")
}

func TestRegister_ConflictDegradesToNoop(t *testing.T) {
	c := newTestCollector(t)

	c.RegisterCounter("clash_total", "as counter")
	// Same name, different instrument type: registration fails and the
	// caller gets a no-op instead of a panic.
	gauge := c.RegisterGauge("clash_total", "as gauge")
	assert.NotPanics(t, func() {
		gauge.WithLabelValues().Set(1)
	})
}

func TestConstLabels(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{
		Namespace:   "chemgraph_test",
		ConstLabels: map[string]string{"instance": "test-1"},
	}, logging.NewNop())
	require.NoError(t, err)

	c.RegisterCounter("labeled_total", "labeled").WithLabelValues().Inc()
	assert.Contains(t, scrape(t, c), `instance="test-1"`)
}

func TestProcessAndGoCollectors(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{
		Namespace:       "chemgraph_test",
		EnableGoMetrics: true,
	}, logging.NewNop())
	require.NoError(t, err)

	assert.True(t, strings.Contains(scrape(t, c), "go_goroutines"))
}

func TestTimer(t *testing.T) {
	c := newTestCollector(t)
	hist := c.RegisterHistogram("timed_seconds", "timed", nil, "op")

	timer := NewTimer(hist.WithLabelValues("x"))
	time.Sleep(time.Millisecond)
	timer.ObserveDuration()

	assert.Contains(t, scrape(t, c), `chemgraph_test_timed_seconds_count{op="x"} 1`)
}

func TestTimer_NilHistogram(t *testing.T) {
	timer := NewTimer(nil)
	assert.NotPanics(t, timer.ObserveDuration)
}
