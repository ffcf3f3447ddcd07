package prometheus

// EngineMetrics holds every instrument the molecule engine emits.  All
// instruments are registered once at startup through NewEngineMetrics and
// injected where needed.
type EngineMetrics struct {
	// Parsing
	ParseTotal       CounterVec // result: "ok" | error code
	ParseDuration    HistogramVec
	ParseAtomCount   HistogramVec
	ValidationsTotal CounterVec // result: "valid" | "invalid"

	// Canonicalization and ring perception
	CanonicalDuration HistogramVec
	RingCount         HistogramVec

	// Fingerprints and similarity
	FingerprintDuration HistogramVec
	SimilarityTotal     CounterVec
	SimilarityScore     HistogramVec

	// Substructure search
	MatchTotal    CounterVec // outcome: "hit" | "miss"
	MatchDuration HistogramVec

	// Cache
	CacheHitsTotal   CounterVec // cache: "canonical" | "fingerprint" | "properties"
	CacheMissesTotal CounterVec

	// Health
	ErrorsTotal CounterVec // component, code
}

var (
	defaultDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5}
	atomCountBuckets       = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}
	scoreBuckets           = []float64{0, .1, .2, .3, .4, .5, .6, .7, .8, .9, 1}
)

// NewEngineMetrics registers all engine instruments on the collector.
func NewEngineMetrics(collector MetricsCollector) *EngineMetrics {
	m := &EngineMetrics{}

	m.ParseTotal = collector.RegisterCounter("parse_total", "SMILES parse attempts", "result")
	m.ParseDuration = collector.RegisterHistogram("parse_duration_seconds", "SMILES parse duration", defaultDurationBuckets, "kind")
	m.ParseAtomCount = collector.RegisterHistogram("parse_atom_count", "Atoms per parsed molecule", atomCountBuckets, "kind")
	m.ValidationsTotal = collector.RegisterCounter("validations_total", "Validation verdicts", "result")

	m.CanonicalDuration = collector.RegisterHistogram("canonical_duration_seconds", "Canonicalization duration", defaultDurationBuckets, "operation")
	m.RingCount = collector.RegisterHistogram("ring_count", "Rings perceived per molecule", []float64{0, 1, 2, 3, 4, 6, 8, 12, 16}, "aromatic")

	m.FingerprintDuration = collector.RegisterHistogram("fingerprint_duration_seconds", "Fingerprint generation duration", defaultDurationBuckets, "source")
	m.SimilarityTotal = collector.RegisterCounter("similarity_total", "Similarity computations", "result")
	m.SimilarityScore = collector.RegisterHistogram("similarity_score", "Tanimoto score distribution", scoreBuckets, "source")

	m.MatchTotal = collector.RegisterCounter("match_total", "Substructure searches", "outcome")
	m.MatchDuration = collector.RegisterHistogram("match_duration_seconds", "Substructure search duration", defaultDurationBuckets, "outcome")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by component and code", "component", "code")

	return m
}
