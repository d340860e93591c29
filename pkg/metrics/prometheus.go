// Package metrics provides Prometheus metrics for the lineup service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for lineup requests.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeDegraded = "degraded"
	OutcomeFailed   = "failed"
	OutcomeInvalid  = "invalid"
)

// DefaultLatencyBuckets are the millisecond bounds used by every latency
// histogram unless WithLatencyBuckets overrides them.
var DefaultLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

// SinceMs returns the time elapsed since start in fractional milliseconds.
func SinceMs(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)
}

// Manager holds every Prometheus collector of the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Pipeline
	lineupRequests     *prometheus.CounterVec
	lineupSize         prometheus.Histogram
	aggregationLatency prometheus.Histogram
	rowsAggregated     prometheus.Histogram
	missingPlayers     prometheus.Counter
	unknownTeams       prometheus.Counter
	scoringLatency     prometheus.Histogram
	scoringErrors      prometheus.Counter
	artifactLoads      *prometheus.CounterVec
	rosterTeams        prometheus.Gauge

	// Match store
	storeQueryLatency *prometheus.HistogramVec
	storeErrors       *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegisterer(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "bestxi",
		subsystem:      "lineup",
		latencyBuckets: append([]float64(nil), DefaultLatencyBuckets...),
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.latencyBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	countBuckets := []float64{0, 1, 2, 5, 11, 15, 22, 30, 50}

	m.lineupRequests = m.counterVec("requests_total",
		"Lineup requests by outcome (ok, empty, degraded, failed, invalid)", "outcome")
	m.lineupSize = m.histogram("size_players", "Number of players in returned lineups", countBuckets)
	m.aggregationLatency = m.histogram("aggregation_latency_milliseconds",
		"Time spent building player feature rows", m.latencyBuckets)
	m.rowsAggregated = m.histogram("aggregated_rows", "Feature rows produced per request", countBuckets)
	m.missingPlayers = m.counter("missing_players_total", "Requested players with no match history")
	m.unknownTeams = m.counter("unknown_teams_total", "Requested team codes with no configured roster")
	m.scoringLatency = m.histogram("scoring_latency_milliseconds",
		"Time spent in transform and predict", m.latencyBuckets)
	m.scoringErrors = m.counter("scoring_errors_total", "Failed transform or predict calls")
	m.artifactLoads = m.counterVec("artifact_loads_total", "Scoring artifact loads by result", "result")
	m.rosterTeams = m.gauge("roster_teams", "Number of configured teams")

	m.storeQueryLatency = m.histogramVec("store_query_latency_milliseconds",
		"Match store query latency", "driver")
	m.storeErrors = m.counterVec("store_errors_total", "Match store failures", "driver")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", "endpoint", "method", "status_code")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"HTTP errors by endpoint", "endpoint", "method", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total",
		"HTTP errors by type and severity", "error_type", "severity")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordLineupRequest counts a finished lineup request by outcome.
func RecordLineupRequest(outcome string) {
	globalManager.lineupRequests.WithLabelValues(outcome).Inc()
}

// RecordLineupSize observes the number of players returned.
func RecordLineupSize(n int) {
	globalManager.lineupSize.Observe(float64(n))
}

// RecordAggregationLatency records aggregation latency in milliseconds.
func RecordAggregationLatency(latencyMs float64) {
	globalManager.aggregationLatency.Observe(latencyMs)
}

// RecordRowsAggregated observes the feature rows built for one request.
func RecordRowsAggregated(n int) {
	globalManager.rowsAggregated.Observe(float64(n))
}

// RecordMissingPlayers adds players that had no history.
func RecordMissingPlayers(n int) {
	if n > 0 {
		globalManager.missingPlayers.Add(float64(n))
	}
}

// RecordUnknownTeam counts a team code that is not in the roster.
func RecordUnknownTeam() {
	globalManager.unknownTeams.Inc()
}

// RecordScoringLatency records scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordScoringError increments the scoring errors counter.
func RecordScoringError() {
	globalManager.scoringErrors.Inc()
}

// RecordArtifactLoad counts an artifact load attempt; result is "ok" or "error".
func RecordArtifactLoad(result string) {
	globalManager.artifactLoads.WithLabelValues(result).Inc()
}

// UpdateRosterTeams sets the number of configured teams.
func UpdateRosterTeams(n int) {
	globalManager.rosterTeams.Set(float64(n))
}

// RecordStoreQueryLatency records a match store query latency in milliseconds.
func RecordStoreQueryLatency(driver string, latencyMs float64) {
	globalManager.storeQueryLatency.WithLabelValues(driver).Observe(latencyMs)
}

// RecordStoreError counts a match store failure.
func RecordStoreError(driver string) {
	globalManager.storeErrors.WithLabelValues(driver).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an HTTP error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an HTTP error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
