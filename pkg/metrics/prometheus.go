// Package metrics provides Prometheus metrics for the fflboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector used by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// League provider
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	providerRetries  *prometheus.CounterVec

	// Ownership ranking
	candidatesFetched *prometheus.CounterVec
	candidatesSkipped prometheus.Counter
	duplicatesMerged  prometheus.Counter
	leaderboardSize   prometheus.Gauge
	rankingDuration   prometheus.Histogram
	rankingRuns       *prometheus.CounterVec
	transactionsCount prometheus.Counter
	cacheLookups      *prometheus.CounterVec
	activeTeams       prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fflboard",
		subsystem:        "league",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for all collectors
	auto := promauto.With(m.registry)

	m.providerRequests = auto.NewCounterVec(
		m.counterOpts("provider_requests_total", "League provider requests by view and status"),
		[]string{"view", "status"},
	)
	m.providerLatency = auto.NewHistogramVec(
		m.histogramOpts("provider_request_duration_milliseconds", "League provider request latency in milliseconds"),
		[]string{"view"},
	)
	m.providerRetries = auto.NewCounterVec(
		m.counterOpts("provider_retries_total", "League provider retries by view"),
		[]string{"view"},
	)

	m.candidatesFetched = auto.NewCounterVec(
		m.counterOpts("candidates_fetched_total", "Free-agent candidates fetched by position"),
		[]string{"position"},
	)
	m.candidatesSkipped = auto.NewCounter(
		m.counterOpts("candidates_skipped_total", "Candidates dropped for missing a player id"),
	)
	m.duplicatesMerged = auto.NewCounter(
		m.counterOpts("candidates_duplicate_total", "Candidates seen under more than one position query"),
	)
	m.leaderboardSize = auto.NewGauge(
		m.gaugeOpts("leaderboard_entries", "Number of entries in the last leaderboard"),
	)
	m.rankingDuration = auto.NewHistogram(
		m.histogramOpts("ranking_duration_milliseconds", "End-to-end leaderboard build time in milliseconds"),
	)
	m.rankingRuns = auto.NewCounterVec(
		m.counterOpts("ranking_runs_total", "Leaderboard builds by outcome"),
		[]string{"outcome"},
	)
	m.transactionsCount = auto.NewCounter(
		m.counterOpts("transactions_summarized_total", "Transactions counted into activity summaries"),
	)
	m.cacheLookups = auto.NewCounterVec(
		m.counterOpts("cache_lookups_total", "League snapshot cache lookups by result"),
		[]string{"result"},
	)
	m.activeTeams = auto.NewGauge(
		m.gaugeOpts("teams", "Number of teams in the league"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "HTTP errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_bytes", "Allocated heap memory in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutines", "Number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_milliseconds", "Average GC pause in milliseconds"),
	)
}

// GetRegistry returns the registry the global manager writes to.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers operate on the global manager.

// RecordProviderRequest counts one provider request and its latency.
func RecordProviderRequest(view, status string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.providerRequests.WithLabelValues(view, status).Inc()
	globalManager.providerLatency.WithLabelValues(view).Observe(durationMs)
}

// RecordProviderRetry counts one retry of a provider request.
func RecordProviderRetry(view string) {
	if !globalManager.enabled {
		return
	}
	globalManager.providerRetries.WithLabelValues(view).Inc()
}

// RecordCandidatesFetched adds n fetched candidates for a position.
func RecordCandidatesFetched(position string, n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.candidatesFetched.WithLabelValues(position).Add(float64(n))
}

// RecordCandidatesSkipped adds n malformed candidates.
func RecordCandidatesSkipped(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.candidatesSkipped.Add(float64(n))
}

// RecordDuplicatesMerged adds n candidates collapsed by player id.
func RecordDuplicatesMerged(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.duplicatesMerged.Add(float64(n))
}

// RecordRankingRun records a leaderboard build.
func RecordRankingRun(outcome string, entries int, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.rankingRuns.WithLabelValues(outcome).Inc()
	globalManager.rankingDuration.Observe(durationMs)
	if outcome == "ok" {
		globalManager.leaderboardSize.Set(float64(entries))
	}
}

// RecordTransactionsSummarized adds n counted transactions.
func RecordTransactionsSummarized(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.transactionsCount.Add(float64(n))
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(hit bool) {
	if !globalManager.enabled {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	globalManager.cacheLookups.WithLabelValues(result).Inc()
}

// UpdateTeamCount sets the number of league teams.
func UpdateTeamCount(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.activeTeams.Set(float64(n))
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent counts an error raised inside a component.
func RecordErrorByComponent(component, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint counts an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap size in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGCPauseTime.Observe(pauseMs)
}
