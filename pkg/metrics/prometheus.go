// Package metrics provides Prometheus metrics for the duty finder service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Parsing metrics
	schedulesParsed prometheus.Counter
	parseFailures   prometheus.Counter
	dutiesExtracted prometheus.Counter
	blocksDropped   prometheus.Counter
	parseDuration   prometheus.Histogram
	strategyHits    *prometheus.CounterVec
	parseInputLines prometheus.Histogram

	// Lookup metrics
	lookups      prometheus.Counter
	lookupMisses prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "dutyfinder",
		subsystem:        "parser",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.schedulesParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "schedules_parsed_total",
		Help:      "Total number of schedule texts parsed successfully",
	})

	m.parseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parse_failures_total",
		Help:      "Total number of parse calls that recovered no duties",
	})

	m.dutiesExtracted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duties_extracted_total",
		Help:      "Total number of duty records extracted across all parses",
	})

	m.blocksDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "blocks_dropped_total",
		Help:      "Total number of course blocks that yielded no room match",
	})

	m.parseDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parse_duration_milliseconds",
		Help:      "Histogram of schedule parse duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.strategyHits = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "strategy_hits_total",
			Help:      "Course blocks resolved per extraction strategy",
		},
		[]string{"strategy"},
	)

	m.parseInputLines = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parse_input_lines",
		Help:      "Histogram of input line counts per parse call",
		Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 20000},
	})

	m.lookups = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookups_total",
		Help:      "Total number of invigilator lookups",
	})

	m.lookupMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookup_misses_total",
		Help:      "Total number of lookups that matched no duty record",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers against the global manager.

// RecordScheduleParsed increments the successful-parse counter.
func RecordScheduleParsed() {
	globalManager.schedulesParsed.Inc()
}

// RecordParseFailure increments the empty-parse counter.
func RecordParseFailure() {
	globalManager.parseFailures.Inc()
}

// RecordDutiesExtracted adds to the extracted-duty counter.
func RecordDutiesExtracted(n int) {
	globalManager.dutiesExtracted.Add(float64(n))
}

// RecordBlockDropped increments the dropped-block counter.
func RecordBlockDropped() {
	globalManager.blocksDropped.Inc()
}

// RecordParseDuration observes a parse duration in milliseconds.
func RecordParseDuration(ms float64) {
	globalManager.parseDuration.Observe(ms)
}

// RecordStrategyHit counts a block resolved by the named strategy.
func RecordStrategyHit(strategy string) {
	globalManager.strategyHits.WithLabelValues(strategy).Inc()
}

// RecordParseInputLines observes the line count of one parse call.
func RecordParseInputLines(n int) {
	globalManager.parseInputLines.Observe(float64(n))
}

// RecordLookup increments the lookup counter.
func RecordLookup() {
	globalManager.lookups.Inc()
}

// RecordLookupMiss increments the lookup-miss counter.
func RecordLookupMiss() {
	globalManager.lookupMisses.Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// UpdateSystemMemoryUsage sets the heap usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime observes an average GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by the service.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
