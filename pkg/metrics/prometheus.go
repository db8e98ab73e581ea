// Package metrics provides Prometheus metrics for the vitrine dashboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// defaultRecomputeBuckets spans sub-millisecond memo hits to full passes over
// large catalogs.
var defaultRecomputeBuckets = []float64{0.25, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000} //nolint:gochecknoglobals // default buckets

// Manager manages all Prometheus metrics for the vitrine service.
type Manager struct {
	namespace        string
	subsystem        string
	latencyBuckets   []float64 // seconds
	recomputeBuckets []float64 // milliseconds
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Dataset Metrics - What was loaded at startup
	datasetRows         prometheus.Gauge
	datasetLoadFailures prometheus.Counter
	datasetLoadDuration prometheus.Histogram

	// Dashboard Metrics - The recompute pipeline
	recomputations    prometheus.Counter
	recomputeLatency  prometheus.Histogram
	globalRows        prometheus.Gauge
	emptyResults      *prometheus.CounterVec
	chartRenders      *prometheus.CounterVec
	chartRenderErrors *prometheus.CounterVec
	chartRenderBytes  *prometheus.HistogramVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "vitrine",
		subsystem:        "dashboard",
		latencyBuckets:   prometheus.DefBuckets,
		recomputeBuckets: defaultRecomputeBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval reports how often gauge updaters should sample.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Enabled reports whether collection is on.
func (m *Manager) Enabled() bool { return m.enabled }

// name applies the configured metric prefix.
func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	// Dataset Metrics
	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("dataset_rows"),
		Help:        "Number of product rows in the loaded dataset",
		ConstLabels: constLabels,
	})

	m.datasetLoadFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("dataset_load_failures_total"),
		Help:        "Dataset loads that degraded to an empty table",
		ConstLabels: constLabels,
	})

	m.datasetLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("dataset_load_duration_milliseconds"),
		Help:        "Time spent reading and parsing the dataset",
		Buckets:     []float64{1, 5, 10, 50, 100, 250, 500, 1000, 5000},
		ConstLabels: constLabels,
	})

	// Dashboard Metrics
	m.recomputations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("recomputations_total"),
		Help:        "Total number of full dashboard recomputations",
		ConstLabels: constLabels,
	})

	m.recomputeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("recompute_latency_milliseconds"),
		Help:        "Histogram of dashboard recompute latency in milliseconds",
		Buckets:     m.recomputeBuckets,
		ConstLabels: constLabels,
	})

	m.globalRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("global_rows"),
		Help:        "Rows left after the global filters of the last recompute",
		ConstLabels: constLabels,
	})

	m.emptyResults = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("empty_results_total"),
			Help:        "Charts or KPIs that fell back to their empty sentinel",
			ConstLabels: constLabels,
		},
		[]string{"chart"},
	)

	m.chartRenders = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("chart_renders_total"),
			Help:        "Total number of PNG chart renders",
			ConstLabels: constLabels,
		},
		[]string{"chart"},
	)

	m.chartRenderErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("chart_render_errors_total"),
			Help:        "Total number of failed PNG chart renders",
			ConstLabels: constLabels,
		},
		[]string{"chart"},
	)

	m.chartRenderBytes = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("chart_render_bytes"),
			Help:        "Size of rendered PNG charts in bytes",
			Buckets:     prometheus.ExponentialBuckets(1024, 2, 10),
			ConstLabels: constLabels,
		},
		[]string{"chart"},
	)

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_requests_total"),
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_request_duration_seconds"),
			Help:        "HTTP request duration in seconds",
			Buckets:     m.latencyBuckets,
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_component_total"),
			Help:        "Total number of errors by component",
			ConstLabels: constLabels,
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_type_total"),
			Help:        "Total number of errors by type",
			ConstLabels: constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_endpoint_total"),
			Help:        "Total number of errors by endpoint",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: constLabels,
	})
}

// Dataset Metrics Functions.

// UpdateDatasetRows sets the number of loaded product rows.
func UpdateDatasetRows(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetRows.Set(float64(count))
}

// RecordDatasetLoadFailure increments the degraded-load counter.
func RecordDatasetLoadFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetLoadFailures.Inc()
}

// RecordDatasetLoadDuration records how long the dataset load took.
func RecordDatasetLoadDuration(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetLoadDuration.Observe(latencyMs)
}

// Dashboard Metrics Functions.

// RecordRecompute increments the recompute counter and observes its latency.
func RecordRecompute(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.recomputations.Inc()
	globalManager.recomputeLatency.Observe(latencyMs)
}

// UpdateGlobalRows sets the row count after global filtering.
func UpdateGlobalRows(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.globalRows.Set(float64(count))
}

// RecordEmptyResult counts a chart or KPI block that produced its sentinel.
func RecordEmptyResult(chart string) {
	if !globalManager.enabled {
		return
	}
	globalManager.emptyResults.WithLabelValues(chart).Inc()
}

// RecordChartRender counts a successful PNG render and its size.
func RecordChartRender(chart string, bytes int) {
	if !globalManager.enabled {
		return
	}
	globalManager.chartRenders.WithLabelValues(chart).Inc()
	globalManager.chartRenderBytes.WithLabelValues(chart).Observe(float64(bytes))
}

// RecordChartRenderError counts a failed PNG render.
func RecordChartRenderError(chart string) {
	if !globalManager.enabled {
		return
	}
	globalManager.chartRenderErrors.WithLabelValues(chart).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Enhanced Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// RefreshInterval returns the sampling interval of the global manager.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
