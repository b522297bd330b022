// Package metrics provides Prometheus metrics for the trazo inference
// gateway.
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

// Manager manages all Prometheus metrics for the trazo service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Inference path
	predictionsTotal  prometheus.Counter
	predictionLatency prometheus.Histogram
	predictionErrors  prometheus.Counter
	notAnImageTotal   prometheus.Counter
	malformedPixels   prometheus.Counter

	// Connection pool
	poolTotalConns     prometheus.Gauge
	poolIdleConns      prometheus.Gauge
	poolAcquiredConns  prometheus.Gauge
	poolAcquireLatency prometheus.Histogram
	poolAcquireTimeout prometheus.Counter
	poolConnsDiscarded prometheus.Counter
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
		namespace:        "trazo",
		subsystem:        "gateway",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
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

	m.predictionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Total number of inference queries executed",
	})

	m.predictionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_latency_milliseconds",
		Help:      "End-to-end inference latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.predictionErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_errors_total",
		Help:      "Total number of failed inference queries",
	})

	m.notAnImageTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "not_an_image_total",
		Help:      "Total number of request paths rejected as not an image",
	})

	m.malformedPixels = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "malformed_pixels_total",
		Help:      "Total number of payloads with non-numeric pixel values",
	})

	m.poolTotalConns = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_total_conns",
		Help:      "Current number of open database connections",
	})

	m.poolIdleConns = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_idle_conns",
		Help:      "Current number of idle database connections",
	})

	m.poolAcquiredConns = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_acquired_conns",
		Help:      "Current number of checked-out database connections",
	})

	m.poolAcquireLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_acquire_latency_milliseconds",
		Help:      "Connection acquisition wait time in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.poolAcquireTimeout = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_acquire_timeouts_total",
		Help:      "Total number of acquisitions that timed out",
	})

	m.poolConnsDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_conns_discarded_total",
		Help:      "Total number of connections discarded after fatal errors",
	})
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordPrediction increments the prediction counter.
func RecordPrediction() {
	globalManager.predictionsTotal.Inc()
}

// RecordPredictionLatency records end-to-end inference latency.
func RecordPredictionLatency(latencyMs float64) {
	globalManager.predictionLatency.Observe(latencyMs)
}

// RecordPredictionError increments the failed inference counter.
func RecordPredictionError() {
	globalManager.predictionErrors.Inc()
}

// RecordNotAnImage increments the not-an-image counter.
func RecordNotAnImage() {
	globalManager.notAnImageTotal.Inc()
}

// RecordMalformedPixel increments the malformed pixel counter.
func RecordMalformedPixel() {
	globalManager.malformedPixels.Inc()
}

// UpdatePoolConns sets the pool accounting gauges.
func UpdatePoolConns(total, idle, acquired int) {
	globalManager.poolTotalConns.Set(float64(total))
	globalManager.poolIdleConns.Set(float64(idle))
	globalManager.poolAcquiredConns.Set(float64(acquired))
}

// RecordPoolAcquireLatency records connection acquisition wait time.
func RecordPoolAcquireLatency(latencyMs float64) {
	globalManager.poolAcquireLatency.Observe(latencyMs)
}

// RecordPoolAcquireTimeout increments the acquisition timeout counter.
func RecordPoolAcquireTimeout() {
	globalManager.poolAcquireTimeout.Inc()
}

// RecordPoolConnDiscarded increments the discarded connection counter.
func RecordPoolConnDiscarded() {
	globalManager.poolConnsDiscarded.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
