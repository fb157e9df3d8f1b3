package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the agent
type Metrics struct {
	// Boot-time detection metrics
	faultsConsumed prometheus.Counter
	detectAbsent   prometheus.Counter

	// Archive metrics
	archivedRecords prometheus.Gauge

	// HTTP request metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates all agent metrics and registers them with reg. Each
// server owns its own registry so tests can build servers independently.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		faultsConsumed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "muninn_faults_consumed_total",
				Help: "Total number of fault records consumed from the region at boot",
			},
		),

		detectAbsent: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "muninn_detect_absent_total",
				Help: "Total number of boot-time scans that found no valid fault record",
			},
		),

		archivedRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "muninn_archived_records",
				Help: "Number of fault records currently in the archive",
			},
		),

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "muninn_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "muninn_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
	}
}

// RecordConsumed records a successful boot-time consumption
func (m *Metrics) RecordConsumed() {
	m.faultsConsumed.Inc()
}

// RecordAbsent records a boot-time scan that found nothing
func (m *Metrics) RecordAbsent() {
	m.detectAbsent.Inc()
}

// SetArchivedRecords updates the archive size gauge
func (m *Metrics) SetArchivedRecords(n int) {
	m.archivedRecords.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
