package monitoring

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Tool metrics
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec

	// Evaluation metrics, labeled by outcome (ok, invalid, nan, overflow)
	Evaluations *prometheus.CounterVec

	// Currency metrics
	Conversions *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry

	// Snapshot for JSON API - track current values
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current metric values for the JSON summary endpoint
type Snapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalEvaluations  int64   `json:"total_evaluations"`
	FailedEvaluations int64   `json:"failed_evaluations"`
	TotalConversions  int64   `json:"total_conversions"`
	ActiveConnections int64   `json:"active_connections"`
	TotalDuration     float64 `json:"-"`
	RequestCount      int64   `json:"-"`
}

// NewMetrics creates a new metrics collector with its own registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		startTime: time.Now(),
		registry:  registry,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calcdeck_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calcdeck_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),
		ToolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calcdeck_tool_calls_total",
				Help: "Total number of service tool invocations",
			},
			[]string{"tool", "status"},
		),
		ToolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calcdeck_tool_duration_seconds",
				Help:    "Service tool execution duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"tool"},
		),
		Evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calcdeck_evaluations_total",
				Help: "Total number of expression commits by outcome",
			},
			[]string{"outcome"},
		),
		Conversions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calcdeck_conversions_total",
				Help: "Total number of currency conversions by pair",
			},
			[]string{"pair", "status"},
		),
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "calcdeck_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calcdeck_ws_messages_total",
				Help: "Total number of WebSocket messages by type",
			},
			[]string{"type"},
		),
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "calcdeck_uptime_seconds",
				Help: "Server uptime in seconds",
			},
		),
	}
}

// Handler returns a gin handler serving the Prometheus exposition format
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordHTTPRequest records HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.RequestCount++
	m.snapshot.TotalDuration += duration.Seconds()
	m.mu.Unlock()
}

// RecordToolCall records a service tool invocation
func (m *Metrics) RecordToolCall(tool, status string, duration time.Duration) {
	m.ToolCalls.WithLabelValues(tool, status).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordEvaluation records an expression commit outcome
func (m *Metrics) RecordEvaluation(outcome string) {
	m.Evaluations.WithLabelValues(outcome).Inc()

	m.mu.Lock()
	m.snapshot.TotalEvaluations++
	if outcome != "ok" {
		m.snapshot.FailedEvaluations++
	}
	m.mu.Unlock()
}

// RecordConversion records a currency conversion
func (m *Metrics) RecordConversion(pair, status string) {
	m.Conversions.WithLabelValues(pair, status).Inc()

	m.mu.Lock()
	m.snapshot.TotalConversions++
	m.mu.Unlock()
}

// WSConnected increments the active connection gauge
func (m *Metrics) WSConnected() {
	m.WSConnections.Inc()

	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// WSDisconnected decrements the active connection gauge
func (m *Metrics) WSDisconnected() {
	m.WSConnections.Dec()

	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(msgType string) {
	m.WSMessages.WithLabelValues(msgType).Inc()
}

// GetSnapshot returns current metric values for the JSON API
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// UptimeSeconds returns seconds since the collector was created
func (m *Metrics) UptimeSeconds() float64 {
	return time.Since(m.startTime).Seconds()
}
