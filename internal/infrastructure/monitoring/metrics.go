package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Embed instance metrics
	EmbedsActive prometheus.Gauge
	EmbedsTotal  prometheus.Counter
	EmbedsClosed *prometheus.CounterVec

	// Channel metrics
	ChannelConnections prometheus.Gauge
	ChannelMessages    *prometheus.CounterVec
	EventsForwarded    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		EmbedsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gateway_embeds_active",
				Help: "Number of active embed instances",
			},
		),
		EmbedsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gateway_embeds_total",
				Help: "Total number of embed instances created",
			},
		),
		EmbedsClosed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_embeds_closed_total",
				Help: "Total number of embed instances closed",
			},
			[]string{"reason"},
		),

		ChannelConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gateway_channel_connections",
				Help: "Number of active frame channel connections",
			},
		),
		ChannelMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_channel_messages_total",
				Help: "Total number of frame channel messages relayed",
			},
			[]string{"direction"},
		),
		EventsForwarded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_events_forwarded_total",
				Help: "Total number of embed events forwarded to channel clients",
			},
			[]string{"event"},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gateway_uptime_seconds",
				Help: "Gateway uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordEmbedCreated records a new embed instance.
func (m *Metrics) RecordEmbedCreated() {
	m.EmbedsTotal.Inc()
	m.EmbedsActive.Inc()
}

// RecordEmbedClosed records an embed instance teardown.
func (m *Metrics) RecordEmbedClosed(reason string) {
	m.EmbedsActive.Dec()
	m.EmbedsClosed.WithLabelValues(reason).Inc()
}
