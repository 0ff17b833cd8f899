package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"erp-console/internal/session"
)

// Metrics holds the console's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	// Console HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Upstream ERP API metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Session lifecycle
	SessionEventsTotal *prometheus.CounterVec
	GuardDecisions     *prometheus.CounterVec
}

// New creates every collector and registers it on registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erp_console_http_requests_total",
				Help: "Total number of console HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "erp_console_http_request_duration_seconds",
				Help:    "Console HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erp_console_api_requests_total",
				Help: "Total number of requests sent to the ERP API",
			},
			[]string{"code", "method"},
		),
		APIRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "erp_console_api_request_duration_seconds",
				Help:    "ERP API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		SessionEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erp_console_session_events_total",
				Help: "Session store mutations by event",
			},
			[]string{"event"},
		),
		GuardDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erp_console_guard_decisions_total",
				Help: "Route guard verdicts",
			},
			[]string{"verdict"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.APIRequestsTotal,
		m.APIRequestDuration,
		m.SessionEventsTotal,
		m.GuardDecisions,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Transport wraps next so every ERP API call is counted and timed.
func (m *Metrics) Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(m.APIRequestsTotal,
		promhttp.InstrumentRoundTripperDuration(m.APIRequestDuration, next))
}

// ObserveSession is a session.Store observer.
func (m *Metrics) ObserveSession(snap session.Snapshot) {
	if snap.Event == session.EventNone {
		return
	}
	m.SessionEventsTotal.WithLabelValues(string(snap.Event)).Inc()
}

func (m *Metrics) ObserveVerdict(verdict string) {
	m.GuardDecisions.WithLabelValues(verdict).Inc()
}
