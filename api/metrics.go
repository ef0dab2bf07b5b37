package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stsysd/collisionviz/model"
)

// Metrics holds the server's prometheus collectors.
type Metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	renders   *prometheus.CounterVec
	commits   *prometheus.CounterVec
	available *prometheus.GaugeVec
	sessions  prometheus.GaugeFunc
}

// NewMetrics registers the collectors on a fresh registry. sessions reports
// the number of live viewer sessions.
func NewMetrics(sessions func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collisionviz",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "collisionviz",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collisionviz",
			Name:      "renders_total",
			Help:      "Rendered visualizations by chart and outcome.",
		}, []string{"chart", "outcome"}),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collisionviz",
			Name:      "range_commits_total",
			Help:      "Committed year range changes by source.",
		}, []string{"source"}),
		available: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "collisionviz",
			Name:      "chart_available",
			Help:      "1 when the chart's dataset loaded, 0 otherwise.",
		}, []string{"chart", "reason"}),
		sessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "collisionviz",
			Name:      "sessions",
			Help:      "Live viewer sessions.",
		}, func() float64 { return float64(sessions()) }),
	}
	m.registry.MustRegister(m.requests, m.latency, m.renders, m.commits, m.available, m.sessions)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency by route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Rendered counts one render of chart.
func (m *Metrics) Rendered(chart string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.renders.WithLabelValues(chart, outcome).Inc()
}

// Committed counts one range commit.
func (m *Metrics) Committed(source string) {
	m.commits.WithLabelValues(source).Inc()
}

// SetAvailable records the load outcome of chart.
func (m *Metrics) SetAvailable(chart string, err error) {
	reason := "ok"
	switch {
	case err == nil:
	case errors.Is(err, model.ErrResourceUnavailable):
		reason = "resource_unavailable"
	case errors.Is(err, model.ErrSchemaMismatch):
		reason = "schema_mismatch"
	case errors.Is(err, model.ErrEmptyDataset):
		reason = "empty_dataset"
	default:
		reason = "error"
	}
	v := 0.0
	if err == nil {
		v = 1
	}
	m.available.WithLabelValues(chart, reason).Set(v)
}
