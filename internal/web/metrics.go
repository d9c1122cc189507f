package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deepceutix/datagen/internal/ports"
)

// Metrics holds the Prometheus collectors scraped from /metrics.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	runs            *prometheus.CounterVec
	runDuration     *prometheus.HistogramVec
}

// NewMetrics registers the collectors on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datagen_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datagen_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datagen_runs_total",
			Help: "Finished runs by kind, target and status.",
		}, []string{"kind", "target", "status"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datagen_run_duration_seconds",
			Help:    "Run wall time by kind.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"kind"}),
	}
	reg.MustRegister(
		m.requests,
		m.requestDuration,
		m.runs,
		m.runDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument counts requests by chi route pattern, so path parameters do not
// explode label cardinality.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// ExportRunMetrics implements ports.MetricsExporter so finished runs are
// visible on /metrics next to the OTLP export.
func (m *Metrics) ExportRunMetrics(_ context.Context, rm *ports.RunMetrics) error {
	m.runs.WithLabelValues(rm.Kind, rm.Target, rm.Status).Inc()
	m.runDuration.WithLabelValues(rm.Kind).Observe(rm.Duration().Seconds())
	return nil
}

func (m *Metrics) Close(context.Context) error { return nil }

// FanOut sends run metrics to every exporter and returns the first error.
type FanOut []ports.MetricsExporter

func (f FanOut) ExportRunMetrics(ctx context.Context, rm *ports.RunMetrics) error {
	var first error
	for _, e := range f {
		if err := e.ExportRunMetrics(ctx, rm); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f FanOut) Close(ctx context.Context) error {
	var first error
	for _, e := range f {
		if err := e.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
