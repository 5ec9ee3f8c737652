// Package metrics provides Prometheus metrics for the parlay API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIMetrics collects and exposes service-level Prometheus metrics.
type APIMetrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	SuggestionsTotal *prometheus.CounterVec
	ProviderErrors   *prometheus.CounterVec
}

// New creates the metrics set on a private registry.
func New() *APIMetrics {
	registry := prometheus.NewRegistry()

	m := &APIMetrics{
		registry: registry,

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parlay_api_requests_total",
				Help: "HTTP requests by method and status.",
			},
			[]string{"method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "parlay_api_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		SuggestionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parlay_api_suggestions_total",
				Help: "Daily suggestion responses by source (ai or fallback).",
			},
			[]string{"source"},
		),
		ProviderErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parlay_api_provider_errors_total",
				Help: "Upstream provider failures by provider name.",
			},
			[]string{"provider"},
		),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.SuggestionsTotal,
		m.ProviderErrors,
	)

	return m
}

// Handler serves the /metrics endpoint.
func (m *APIMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Instrument is HTTP middleware recording request counts and latency.
func (m *APIMetrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		m.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		m.RequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
