package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del servicio sobre un registry propio
// (un router por test no choca con el registry global).
type Metrics struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	timelineSources *prometheus.CounterVec
	grantOps        *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		timelineSources: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timeline_source_fetches_total",
				Help: "Timeline source fetches by record type and outcome",
			},
			[]string{"type", "outcome"},
		),
		grantOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "access_grant_operations_total",
				Help: "Access grant mutations by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
	}

	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.timelineSources,
		m.grantOps,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveHTTP usa el patrón de ruta (no el path) para no explotar la cardinalidad.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// TimelineSource: outcome viene de access.Kind (ok, denied, not_found, unavailable...).
func (m *Metrics) TimelineSource(recordType, outcome string) {
	m.timelineSources.WithLabelValues(recordType, outcome).Inc()
}

func (m *Metrics) GrantOp(op, outcome string) {
	m.grantOps.WithLabelValues(op, outcome).Inc()
}
