// Package metrics provides Prometheus metrics for the registry
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the registry
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Remote store metrics
	StoreOperationsTotal   *prometheus.CounterVec
	StoreOperationDuration *prometheus.HistogramVec

	// Access metrics
	LoginAttemptsTotal *prometheus.CounterVec
}

// NewMetrics creates all metrics on a private registry, plus Go runtime collectors
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{registry: reg}

	m.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regdocs_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "code"},
	)

	m.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "regdocs_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.StoreOperationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regdocs_store_operations_total",
			Help: "Total number of spreadsheet and drive operations",
		},
		[]string{"store", "operation", "status"},
	)

	m.StoreOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "regdocs_store_operation_duration_seconds",
			Help:    "Duration of spreadsheet and drive operations in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"store", "operation"},
	)

	m.LoginAttemptsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regdocs_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"role", "result"},
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records one served request
func (m *Metrics) RecordHTTPRequest(method, route, code string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordStoreOperation records one remote store call
func (m *Metrics) RecordStoreOperation(store, operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.StoreOperationsTotal.WithLabelValues(store, operation, status).Inc()
	m.StoreOperationDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
}

// RecordLogin records a login attempt
func (m *Metrics) RecordLogin(role string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	m.LoginAttemptsTotal.WithLabelValues(role, result).Inc()
}
