package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for DAO calls.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// MetricsSnapshot aggregates DAO call statistics for display.
type MetricsSnapshot struct {
	CallsTotal            uint64    `json:"calls_total"`
	CallFailures          uint64    `json:"call_failures"`
	AverageCallDurationMs float64   `json:"average_call_duration_ms"`
	RequestsTotal         uint64    `json:"requests_total"`
	Goroutines            int       `json:"goroutines"`
	GeneratedAt           time.Time `json:"generated_at"`
}

// MetricsService encapsulates Prometheus instrumentation for the DAOs and the mock backend.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	callTotal       *prometheus.CounterVec
	callDuration    *prometheus.HistogramVec
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	callCount         uint64
	callFailureCount  uint64
	callDurationTotal uint64
	requestCount      uint64
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	callTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dao_requests_total",
		Help: "Total number of DAO calls against the REST backend",
	}, []string{"entity", "operation", "outcome"})

	callDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dao_request_duration_seconds",
		Help:    "Duration of DAO calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity", "operation"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(callTotal, callDuration, requestDuration, requestTotal, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		callTotal:       callTotal,
		callDuration:    callDuration,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveCall records one DAO call.
func (m *MetricsService) ObserveCall(entity, operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
		atomic.AddUint64(&m.callFailureCount, 1)
	}
	m.callTotal.WithLabelValues(entity, operation, outcome).Inc()
	m.callDuration.WithLabelValues(entity, operation).Observe(duration.Seconds())
	atomic.AddUint64(&m.callCount, 1)
	atomic.AddUint64(&m.callDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveHTTPRequest records one request served by the mock backend.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
}

// Snapshot returns aggregated counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	calls := atomic.LoadUint64(&m.callCount)
	total := atomic.LoadUint64(&m.callDurationTotal)

	var avg float64
	if calls > 0 {
		avg = float64(total) / float64(calls) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		CallsTotal:            calls,
		CallFailures:          atomic.LoadUint64(&m.callFailureCount),
		AverageCallDurationMs: avg,
		RequestsTotal:         atomic.LoadUint64(&m.requestCount),
		Goroutines:            runtime.NumGoroutine(),
		GeneratedAt:           time.Now().UTC(),
	}
}
