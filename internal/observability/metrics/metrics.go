// Package metrics exposes the portal's Prometheus instruments.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what HTTP middleware, services and the backend client report to.
type Recorder interface {
	RecordGuardDecision(guard, outcome string)
	RecordHTTPRequest(route, method string, status int, d time.Duration)
	RecordBackendRequest(endpoint string, status int, errClass string, d time.Duration)
	RecordAuthAttempt(action, result string)
	RecordRateLimited(route string)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	guardDecisions  *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	backendRequests *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	authAttempts    *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector builds a Collector and registers its instruments on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_guard_decisions_total",
			Help: "Route guard decisions by guard kind and outcome.",
		}, []string{"guard", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "HTTP requests served, by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_backend_requests_total",
			Help: "Calls to the member backend by endpoint, status and error class.",
		}, []string{"endpoint", "status", "error_class"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_backend_request_duration_seconds",
			Help:    "Member backend call latency by endpoint.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_auth_attempts_total",
			Help: "Authentication actions by action and result.",
		}, []string{"action", "result"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter.",
		}, []string{"route"}),
	}

	reg.MustRegister(
		c.guardDecisions,
		c.httpRequests,
		c.httpLatency,
		c.backendRequests,
		c.backendLatency,
		c.authAttempts,
		c.rateLimited,
	)
	return c
}

// RegisterRuntime adds the standard Go and process collectors to reg.
func RegisterRuntime(reg prometheus.Registerer) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func (c *Collector) RecordGuardDecision(guard, outcome string) {
	c.guardDecisions.WithLabelValues(guard, outcome).Inc()
}

func (c *Collector) RecordHTTPRequest(route, method string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(route).Observe(d.Seconds())
}

// RecordBackendRequest records one backend call. status is 0 when no response arrived.
func (c *Collector) RecordBackendRequest(endpoint string, status int, errClass string, d time.Duration) {
	c.backendRequests.WithLabelValues(endpoint, strconv.Itoa(status), errClass).Inc()
	c.backendLatency.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (c *Collector) RecordAuthAttempt(action, result string) {
	c.authAttempts.WithLabelValues(action, result).Inc()
}

func (c *Collector) RecordRateLimited(route string) {
	c.rateLimited.WithLabelValues(route).Inc()
}

// Nop discards everything. It is the default when no Recorder is configured.
type Nop struct{}

func (Nop) RecordGuardDecision(string, string) {}
func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordBackendRequest(string, int, string, time.Duration) {}
func (Nop) RecordAuthAttempt(string, string) {}
func (Nop) RecordRateLimited(string) {}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}
	return r
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
