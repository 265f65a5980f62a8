// Package metrics exposes Prometheus metrics for the awards API and worker.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Vote submission outcomes used as the "outcome" label.
const (
	OutcomeAccepted    = "accepted"
	OutcomeDuplicate   = "duplicate"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeReconciled  = "reconciled"
)

// Manager owns every collector and the registry they are registered on.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	voteSubmissions     *prometheus.CounterVec
	likes               *prometheus.CounterVec
	nominations         prometheus.Counter
	cacheLookups        *prometheus.CounterVec
	jobsEnqueued        *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var defaultManager = NewManager() //nolint:gochecknoglobals // process-wide metrics

// NewManager creates a Manager on a fresh registry unless WithRegistry is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "awards",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.voteSubmissions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "vote_submissions_total",
		Help:      "Vote submissions by outcome",
	}, []string{"outcome"})

	m.likes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "nominee_likes_total",
		Help:      "Like attempts by outcome",
	}, []string{"outcome"})

	m.nominations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "nominations_total",
		Help:      "Nominations received",
	})

	m.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by key family and result",
	}, []string{"cache", "result"})

	m.jobsEnqueued = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "jobs_enqueued_total",
		Help:      "Background jobs enqueued by task type and result",
	}, []string{"task", "result"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method", "status_code"})
}

func (m *Manager) RecordVoteSubmission(outcome string) {
	m.voteSubmissions.WithLabelValues(outcome).Inc()
}

func (m *Manager) RecordLike(outcome string) {
	m.likes.WithLabelValues(outcome).Inc()
}

func (m *Manager) RecordNomination() {
	m.nominations.Inc()
}

func (m *Manager) RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}

func (m *Manager) RecordJobEnqueued(task string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.jobsEnqueued.WithLabelValues(task, result).Inc()
}

func (m *Manager) RecordHTTPRequest(route, method, statusCode string, seconds float64) {
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(seconds)
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the manager's registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level helpers for the default manager.

func RecordVoteSubmission(outcome string) { defaultManager.RecordVoteSubmission(outcome) }
func RecordLike(outcome string)           { defaultManager.RecordLike(outcome) }
func RecordNomination()                   { defaultManager.RecordNomination() }
func RecordCacheLookup(cache string, hit bool) {
	defaultManager.RecordCacheLookup(cache, hit)
}
func RecordJobEnqueued(task string, err error) { defaultManager.RecordJobEnqueued(task, err) }
func RecordHTTPRequest(route, method, statusCode string, seconds float64) {
	defaultManager.RecordHTTPRequest(route, method, statusCode, seconds)
}
func Handler() http.Handler { return defaultManager.Handler() }
