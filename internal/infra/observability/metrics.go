package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the chat service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	messagesTotal   *prometheus.CounterVec
	parseFailures   *prometheus.CounterVec
	externalErrors  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sessionEvents   *prometheus.CounterVec
	sessionCache    *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		messagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gastos_bot_messages_total",
				Help: "Messages processed, labelled by detected intent.",
			},
			[]string{"intent"},
		),
		parseFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gastos_bot_parse_failures_total",
				Help: "Messages where a required field could not be extracted.",
			},
			[]string{"field"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gastos_bot_external_errors_total",
				Help: "Total errors from collaborator services.",
			},
			[]string{"service"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gastos_bot_request_duration_seconds",
				Help:    "Duration of operations by name.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		sessionEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gastos_bot_session_events_total",
				Help: "Session lifecycle events (login, logout, expired).",
			},
			[]string{"event"},
		),
		sessionCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gastos_bot_session_cache_total",
				Help: "Session cache lookups by result (hit, miss).",
			},
			[]string{"result"},
		),
	}
}

// IncrMessage counts a processed message under its detected intent.
func (m *Metrics) IncrMessage(intent string) {
	m.messagesTotal.WithLabelValues(intent).Inc()
}

// IncrParseFailure counts a message rejected for a missing field.
func (m *Metrics) IncrParseFailure(field string) {
	m.parseFailures.WithLabelValues(field).Inc()
}

// IncrExternalError increments the collaborator error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrSessionEvent counts a session lifecycle event.
func (m *Metrics) IncrSessionEvent(event string) {
	m.sessionEvents.WithLabelValues(event).Inc()
}

// IncrCacheHit counts a session cache lookup that found a token.
func (m *Metrics) IncrCacheHit() {
	m.sessionCache.WithLabelValues("hit").Inc()
}

// IncrCacheMiss counts a session cache lookup that came back empty.
func (m *Metrics) IncrCacheMiss() {
	m.sessionCache.WithLabelValues("miss").Inc()
}

// MessageCount returns the current counter value for an intent label.
// Used by tests to assert routing without scraping the registry.
func (m *Metrics) MessageCount(intent string) float64 {
	return getCounterValue(m.messagesTotal, intent)
}

// SessionCacheCount returns the lookup counter for "hit" or "miss".
func (m *Metrics) SessionCacheCount(result string) float64 {
	return getCounterValue(m.sessionCache, result)
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
