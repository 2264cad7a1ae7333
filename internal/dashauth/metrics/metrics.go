// Package metrics exposes session and handshake counters in the Prometheus
// format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dashauth"

// Results recorded for session checks and handshake exchanges.
const (
	ResultValid     = "valid"
	ResultNone      = "none"
	ResultCreated   = "created"
	ResultMissing   = "missing"
	ResultInvalid   = "invalid"
	ResultConsumed  = "consumed"
	ResultDisabled  = "issuance_disabled"
	ResultError     = "error"
	ResultRefreshed = "refreshed"
	ResultUnchanged = "unchanged"
)

// Metrics owns a private registry so tests can build as many as they like.
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	verificationFailures *prometheus.CounterVec
	sessionChecks        *prometheus.CounterVec
	handshakes           *prometheus.CounterVec
	refreshes            *prometheus.CounterVec
	requests             *prometheus.CounterVec
	duration             *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		verificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_failures_total",
			Help:      "Tokens rejected during verification, by token kind and reason.",
		}, []string{"kind", "reason"}),
		sessionChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_checks_total",
			Help:      "Session checks answered, by result.",
		}, []string{"result"}),
		handshakes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handshake_exchanges_total",
			Help:      "Handshake exchanges attempted, by result.",
		}, []string{"result"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_refreshes_total",
			Help:      "Session refresh requests, by result.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.verificationFailures,
		m.sessionChecks,
		m.handshakes,
		m.refreshes,
		m.requests,
		m.duration,
	)
	return m
}

// VerificationFailed satisfies sessionx.Observer.
func (m *Metrics) VerificationFailed(kind, reason string) {
	if m == nil {
		return
	}
	m.verificationFailures.WithLabelValues(kind, reason).Inc()
}

func (m *Metrics) SessionChecked(result string) {
	if m == nil {
		return
	}
	m.sessionChecks.WithLabelValues(result).Inc()
}

func (m *Metrics) HandshakeExchanged(result string) {
	if m == nil {
		return
	}
	m.handshakes.WithLabelValues(result).Inc()
}

func (m *Metrics) SessionRefreshed(result string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(result).Inc()
}

// Middleware counts and times every request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return promhttp.InstrumentHandlerDuration(m.duration,
		promhttp.InstrumentHandlerCounter(m.requests, next),
	)
}

// Handler serves the registry in the text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
