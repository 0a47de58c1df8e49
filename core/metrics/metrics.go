package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Provider call outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
	OutcomeFallback = "fallback"
)

// Metrics holds the collectors exported by the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	providerCalls    *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	reconciliations  *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anime_tracker",
			Name:      "provider_calls_total",
			Help:      "Metadata provider calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "anime_tracker",
			Name:      "provider_call_duration_seconds",
			Help:      "Metadata provider call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anime_tracker",
			Name:      "reconciliations_total",
			Help:      "Reconcile runs by title kind and mode.",
		}, []string{"kind", "mode"}),
	}

	reg.MustRegister(m.providerCalls, m.providerDuration, m.reconciliations)
	return m
}

// ObserveProvider records one provider call.
func (m *Metrics) ObserveProvider(provider, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.providerCalls.WithLabelValues(provider, outcome).Inc()
	if outcome != OutcomeFallback {
		m.providerDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	}
}

// ObserveReconcile records one reconcile run.
func (m *Metrics) ObserveReconcile(kind, mode string) {
	if m == nil {
		return
	}
	m.reconciliations.WithLabelValues(kind, mode).Inc()
}

// ProviderCalls exposes the provider counter, mainly for tests.
func (m *Metrics) ProviderCalls() *prometheus.CounterVec {
	return m.providerCalls
}

// Reconciliations exposes the reconcile counter.
func (m *Metrics) Reconciliations() *prometheus.CounterVec {
	return m.reconciliations
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
