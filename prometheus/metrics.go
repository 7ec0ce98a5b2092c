// Package prometheus exposes pipeline counters on a dedicated registry.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/asafar/dockb"
)

// Ensure Metrics implements dockb.Metrics at compile time.
var _ dockb.Metrics = (*Metrics)(nil)

// Metrics is the Prometheus-backed dockb.Metrics implementation. All
// collectors live on their own registry so the handler serves only this
// tool's series.
type Metrics struct {
	registry *prometheus.Registry

	pagesFetched prometheus.Counter
	pagesFailed  prometheus.Counter
	authAttempts *prometheus.CounterVec
	runs         *prometheus.CounterVec
	runRecords   prometheus.Gauge
	runDuration  prometheus.Histogram
}

// NewMetrics creates the collector bundle and registers it.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dockb",
			Name:      "pages_fetched_total",
			Help:      "Documentation pages fetched successfully.",
		}),
		pagesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dockb",
			Name:      "pages_failed_total",
			Help:      "Documentation pages that could not be fetched.",
		}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dockb",
			Name:      "auth_attempts_total",
			Help:      "Authentication strategy attempts by outcome.",
		}, []string{"strategy", "outcome"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dockb",
			Name:      "refresh_runs_total",
			Help:      "Completed refresh runs by outcome.",
		}, []string{"outcome"}),
		runRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dockb",
			Name:      "knowledge_base_records",
			Help:      "Records published by the most recent successful refresh.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dockb",
			Name:      "refresh_duration_seconds",
			Help:      "Wall-clock duration of refresh runs.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	m.registry.MustRegister(
		m.pagesFetched,
		m.pagesFailed,
		m.authAttempts,
		m.runs,
		m.runRecords,
		m.runDuration,
	)
	return m
}

// ObservePageFetched counts a successfully fetched page.
func (m *Metrics) ObservePageFetched() {
	m.pagesFetched.Inc()
}

// ObservePageFailed counts a page that could not be fetched.
func (m *Metrics) ObservePageFailed() {
	m.pagesFailed.Inc()
}

// ObserveAuthAttempt counts one strategy attempt and its outcome.
func (m *Metrics) ObserveAuthAttempt(strategy string, ok bool) {
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.authAttempts.WithLabelValues(strategy, outcome).Inc()
}

// ObserveRun records a completed refresh run.
func (m *Metrics) ObserveRun(run *dockb.Run) {
	outcome := "failure"
	if run.Succeeded() {
		outcome = "success"
		m.runRecords.Set(float64(run.Records))
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(run.FinishedAt.Sub(run.StartedAt).Seconds())
}

// Handler returns the HTTP handler serving this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
