// Package metrics provides Prometheus metrics for the pipeline stages.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tubeqa"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	registry *prometheus.Registry

	StageDuration  *prometheus.HistogramVec
	StageFailures  *prometheus.CounterVec
	CacheLookups   *prometheus.CounterVec
	SessionsActive prometheus.Gauge
	PipelinesBusy  prometheus.Gauge
}

// New creates all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages in seconds",
			Buckets:   []float64{0.05, 0.25, 1, 5, 15, 30, 60, 120, 300, 900, 1800},
		}, []string{"stage", "outcome"}),
		StageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Total number of failed stages by kind",
		}, []string{"stage", "kind"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Transcript cache lookups by result",
		}, []string{"result"}),
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of live sessions",
		}),
		PipelinesBusy: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipelines_running",
			Help:      "Number of fetch+transcribe pipelines currently running",
		}),
	}
}

// ObserveStage records one stage run. kind is empty on success.
func (m *Metrics) ObserveStage(stage string, started time.Time, kind string) {
	outcome := "success"
	if kind != "" {
		outcome = "failure"
		m.StageFailures.WithLabelValues(stage, kind).Inc()
	}
	m.StageDuration.WithLabelValues(stage, outcome).Observe(time.Since(started).Seconds())
}

// CacheHit records a transcript cache lookup.
func (m *Metrics) CacheHit(hit bool) {
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
