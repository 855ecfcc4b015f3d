package metrics

import (
	"net/http"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"
	"sortbench/internal/sorting"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics represents the collection of Prometheus metrics for a sweep.
// It implements benchmark.Observer.
type Metrics struct {
	registry *prometheus.Registry

	TrialsTotal         *prometheus.CounterVec
	ConfigurationsTotal *prometheus.CounterVec
	SortDuration        *prometheus.HistogramVec
	CurrentSize         prometheus.Gauge
	ConfigsInProgress   prometheus.Gauge
}

// NewMetrics creates the collectors on a private registry, together with
// the standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.TrialsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sortbench_trials_total",
			Help: "Total number of timed sort invocations",
		},
		[]string{"algorithm", "shape"},
	)

	m.ConfigurationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sortbench_configurations_total",
			Help: "Total number of finished configurations by status",
		},
		[]string{"shape", "status"},
	)

	m.SortDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sortbench_sort_duration_milliseconds",
			Help:    "Wall-clock duration of a single sort invocation",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 12),
		},
		[]string{"algorithm", "shape"},
	)

	m.CurrentSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sortbench_current_size",
			Help: "Dataset size of the configuration being measured",
		},
	)

	m.ConfigsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sortbench_configurations_in_progress",
			Help: "Number of configurations currently being measured",
		},
	)

	m.registry.MustRegister(
		m.TrialsTotal,
		m.ConfigurationsTotal,
		m.SortDuration,
		m.CurrentSize,
		m.ConfigsInProgress,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ConfigStarted implements benchmark.Observer.
func (m *Metrics) ConfigStarted(cfg benchmark.Config) {
	m.CurrentSize.Set(float64(cfg.Size))
	m.ConfigsInProgress.Inc()
}

// TrialTimed implements benchmark.Observer.
func (m *Metrics) TrialTimed(alg sorting.Algorithm, shape dataset.Shape, ms float64) {
	m.TrialsTotal.WithLabelValues(alg.String(), shape.String()).Inc()
	m.SortDuration.WithLabelValues(alg.String(), shape.String()).Observe(ms)
}

// ConfigFinished implements benchmark.Observer.
func (m *Metrics) ConfigFinished(rec benchmark.Record) {
	m.ConfigsInProgress.Dec()
	m.ConfigurationsTotal.WithLabelValues(rec.Shape.String(), string(rec.Status)).Inc()
}

// ConfigAborted implements benchmark.Observer.
func (m *Metrics) ConfigAborted(benchmark.Config, error) {
	m.ConfigsInProgress.Dec()
}

// Handler returns the Prometheus HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
