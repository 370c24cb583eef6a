// Package metrics defines the Prometheus collectors that describe ranking
// runs and dumps them in the text exposition format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/xerrors"
)

// Metrics holds all Prometheus collectors together with the private
// registry they are registered on.
type Metrics struct {
	CorpusPages       prometheus.Gauge
	RunsTotal         *prometheus.CounterVec
	RunDuration       *prometheus.HistogramVec
	SolverIterations  prometheus.Gauge
	SamplerStepsTotal prometheus.Counter

	registry *prometheus.Registry
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		CorpusPages: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pagerank_corpus_pages",
				Help: "Number of pages in the ranked corpus.",
			},
		),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagerank_runs_total",
				Help: "Total ranking runs by algorithm and status (ok, error).",
			},
			[]string{"algorithm", "status"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pagerank_run_duration_seconds",
				Help:    "Ranking run duration in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"algorithm"},
		),
		SolverIterations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pagerank_solver_iterations",
				Help: "Iterations needed by the last iterative run to converge.",
			},
		),
		SamplerStepsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pagerank_sampler_steps_total",
				Help: "Total pages visited by random walks.",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.CorpusPages,
		m.RunsTotal,
		m.RunDuration,
		m.SolverIterations,
		m.SamplerStepsTotal,
	)

	return m
}

// Gatherer returns the registry the collectors are registered on.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current value of every collector to path in the
// text exposition format understood by the node exporter textfile
// collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return xerrors.Errorf("write metrics to %q: %w", path, err)
	}
	return nil
}
