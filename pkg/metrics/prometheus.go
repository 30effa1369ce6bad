package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	simulationsRun *prometheus.CounterVec
	solverOutcomes *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		simulationsRun: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundlens_simulations_total",
				Help: "Total number of Monte Carlo simulation runs",
			},
			[]string{"kind"},
		),
		solverOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundlens_solver_outcomes_total",
				Help: "Optimization solves by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundlens_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fundlens_operation_duration_seconds",
				Help:    "Duration of engine operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSimulation records a Monte Carlo simulation run.
func (r *Recorder) RecordSimulation(kind string) {
	r.simulationsRun.WithLabelValues(kind).Inc()
}

// RecordSolverOutcome records whether an optimization solve converged.
func (r *Recorder) RecordSolverOutcome(operation string, converged bool) {
	outcome := "converged"
	if !converged {
		outcome = "non_converged"
	}
	r.solverOutcomes.WithLabelValues(operation, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
