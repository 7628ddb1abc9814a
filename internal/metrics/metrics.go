// Package metrics exposes planner statistics as Prometheus collectors.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/piwi3910/BarCut/internal/engine"
)

// Outcome label values of barcut_plans_total.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeCancelled = "cancelled"
	OutcomeError     = "error"
)

// Metrics holds the planner collectors. It implements engine.Recorder.
type Metrics struct {
	// PlansTotal counts planning runs by outcome.
	PlansTotal *prometheus.CounterVec
	// PatternsTotal counts stock bars planned by successful runs.
	PatternsTotal prometheus.Counter
	// PiecesTotal counts pieces submitted to the planner.
	PiecesTotal prometheus.Counter
	// SubsetsEvaluated counts candidate subsets examined, including by
	// runs that failed or were cancelled.
	SubsetsEvaluated prometheus.Counter
	// PlanDuration is the wall time of planning runs.
	PlanDuration prometheus.Histogram
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer
// for the process-wide registry or a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PlansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "barcut_plans_total",
			Help: "The total number of planning runs",
		}, []string{"outcome"}),
		PatternsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "barcut_patterns_total",
			Help: "The total number of stock bars planned",
		}),
		PiecesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "barcut_pieces_total",
			Help: "The total number of pieces submitted for planning",
		}),
		SubsetsEvaluated: factory.NewCounter(prometheus.CounterOpts{
			Name: "barcut_subsets_evaluated_total",
			Help: "The total number of candidate piece subsets evaluated",
		}),
		PlanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "barcut_plan_duration_seconds",
			Help:    "Time spent computing one cutting plan",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}

// RecordPlan implements engine.Recorder.
func (m *Metrics) RecordPlan(stats engine.Stats, err error) {
	outcome := Outcome(err)
	m.PlansTotal.WithLabelValues(outcome).Inc()
	m.PiecesTotal.Add(float64(stats.Pieces))
	m.SubsetsEvaluated.Add(float64(stats.SubsetsEvaluated))
	m.PlanDuration.Observe(stats.Duration.Seconds())
	if outcome == OutcomeSuccess {
		m.PatternsTotal.Add(float64(stats.Patterns))
	}
}

// Outcome classifies a planner error into a label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, engine.ErrInvalidConfiguration):
		return OutcomeInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCancelled
	default:
		return OutcomeError
	}
}
