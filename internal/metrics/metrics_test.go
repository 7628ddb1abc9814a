package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BarCut/internal/engine"
)

func TestRecordPlan_Success(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordPlan(engine.Stats{Pieces: 3, Patterns: 2, SubsetsEvaluated: 7, Duration: 2 * time.Millisecond}, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlansTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PatternsTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PiecesTotal))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.SubsetsEvaluated))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PlanDuration))
}

func TestRecordPlan_FailureSkipsPatterns(t *testing.T) {
	m := New(prometheus.NewRegistry())

	err := fmt.Errorf("planning cancelled: %w", context.Canceled)
	m.RecordPlan(engine.Stats{Pieces: 40, Patterns: 0, SubsetsEvaluated: 4096}, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlansTotal.WithLabelValues(OutcomeCancelled)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PatternsTotal))
	assert.Equal(t, 4096.0, testutil.ToFloat64(m.SubsetsEvaluated))
}

func TestWithPlanner(t *testing.T) {
	m := New(prometheus.NewRegistry())
	planner := engine.New(engine.Options{})
	planner.Recorder = m

	_, err := planner.Plan(context.Background(), []float64{5, 5, 5}, 12)
	require.NoError(t, err)
	_, err = planner.Plan(context.Background(), []float64{13}, 12)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlansTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlansTotal.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PatternsTotal))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.PiecesTotal))
	assert.Greater(t, testutil.ToFloat64(m.SubsetsEvaluated), 0.0)
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeSuccess},
		{fmt.Errorf("x: %w", engine.ErrInvalidConfiguration), OutcomeInvalid},
		{context.DeadlineExceeded, OutcomeCancelled},
		{errors.New("boom"), OutcomeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err), "%v", tt.err)
	}
}

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.PlansTotal.WithLabelValues(OutcomeSuccess).Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"barcut_plans_total",
		"barcut_patterns_total",
		"barcut_pieces_total",
		"barcut_subsets_evaluated_total",
		"barcut_plan_duration_seconds",
	} {
		assert.True(t, names[want], "missing %s", want)
	}
}
