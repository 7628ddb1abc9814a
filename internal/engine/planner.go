package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/piwi3910/BarCut/internal/model"
)

// Options tunes the planner. The zero value runs the full exhaustive search.
type Options struct {
	// MaxSubsetSize caps the number of pieces tried per bar. Zero means no
	// cap. With a cap the plan is still valid but may use more bars.
	MaxSubsetSize int
}

// Stats describes one planning run.
type Stats struct {
	Pieces           int
	Patterns         int
	SubsetsEvaluated int64
	Duration         time.Duration
}

// Recorder receives the statistics of every planning run.
type Recorder interface {
	RecordPlan(stats Stats, err error)
}

// Planner builds cutting plans for a single stock length.
type Planner struct {
	Options  Options
	Recorder Recorder
}

// New returns a Planner with the given options and no recorder.
func New(opts Options) *Planner {
	return &Planner{Options: opts}
}

// Plan runs the planner with default options.
func Plan(pieces []float64, stockLength float64) (model.Plan, error) {
	return New(Options{}).Plan(context.Background(), pieces, stockLength)
}

// Plan groups pieces into patterns, one per stock bar. Pieces are sorted
// longest first; each bar then takes the largest number of pieces that
// fit, and among those the combination that leaves the least waste.
//
// The search is exponential in the number of pieces. Use ctx to bound it
// in time, or Options.MaxSubsetSize to bound it in breadth.
func (p *Planner) Plan(ctx context.Context, pieces []float64, stockLength float64) (model.Plan, error) {
	start := time.Now()
	stats := Stats{Pieces: len(pieces)}

	plan, err := p.plan(ctx, pieces, stockLength, &stats)

	stats.Duration = time.Since(start)
	if p.Recorder != nil {
		p.Recorder.RecordPlan(stats, err)
	}
	return plan, err
}

func (p *Planner) plan(ctx context.Context, pieces []float64, stockLength float64, stats *Stats) (model.Plan, error) {
	if err := Validate(pieces, stockLength); err != nil {
		return model.Plan{}, err
	}

	s := newSearch(pieces, stockLength, p.Options.MaxSubsetSize)

	var patterns []model.Pattern
	for len(s.live) > 0 {
		if err := ctx.Err(); err != nil {
			return model.Plan{}, fmt.Errorf("planning cancelled after %d patterns: %w", len(patterns), err)
		}
		cut, err := s.nextPattern(ctx)
		stats.SubsetsEvaluated = s.evaluated
		if err != nil {
			return model.Plan{}, err
		}
		patterns = append(patterns, model.NewPattern(cut, stockLength))
	}

	stats.Patterns = len(patterns)
	return model.NewPlan(stockLength, patterns), nil
}

// Validate checks the planner preconditions.
func Validate(pieces []float64, stockLength float64) error {
	if !(stockLength > 0) || math.IsInf(stockLength, 0) {
		return fmt.Errorf("%w: stock length must be a positive number, got %g", ErrInvalidConfiguration, stockLength)
	}
	for i, l := range pieces {
		if !(l > 0) || math.IsInf(l, 0) {
			return fmt.Errorf("%w: piece %d must have a positive length, got %g", ErrInvalidConfiguration, i+1, l)
		}
		if !model.Fits(l, stockLength) {
			return fmt.Errorf("%w: piece %d (%g) is longer than the stock length %g", ErrInvalidConfiguration, i+1, l, stockLength)
		}
	}
	return nil
}

// sortedCopy returns the pieces sorted longest first without touching the input.
func sortedCopy(pieces []float64) []float64 {
	out := make([]float64, len(pieces))
	copy(out, pieces)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i] > out[j]
	})
	return out
}
