package engine

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/BarCut/internal/model"
)

// StockComparison holds the plan computed for one candidate stock length.
type StockComparison struct {
	StockLength float64    `json:"stock_length" yaml:"stock_length"`
	Feasible    bool       `json:"feasible" yaml:"feasible"`                       // False when some piece is longer than the stock
	Oversized   []float64  `json:"oversized,omitempty" yaml:"oversized,omitempty"` // Pieces that do not fit this stock length
	Plan        model.Plan `json:"plan" yaml:"plan"`
}

// CompareStockLengths plans the same pieces once per candidate stock length
// and returns the results ranked best first: feasible candidates before
// infeasible ones, then by efficiency, then by fewest bars. Each run is an
// independent single-stock plan.
func CompareStockLengths(ctx context.Context, planner *Planner, pieces []float64, stockLengths []float64) ([]StockComparison, error) {
	if planner == nil {
		planner = New(Options{})
	}
	if len(stockLengths) == 0 {
		return nil, fmt.Errorf("%w: no stock lengths to compare", ErrInvalidConfiguration)
	}

	results := make([]StockComparison, 0, len(stockLengths))
	for _, stock := range stockLengths {
		if !(stock > 0) || math.IsInf(stock, 0) {
			return nil, fmt.Errorf("%w: stock length must be a positive number, got %g", ErrInvalidConfiguration, stock)
		}

		cmp := StockComparison{StockLength: stock}
		for _, l := range pieces {
			if !model.Fits(l, stock) {
				cmp.Oversized = append(cmp.Oversized, l)
			}
		}
		if len(cmp.Oversized) > 0 {
			results = append(results, cmp)
			continue
		}

		plan, err := planner.Plan(ctx, pieces, stock)
		if err != nil {
			return nil, fmt.Errorf("stock length %g: %w", stock, err)
		}
		cmp.Feasible = true
		cmp.Plan = plan
		results = append(results, cmp)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Feasible != b.Feasible {
			return a.Feasible
		}
		if math.Abs(a.Plan.Efficiency-b.Plan.Efficiency) > model.Epsilon {
			return a.Plan.Efficiency > b.Plan.Efficiency
		}
		return a.Plan.TotalStockUsed < b.Plan.TotalStockUsed
	})

	return results, nil
}
