package export

import "github.com/piwi3910/BarCut/internal/model"

// buildTestPlan returns the plan for pieces [5, 5, 5] on 12 m stock.
func buildTestPlan() model.Plan {
	return model.NewPlan(12, []model.Pattern{
		model.NewPattern([]float64{5, 5}, 12),
		model.NewPattern([]float64{5}, 12),
	})
}

// buildLongPlan returns a plan with enough patterns to span several pages.
func buildLongPlan(patterns int) model.Plan {
	list := make([]model.Pattern, patterns)
	for i := range list {
		list[i] = model.NewPattern([]float64{4.2, 3.6, 2.5, 1.1, 0.3}, 12)
	}
	return model.NewPlan(12, list)
}
