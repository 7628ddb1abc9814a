package model

import "math"

// Epsilon is the absolute tolerance used when comparing lengths.
// Decimal inputs such as 4.2 + 3.6 + 4.2 do not sum exactly to 12 in
// binary floating point; within Epsilon they count as a perfect fit.
const Epsilon = 1e-9

// Fits reports whether a total length fits on a stock unit of the given length.
func Fits(total, stockLength float64) bool {
	return total <= stockLength+Epsilon
}

// Pattern is the cut plan for one stock unit.
type Pattern struct {
	Pieces     []float64 `json:"pieces" yaml:"pieces"`           // In discovery order within the winning subset
	UsedLength float64   `json:"used_length" yaml:"used_length"` // Sum of Pieces
	Waste      float64   `json:"waste" yaml:"waste"`             // Stock length minus UsedLength
}

// NewPattern builds a pattern for the given pieces on a stock unit.
// Waste inside the comparison tolerance is reported as zero.
func NewPattern(pieces []float64, stockLength float64) Pattern {
	used := SumLengths(pieces)
	waste := stockLength - used
	if math.Abs(waste) <= Epsilon {
		waste = 0
	}
	return Pattern{
		Pieces:     pieces,
		UsedLength: used,
		Waste:      waste,
	}
}

// Efficiency returns the usage percentage of this stock unit.
func (p Pattern) Efficiency() float64 {
	total := p.UsedLength + p.Waste
	if total == 0 {
		return 0
	}
	return (p.UsedLength / total) * 100.0
}

// Plan holds the full solution for one planning run.
type Plan struct {
	StockLength    float64   `json:"stock_length" yaml:"stock_length"`
	Patterns       []Pattern `json:"patterns" yaml:"patterns"`
	TotalStockUsed int       `json:"total_stock_used" yaml:"total_stock_used"`
	TotalWaste     float64   `json:"total_waste" yaml:"total_waste"`
	TotalUsed      float64   `json:"total_used" yaml:"total_used"`
	Efficiency     float64   `json:"efficiency" yaml:"efficiency"` // Percentage, 0 when nothing was used
}

// NewPlan assembles a plan from its patterns and computes the aggregates.
func NewPlan(stockLength float64, patterns []Pattern) Plan {
	if patterns == nil {
		patterns = []Pattern{}
	}
	plan := Plan{
		StockLength:    stockLength,
		Patterns:       patterns,
		TotalStockUsed: len(patterns),
	}
	for _, p := range patterns {
		plan.TotalWaste += p.Waste
		plan.TotalUsed += p.UsedLength
	}
	plan.Efficiency = EfficiencyPercent(plan.TotalUsed, plan.TotalWaste)
	return plan
}

// PieceCount returns the number of pieces cut across all patterns.
func (p Plan) PieceCount() int {
	total := 0
	for _, pat := range p.Patterns {
		total += len(pat.Pieces)
	}
	return total
}

// Pieces returns every piece in the plan, pattern by pattern.
func (p Plan) Pieces() []float64 {
	out := make([]float64, 0, p.PieceCount())
	for _, pat := range p.Patterns {
		out = append(out, pat.Pieces...)
	}
	return out
}

// EfficiencyPercent returns used / (used + waste) * 100, or 0 when there
// is no material at all.
func EfficiencyPercent(used, waste float64) float64 {
	total := used + waste
	if total == 0 {
		return 0
	}
	return (used / total) * 100.0
}

// SumLengths returns the sum of the given lengths.
func SumLengths(lengths []float64) float64 {
	var total float64
	for _, l := range lengths {
		total += l
	}
	return total
}
