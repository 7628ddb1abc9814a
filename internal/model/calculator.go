package model

import "math"

// PurchaseEstimate holds the results of a bar purchasing calculation.
type PurchaseEstimate struct {
	TotalLength     float64 `json:"total_length" yaml:"total_length"`           // Sum of all required pieces
	StockLength     float64 `json:"stock_length" yaml:"stock_length"`           // Length of one bar
	BarsNeededExact float64 `json:"bars_needed_exact" yaml:"bars_needed_exact"` // Exact fractional number of bars
	BarsNeededMin   int     `json:"bars_needed_min" yaml:"bars_needed_min"`     // Lower bound (ceiling of exact)
	BarsWithWaste   int     `json:"bars_with_waste" yaml:"bars_with_waste"`     // Recommended bars including waste factor
	WastePercent    float64 `json:"waste_percent" yaml:"waste_percent"`         // Waste factor applied (e.g., 10 for 10%)
	EstimatedCost   float64 `json:"estimated_cost" yaml:"estimated_cost"`       // Total cost if pricing available
	PricePerBar     float64 `json:"price_per_bar" yaml:"price_per_bar"`
}

// EstimateBars computes how many bars to buy for a list of pieces without
// running the planner. BarsNeededMin is a lower bound on any cutting plan.
func EstimateBars(pieces []float64, stockLength, wastePercent, pricePerBar float64) PurchaseEstimate {
	totalLength := SumLengths(pieces)

	if stockLength <= 0 {
		return PurchaseEstimate{
			TotalLength:  totalLength,
			WastePercent: wastePercent,
		}
	}

	exactBars := totalLength / stockLength
	minBars := int(math.Ceil(exactBars - Epsilon))
	if minBars < 0 {
		minBars = 0
	}

	// Apply waste factor
	wasteFactor := 1.0 + (wastePercent / 100.0)
	barsWithWaste := int(math.Ceil(exactBars*wasteFactor - Epsilon))
	if barsWithWaste < minBars {
		barsWithWaste = minBars
	}

	return PurchaseEstimate{
		TotalLength:     totalLength,
		StockLength:     stockLength,
		BarsNeededExact: exactBars,
		BarsNeededMin:   minBars,
		BarsWithWaste:   barsWithWaste,
		WastePercent:    wastePercent,
		EstimatedCost:   float64(barsWithWaste) * pricePerBar,
		PricePerBar:     pricePerBar,
	}
}

// PlanCost returns the cost of the bars a plan consumes.
func PlanCost(plan Plan, pricePerBar float64) float64 {
	return float64(plan.TotalStockUsed) * pricePerBar
}
