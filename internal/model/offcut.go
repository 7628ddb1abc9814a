package model

import "sort"

// Offcut is a remnant left on a stock bar that is long enough to reuse.
type Offcut struct {
	PatternIndex int     `json:"pattern_index" yaml:"pattern_index"` // 1-based pattern number
	Length       float64 `json:"length" yaml:"length"`
}

// DetectOffcuts returns the remnants of a plan that are at least minLength
// long, longest first. Patterns with equal remnants keep plan order.
// A non-positive minLength reports every non-zero remnant.
func DetectOffcuts(plan Plan, minLength float64) []Offcut {
	var offcuts []Offcut
	for i, p := range plan.Patterns {
		if p.Waste <= Epsilon {
			continue
		}
		if p.Waste+Epsilon < minLength {
			continue
		}
		offcuts = append(offcuts, Offcut{PatternIndex: i + 1, Length: p.Waste})
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Length > offcuts[j].Length
	})
	return offcuts
}

// ScrapLength returns the total remnant length that is too short to reuse.
func ScrapLength(plan Plan, minLength float64) float64 {
	var scrap float64
	for _, p := range plan.Patterns {
		if p.Waste > Epsilon && p.Waste+Epsilon < minLength {
			scrap += p.Waste
		}
	}
	return scrap
}
