package model

import (
	"math"
	"testing"
)

func TestNewPatternComputesUsedAndWaste(t *testing.T) {
	p := NewPattern([]float64{5, 5}, 12)

	if p.UsedLength != 10 {
		t.Errorf("expected used 10, got %f", p.UsedLength)
	}
	if p.Waste != 2 {
		t.Errorf("expected waste 2, got %f", p.Waste)
	}
	if math.Abs(p.Efficiency()-83.3333) > 0.001 {
		t.Errorf("expected efficiency ~83.33, got %f", p.Efficiency())
	}
}

func TestNewPatternSnapsToleranceWasteToZero(t *testing.T) {
	// 4.2 + 3.6 + 4.2 is 12.000000000000002 in float64
	p := NewPattern([]float64{4.2, 3.6, 4.2}, 12)

	if p.Waste != 0 {
		t.Errorf("expected waste snapped to 0, got %g", p.Waste)
	}
	if math.Abs(p.UsedLength+p.Waste-12) > Epsilon {
		t.Errorf("used + waste should equal stock, got %g", p.UsedLength+p.Waste)
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		total, stock float64
		want         bool
	}{
		{10, 12, true},
		{12, 12, true},
		{4.2 + 3.6 + 4.2, 12, true},
		{12.01, 12, false},
		{0, 12, true},
	}
	for _, tt := range tests {
		if got := Fits(tt.total, tt.stock); got != tt.want {
			t.Errorf("Fits(%g, %g) = %v, want %v", tt.total, tt.stock, got, tt.want)
		}
	}
}

func TestNewPlanAggregates(t *testing.T) {
	plan := NewPlan(12, []Pattern{
		NewPattern([]float64{5, 5}, 12),
		NewPattern([]float64{5}, 12),
	})

	if plan.TotalStockUsed != 2 {
		t.Errorf("expected 2 bars, got %d", plan.TotalStockUsed)
	}
	if plan.TotalWaste != 9 {
		t.Errorf("expected total waste 9, got %f", plan.TotalWaste)
	}
	if plan.TotalUsed != 15 {
		t.Errorf("expected total used 15, got %f", plan.TotalUsed)
	}
	if math.Abs(plan.Efficiency-62.5) > 1e-9 {
		t.Errorf("expected efficiency 62.5, got %f", plan.Efficiency)
	}
	if plan.PieceCount() != 3 {
		t.Errorf("expected 3 pieces, got %d", plan.PieceCount())
	}
}

func TestNewPlanEmpty(t *testing.T) {
	plan := NewPlan(12, nil)

	if plan.Patterns == nil {
		t.Error("Patterns should not be nil")
	}
	if plan.TotalStockUsed != 0 || plan.TotalWaste != 0 || plan.TotalUsed != 0 {
		t.Errorf("expected zero aggregates, got %+v", plan)
	}
	if plan.Efficiency != 0 || math.IsNaN(plan.Efficiency) {
		t.Errorf("expected efficiency 0, got %f", plan.Efficiency)
	}
	if len(plan.Pieces()) != 0 {
		t.Errorf("expected no pieces, got %v", plan.Pieces())
	}
}

func TestEfficiencyPercent(t *testing.T) {
	if got := EfficiencyPercent(0, 0); got != 0 {
		t.Errorf("expected 0 for empty material, got %f", got)
	}
	if got := EfficiencyPercent(24, 0); got != 100 {
		t.Errorf("expected 100, got %f", got)
	}
	if got := EfficiencyPercent(15, 9); got != 62.5 {
		t.Errorf("expected 62.5, got %f", got)
	}
}

func TestPlanPiecesKeepsPatternOrder(t *testing.T) {
	plan := NewPlan(10, []Pattern{
		NewPattern([]float64{6, 4}, 10),
		NewPattern([]float64{3}, 10),
	})
	got := plan.Pieces()
	want := []float64{6, 4, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("piece %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}
