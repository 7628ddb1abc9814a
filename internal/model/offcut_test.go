package model

import "testing"

func TestDetectOffcutsFiltersAndSorts(t *testing.T) {
	plan := NewPlan(12, []Pattern{
		NewPattern([]float64{11.8}, 12), // 0.2 remnant, scrap
		NewPattern([]float64{5}, 12),    // 7 remnant
		NewPattern([]float64{12}, 12),   // no remnant
		NewPattern([]float64{10}, 12),   // 2 remnant
	})

	offcuts := DetectOffcuts(plan, 0.5)

	if len(offcuts) != 2 {
		t.Fatalf("expected 2 offcuts, got %d: %+v", len(offcuts), offcuts)
	}
	if offcuts[0].PatternIndex != 2 || offcuts[0].Length != 7 {
		t.Errorf("expected longest offcut from pattern 2, got %+v", offcuts[0])
	}
	if offcuts[1].PatternIndex != 4 {
		t.Errorf("expected second offcut from pattern 4, got %+v", offcuts[1])
	}
}

func TestDetectOffcutsZeroMinimum(t *testing.T) {
	plan := NewPlan(12, []Pattern{
		NewPattern([]float64{11.8}, 12),
		NewPattern([]float64{12}, 12),
	})

	offcuts := DetectOffcuts(plan, 0)
	if len(offcuts) != 1 {
		t.Fatalf("expected 1 offcut, got %d", len(offcuts))
	}
}

func TestDetectOffcutsEmptyPlan(t *testing.T) {
	if offcuts := DetectOffcuts(NewPlan(12, nil), 0.5); len(offcuts) != 0 {
		t.Errorf("expected no offcuts, got %v", offcuts)
	}
}

func TestScrapLength(t *testing.T) {
	plan := NewPlan(12, []Pattern{
		NewPattern([]float64{11.75}, 12),
		NewPattern([]float64{11.5}, 12),
		NewPattern([]float64{5}, 12),
	})

	got := ScrapLength(plan, 1.0)
	if got < 0.7499 || got > 0.7501 {
		t.Errorf("expected scrap 0.75, got %f", got)
	}
}
