package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/BarCut/internal/model"
)

func TestNewReport(t *testing.T) {
	r := NewReport("abc", buildTestPlan(), nil, 0.5)

	if r.ID != "abc" {
		t.Errorf("ID = %q", r.ID)
	}
	if r.Ignored == nil || len(r.Ignored) != 0 {
		t.Errorf("Ignored should be empty and non-nil, got %#v", r.Ignored)
	}
	if len(r.Offcuts) != 2 {
		t.Fatalf("expected 2 offcuts, got %d", len(r.Offcuts))
	}
	if r.Offcuts[0].PatternIndex != 2 || r.Offcuts[0].Length != 7 {
		t.Errorf("longest offcut = %+v, want pattern 2 length 7", r.Offcuts[0])
	}
}

func TestNewReport_NoOffcuts(t *testing.T) {
	plan := model.NewPlan(10, []model.Pattern{model.NewPattern([]float64{10}, 10)})
	r := NewReport("", plan, []float64{11}, 0.5)

	if r.Offcuts == nil || len(r.Offcuts) != 0 {
		t.Errorf("Offcuts should be empty and non-nil, got %#v", r.Offcuts)
	}
	if len(r.Ignored) != 1 {
		t.Errorf("Ignored = %v", r.Ignored)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewReport("id-1", buildTestPlan(), nil, 0.5)); err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"id", "plan", "ignored", "offcuts"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON missing key %q", key)
		}
	}
	plan := decoded["plan"].(map[string]interface{})
	if plan["total_stock_used"].(float64) != 2 {
		t.Errorf("total_stock_used = %v", plan["total_stock_used"])
	}
	if !strings.Contains(buf.String(), `"ignored": []`) {
		t.Errorf("ignored should encode as an empty array:\n%s", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, buildTestPlan()); err != nil {
		t.Fatalf("WriteYAML returned error: %v", err)
	}

	var decoded model.Plan
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.TotalStockUsed != 2 || len(decoded.Patterns) != 2 {
		t.Errorf("decoded plan = %+v", decoded)
	}
	if decoded.Patterns[0].Waste != 2 {
		t.Errorf("pattern 1 waste = %v, want 2", decoded.Patterns[0].Waste)
	}
	if !strings.Contains(buf.String(), "stock_length: 12") {
		t.Errorf("YAML should use snake_case keys:\n%s", buf.String())
	}
}
