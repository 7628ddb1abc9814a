package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/BarCut/internal/model"
)

// Report is the structured form of one planning run, shared by the
// JSON/YAML writers and the HTTP API.
type Report struct {
	ID      string         `json:"id,omitempty" yaml:"id,omitempty"`
	Plan    model.Plan     `json:"plan" yaml:"plan"`
	Ignored []float64      `json:"ignored" yaml:"ignored"`
	Offcuts []model.Offcut `json:"offcuts" yaml:"offcuts"`
}

// NewReport builds a report, listing the remnants of at least minOffcut.
// Nil slices are replaced by empty ones so encoders emit [] rather than null.
func NewReport(id string, plan model.Plan, ignored []float64, minOffcut float64) Report {
	if ignored == nil {
		ignored = []float64{}
	}
	offcuts := model.DetectOffcuts(plan, minOffcut)
	if offcuts == nil {
		offcuts = []model.Offcut{}
	}
	return Report{
		ID:      id,
		Plan:    plan,
		Ignored: ignored,
		Offcuts: offcuts,
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
