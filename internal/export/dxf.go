package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/BarCut/internal/model"
)

// DXF layer names.
const (
	LayerBars = "BARS"
	LayerCuts = "CUTS"
	LayerText = "TEXT"
)

// ExportDXF draws every pattern as a bar outline, one under the other,
// with a cut line after each piece and the piece lengths written inside.
// Coordinates are in plan units.
func ExportDXF(path string, plan model.Plan) error {
	if len(plan.Patterns) == 0 {
		return fmt.Errorf("no patterns to export")
	}

	stock := plan.StockLength
	height := stock * 0.04
	gap := height
	textHeight := height * 0.4

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerBars, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerBars, err)
	}
	if _, err := d.AddLayer(LayerCuts, color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerCuts, err)
	}
	if _, err := d.AddLayer(LayerText, dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerText, err)
	}

	for i, p := range plan.Patterns {
		y0 := -float64(i) * (height + gap)
		y1 := y0 + height

		if err := d.ChangeLayer(LayerBars); err != nil {
			return err
		}
		outline := [][4]float64{
			{0, y0, stock, y0},
			{stock, y0, stock, y1},
			{stock, y1, 0, y1},
			{0, y1, 0, y0},
		}
		for _, l := range outline {
			if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
				return fmt.Errorf("pattern %d: %w", i+1, err)
			}
		}

		if err := d.ChangeLayer(LayerCuts); err != nil {
			return err
		}
		for _, x := range CutPositions(p) {
			if x >= stock-model.Epsilon {
				continue
			}
			if _, err := d.Line(x, y0, 0, x, y1, 0); err != nil {
				return fmt.Errorf("pattern %d: %w", i+1, err)
			}
		}

		if err := d.ChangeLayer(LayerText); err != nil {
			return err
		}
		if _, err := d.Text(fmt.Sprintf("P%d", i+1), -height*2, y0+height*0.3, 0, textHeight); err != nil {
			return fmt.Errorf("pattern %d: %w", i+1, err)
		}
		start := 0.0
		for _, piece := range p.Pieces {
			if _, err := d.Text(FormatLength(piece), start+piece*0.1, y0+height*0.3, 0, textHeight); err != nil {
				return fmt.Errorf("pattern %d: %w", i+1, err)
			}
			start += piece
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// CutPositions returns the offset from the bar start of the cut after each
// piece of a pattern, in cutting order.
func CutPositions(p model.Pattern) []float64 {
	positions := make([]float64, len(p.Pieces))
	var x float64
	for i, piece := range p.Pieces {
		x += piece
		positions[i] = x
	}
	return positions
}
