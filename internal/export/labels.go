package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/BarCut/internal/model"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	PlanID      string  `json:"plan_id,omitempty"`
	Pattern     int     `json:"pattern"` // 1-based pattern number
	Piece       int     `json:"piece"`   // 1-based position within the pattern
	Length      float64 `json:"length"`
	Unit        string  `json:"unit"`
	StockLength float64 `json:"stock_length"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF with one QR-coded label per cut piece.
// planID ties the labels back to the run that produced them and may be empty.
func ExportLabels(path string, plan model.Plan, planID, unit string) error {
	labels := CollectLabelInfos(plan, planID, unit)
	if len(labels) == 0 {
		return fmt.Errorf("no pieces to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for pattern %d piece %d: %w", label.Pattern, label.Piece, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%d", info.Pattern, info.Piece)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Piece length (bold, larger)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 5, FormatLength(info.Length)+info.Unit, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+6)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Pattern %d, piece %d", info.Pattern, info.Piece), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+10)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Stock %s%s", FormatLength(info.StockLength), info.Unit), "", 1, "L", false, 0, "")

	if info.PlanID != "" {
		planRef := info.PlanID
		if pdf.GetStringWidth(planRef) > textW {
			for len(planRef) > 0 && pdf.GetStringWidth(planRef+"...") > textW {
				planRef = planRef[:len(planRef)-1]
			}
			planRef += "..."
		}
		pdf.SetXY(textX, y+labelPadding+13.5)
		pdf.CellFormat(textW, 3, planRef, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos lists one label per cut piece, pattern by pattern.
func CollectLabelInfos(plan model.Plan, planID, unit string) []LabelInfo {
	var labels []LabelInfo
	for i, p := range plan.Patterns {
		for j, piece := range p.Pieces {
			labels = append(labels, LabelInfo{
				PlanID:      planID,
				Pattern:     i + 1,
				Piece:       j + 1,
				Length:      piece,
				Unit:        unit,
				StockLength: plan.StockLength,
			})
		}
	}
	return labels
}
