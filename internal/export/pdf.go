// Package export renders cutting plans as text, structured data, PDF
// diagrams, QR-coded labels, Excel workbooks and DXF drawings.
package export

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/BarCut/internal/model"
)

// pieceColor represents an RGB fill for a cut piece.
type pieceColor struct {
	R, G, B int
}

var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	barHeight    = 12.0
	barSlot      = 26.0 // Vertical space per pattern: caption, bar and annotation
	barsPerPage  = 6
)

// ExportPDF writes the plan as a PDF: bar diagrams, several patterns per
// page, followed by a summary page.
func ExportPDF(path string, plan model.Plan, settings model.Settings) error {
	if len(plan.Patterns) == 0 {
		return fmt.Errorf("no patterns to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pages := (len(plan.Patterns) + barsPerPage - 1) / barsPerPage
	for page := 0; page < pages; page++ {
		pdf.AddPage()
		start := page * barsPerPage
		end := start + barsPerPage
		if end > len(plan.Patterns) {
			end = len(plan.Patterns)
		}
		renderPatternPage(pdf, plan, settings, start, end, page+1, pages)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan, settings)

	return pdf.OutputFileAndClose(path)
}

// formatter returns a length formatter honouring the configured decimals.
func formatter(settings model.Settings) func(float64) string {
	decimals := settings.Decimals
	if decimals < 0 {
		decimals = 2
	}
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', decimals, 64) + settings.Unit
	}
}

// renderPatternPage draws patterns[start:end] on the current page.
func renderPatternPage(pdf *fpdf.Fpdf, plan model.Plan, settings model.Settings, start, end, pageNum, pageCount int) {
	format := formatter(settings)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cutting Plan: %s stock bars (page %d of %d)", format(plan.StockLength), pageNum, pageCount)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	scale := drawWidth / plan.StockLength

	for i := start; i < end; i++ {
		y := drawAreaTop + float64(i-start)*barSlot
		drawBar(pdf, plan.Patterns[i], i+1, plan.StockLength, scale, y, format)
	}
}

// drawBar renders one pattern: a caption line, the bar with each piece
// filled in order and the remnant hatched, and the stock length below.
func drawBar(pdf *fpdf.Fpdf, p model.Pattern, index int, stockLength, scale, y float64, format func(float64) string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	caption := fmt.Sprintf("Pattern %d: %s  |  Used: %s  |  Waste: %s  |  Efficiency: %.1f%%",
		index, FormatLengths(p.Pieces), format(p.UsedLength), format(p.Waste), p.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, caption, "", 0, "L", false, 0, "")

	barY := y + 6
	canvasW := stockLength * scale

	// Stock background
	pdf.SetFillColor(210, 210, 210)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(marginLeft, barY, canvasW, barHeight, "FD")

	x := marginLeft
	for i, piece := range p.Pieces {
		col := pieceColors[i%len(pieceColors)]
		w := piece * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, barY, w, barHeight, "FD")

		if w > 10 {
			pdf.SetFont("Helvetica", "", labelFontSize(w))
			label := FormatLength(piece)
			labelW := pdf.GetStringWidth(label)
			if labelW < w-2 {
				pdf.SetXY(x+(w-labelW)/2, barY+barHeight/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
		x += w
	}

	if p.Waste > model.Epsilon {
		wasteW := marginLeft + canvasW - x
		drawHatchPattern(pdf, x, barY, wasteW, barHeight)
	}

	drawStockAnnotation(pdf, stockLength, barY+barHeight+0.5, canvasW, format)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark a remnant.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.15)

	spacing := 3.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawStockAnnotation prints the stock length centred under a bar.
func drawStockAnnotation(pdf *fpdf.Fpdf, stockLength, y, canvasW float64, format func(float64) string) {
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)

	label := format(stockLength)
	labelW := pdf.GetStringWidth(label)
	pdf.SetXY(marginLeft+(canvasW-labelW)/2, y)
	pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.Plan, settings model.Settings) {
	format := formatter(settings)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Stock Length", format(plan.StockLength)},
		{"Stock Bars Used", fmt.Sprintf("%d", plan.TotalStockUsed)},
		{"Pieces Cut", fmt.Sprintf("%d", plan.PieceCount())},
		{"Total Used", format(plan.TotalUsed)},
		{"Total Waste", format(plan.TotalWaste)},
		{"Material Efficiency", fmt.Sprintf("%.2f%%", plan.Efficiency)},
	}
	if settings.PricePerBar > 0 {
		summaryItems = append(summaryItems, struct {
			label string
			value string
		}{"Stock Cost", fmt.Sprintf("%.2f", model.PlanCost(plan, settings.PricePerBar))})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Pattern Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 127, 35, 35, 50}
	headers := []string{"Pattern", "Pieces", "Used", "Waste", "Efficiency"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range plan.Patterns {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			FormatLengths(p.Pieces),
			format(p.UsedLength),
			format(p.Waste),
			fmt.Sprintf("%.1f%%", p.Efficiency()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BarCut - Stock Bar Cutting Planner", "", 0, "C", false, 0, "")
}

// labelFontSize returns a font size that fits a piece segment of width w.
func labelFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 8
	case w > 20:
		return 7
	default:
		return 6
	}
}
