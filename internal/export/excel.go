package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BarCut/internal/model"
)

const (
	patternsSheet = "Patterns"
	summarySheet  = "Summary"
)

// ExportExcel writes the plan as a workbook with a Patterns sheet (one row
// per stock bar) and a Summary sheet.
func ExportExcel(path string, plan model.Plan, settings model.Settings) error {
	if len(plan.Patterns) == 0 {
		return fmt.Errorf("no patterns to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), patternsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	unit := settings.Unit
	headers := []interface{}{
		"Pattern",
		"Pieces",
		"Piece Count",
		fmt.Sprintf("Used (%s)", unit),
		fmt.Sprintf("Waste (%s)", unit),
		"Efficiency (%)",
	}
	if err := setRow(f, patternsSheet, 1, headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(patternsSheet, "A1", "F1", header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(patternsSheet, "B", "B", 40); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	for i, p := range plan.Patterns {
		row := []interface{}{
			i + 1,
			FormatLengths(p.Pieces),
			len(p.Pieces),
			p.UsedLength,
			p.Waste,
			p.Efficiency(),
		}
		if err := setRow(f, patternsSheet, i+2, row); err != nil {
			return err
		}
	}

	summary := [][]interface{}{
		{"Stock Length", plan.StockLength},
		{"Unit", unit},
		{"Stock Bars Used", plan.TotalStockUsed},
		{"Pieces Cut", plan.PieceCount()},
		{"Total Used", plan.TotalUsed},
		{"Total Waste", plan.TotalWaste},
		{"Material Efficiency (%)", plan.Efficiency},
	}
	if settings.PricePerBar > 0 {
		summary = append(summary, []interface{}{"Stock Cost", model.PlanCost(plan, settings.PricePerBar)})
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), header); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 26); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// setRow writes values into consecutive cells of a row, starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
