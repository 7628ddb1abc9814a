package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BarCut/internal/model"
)

func TestExportExcel_Sheets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.xlsx")

	settings := model.DefaultSettings()
	settings.PricePerBar = 30

	if err := ExportExcel(path, buildTestPlan(), settings); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Patterns" || sheets[1] != "Summary" {
		t.Fatalf("sheets = %v, want [Patterns Summary]", sheets)
	}

	rows, err := f.GetRows("Patterns")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Pattern" || rows[0][3] != "Used (m)" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "[5, 5]" || rows[1][2] != "2" || rows[1][3] != "10" || rows[1][4] != "2" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][1] != "[5]" || rows[2][4] != "7" {
		t.Errorf("row 2 = %v", rows[2])
	}

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	values := map[string]string{}
	for _, r := range summary {
		if len(r) >= 2 {
			values[r[0]] = r[1]
		}
	}
	if values["Stock Bars Used"] != "2" {
		t.Errorf("Stock Bars Used = %q", values["Stock Bars Used"])
	}
	if values["Total Waste"] != "9" {
		t.Errorf("Total Waste = %q", values["Total Waste"])
	}
	if values["Stock Cost"] != "60" {
		t.Errorf("Stock Cost = %q", values["Stock Cost"])
	}
}

func TestExportExcel_NoCostWithoutPrice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.xlsx")

	if err := ExportExcel(path, buildTestPlan(), model.DefaultSettings()); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot open workbook: %v", err)
	}
	defer f.Close()

	summary, _ := f.GetRows("Summary")
	for _, r := range summary {
		if len(r) > 0 && r[0] == "Stock Cost" {
			t.Error("Stock Cost row should be omitted when no price is set")
		}
	}
}

func TestExportExcel_EmptyPlan(t *testing.T) {
	dir := t.TempDir()
	if err := ExportExcel(filepath.Join(dir, "x.xlsx"), model.NewPlan(12, nil), model.DefaultSettings()); err == nil {
		t.Fatal("expected error for empty plan, got nil")
	}
}
