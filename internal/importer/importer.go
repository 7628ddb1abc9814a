// Package importer provides CSV and Excel import functionality for piece lists.
// It supports automatic delimiter detection, flexible column mapping,
// case-insensitive header recognition and quantity expansion.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
// Lengths holds one entry per physical piece, quantities already expanded.
type ImportResult struct {
	Lengths  []float64
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A negative index means the column is absent.
type ColumnMapping struct {
	Label    int
	Length   int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "mark", "part", "part name", "description", "desc", "piece", "item", "position", "pos"},
	"length":   {"length", "len", "l", "size", "cut", "cut length", "length (m)", "length (mm)"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces", "no", "n"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Length: -1, Quantity: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				case "length":
					if mapping.Length == -1 {
						mapping.Length = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping(row), false
	}
	return mapping, true
}

// positionalMapping guesses the column layout of a header-less row:
// "length[,qty]" when the first cell is numeric, "label,length[,qty]" otherwise.
func positionalMapping(row []string) ColumnMapping {
	if _, err := parseNumber(getCell(row, 0)); err == nil {
		return ColumnMapping{Label: -1, Length: 0, Quantity: 1}
	}
	return ColumnMapping{Label: 0, Length: 1, Quantity: 2}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber parses a length or quantity cell. A single decimal comma
// ("3,5") is accepted as written by spreadsheets in many locales.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

// parseRow extracts the piece lengths of one row using the given column mapping.
// Returns the expanded lengths, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) ([]float64, string, string) {
	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return nil, fmt.Sprintf("%s: Missing length value", rowLabel), ""
	}
	length, err := parseNumber(lengthStr)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), ""
	}
	if !(length > 0) {
		return nil, fmt.Sprintf("%s: Length must be positive", rowLabel), ""
	}

	var warning string
	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		q, err := parseNumber(qtyStr)
		if err != nil || q != math.Trunc(q) {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		if q <= 0 {
			return nil, fmt.Sprintf("%s: Quantity must be positive", rowLabel), ""
		}
		if q > MaxPieces {
			return nil, fmt.Sprintf("%s: Quantity exceeds %d pieces", rowLabel, MaxPieces), ""
		}
		qty = int(q)
	} else if mapping.Quantity >= 0 && mapping.Quantity < len(row) {
		warning = fmt.Sprintf("%s: Empty quantity, assuming 1", rowLabel)
	}

	lengths := make([]float64, qty)
	for i := range lengths {
		lengths[i] = length
	}
	return lengths, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile imports pieces from a CSV or Excel file, chosen by extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return ImportExcel(path)
	case ".csv", ".tsv", ".txt", "":
		return ImportCSV(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type '%s'", filepath.Ext(path))}}
	}
}

// ImportCSV imports pieces from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports pieces from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports pieces from an Excel workbook.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into piece lengths.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Length == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Length")
			return result
		}
	} else if _, err := parseNumber(getCell(rows[0], mapping.Length)); err != nil && !isEmptyRow(rows[0]) {
		// Unrecognized header: keep the positional mapping, skip the row
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		lengths, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if len(result.Lengths)+len(lengths) > MaxPieces {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Piece list exceeds %d pieces, remaining rows skipped", rowLabel, MaxPieces))
			break
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Lengths = append(result.Lengths, lengths...)
	}

	return result
}
