package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/BarCut/internal/model"
)

// TextOptions controls the plain-text report.
type TextOptions struct {
	Unit     string
	Decimals int
	// Requested holds the pieces as entered, before oversized ones were
	// removed. Nil skips the checking section.
	Requested []float64
	Ignored   []float64
}

// TextOptionsFromSettings returns the report options for the given settings.
func TextOptionsFromSettings(s model.Settings) TextOptions {
	return TextOptions{Unit: s.Unit, Decimals: s.Decimals}
}

// textWriter keeps the first write error so the report body stays linear.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

// WriteText writes the operator report: the checked input, one line per
// pattern, and the totals.
func WriteText(w io.Writer, plan model.Plan, opts TextOptions) error {
	decimals := opts.Decimals
	if decimals < 0 {
		decimals = 2
	}
	unit := opts.Unit
	num := func(v float64) string {
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}

	tw := &textWriter{w: w}

	if opts.Requested != nil {
		tw.printf("1- CHECKING\n")
		tw.printf("Required pieces: %s\n", FormatLengths(opts.Requested))
		if len(opts.Ignored) > 0 {
			tw.printf("Warning: %d pieces exceed stock length and were ignored: %s\n", len(opts.Ignored), FormatLengths(opts.Ignored))
		}
		tw.printf("Optimizing cutting for %s%s stock bars...\n\n", FormatLength(plan.StockLength), unit)
	}

	tw.printf("2- CUTTING PLAN\n")
	tw.printf("Optimal cutting patterns (using %d stock pieces):\n", plan.TotalStockUsed)
	for i, p := range plan.Patterns {
		tw.printf("Pattern %d: %s (Used: %s%s, Waste: %s%s)\n",
			i+1, FormatLengths(p.Pieces), num(p.UsedLength), unit, num(p.Waste), unit)
	}

	tw.printf("\n3- REMAINED RESULT\n")
	tw.printf("Total waste: %s%s\n", num(plan.TotalWaste), unit)
	tw.printf("Material efficiency: %s%%\n", num(plan.Efficiency))

	return tw.err
}

// FormatLength renders a length with the shortest exact representation.
func FormatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatLengths renders a list of lengths as "[5, 4, 1.5]".
func FormatLengths(lengths []float64) string {
	parts := make([]string, len(lengths))
	for i, l := range lengths {
		parts[i] = FormatLength(l)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
