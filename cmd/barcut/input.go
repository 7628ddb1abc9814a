package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/importer"
)

// pieceFlags are the piece sources shared by plan, compare and estimate.
type pieceFlags struct {
	pieces string
	file   string
}

func (f *pieceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.pieces, "pieces", "p", "", `Piece lengths, e.g. "5,5,3.2" or "5*2 3.2x4"`)
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "CSV or XLSX piece list")
}

// collect gathers pieces from positional args, --pieces and --file, in
// that order. Import problems are logged; a file yielding nothing but
// errors is an input error.
func (a *app) collect(f pieceFlags, args []string) ([]float64, error) {
	var pieces []float64

	for _, src := range []string{strings.Join(args, " "), f.pieces} {
		parsed, err := importer.ParseLengths(src)
		if err != nil {
			return nil, WrapError(ExitInvalidInput, "invalid piece list", err)
		}
		pieces = append(pieces, parsed...)
	}

	if f.file != "" {
		res := importer.ImportFile(f.file)
		for _, w := range res.Warnings {
			a.logger.Debug("import", "file", f.file, "warning", w)
		}
		for _, e := range res.Errors {
			a.logger.Warn("import problem", "file", f.file, "error", e)
		}
		if len(res.Lengths) == 0 && len(res.Errors) > 0 {
			return nil, NewCLIError(ExitInvalidInput, "cannot import "+f.file+": "+res.Errors[0])
		}
		a.logger.Info("pieces imported", "file", f.file, "count", len(res.Lengths))
		pieces = append(pieces, res.Lengths...)
	}

	if len(pieces) == 0 {
		return nil, NewCLIError(ExitInvalidInput, "no pieces given; pass lengths as arguments, --pieces or --file")
	}
	return pieces, nil
}

// stockLength returns the --stock flag when set, the configured length otherwise.
func (a *app) stockLength(cmd *cobra.Command, flag float64) float64 {
	if cmd.Flags().Changed("stock") {
		return flag
	}
	return a.cfg.StockLength
}
