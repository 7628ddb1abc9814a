package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/export"
	"github.com/piwi3910/BarCut/internal/importer"
)

type compareOptions struct {
	pieceFlags
	stocks    string
	maxSubset int
	format    string
}

func newCompareCmd(a *app) *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare [lengths...]",
		Short: "Compare candidate stock lengths for the same pieces",
		Long: `Plan the same pieces once per candidate stock length and rank the
results by efficiency, then by number of bars.`,
		Example: `  barcut compare --stocks "6,9,12" --pieces "5*3 2.4*4"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompare(cmd, opts, args)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.stocks, "stocks", "", "Candidate stock lengths, e.g. \"6,9,12\"")
	cmd.Flags().IntVar(&opts.maxSubset, "max-subset", -1, "Cap on pieces tried per bar, 0 for none (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "text", "Output format: text, json or yaml")
	_ = cmd.MarkFlagRequired("stocks")
	return cmd
}

func (a *app) runCompare(cmd *cobra.Command, opts *compareOptions, args []string) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}
	stocks, err := importer.ParseLengths(opts.stocks)
	if err != nil {
		return WrapError(ExitInvalidInput, "invalid --stocks", err)
	}
	pieces, err := a.collect(opts.pieceFlags, args)
	if err != nil {
		return err
	}
	planner, err := a.planner(opts.maxSubset)
	if err != nil {
		return err
	}

	results, err := engine.CompareStockLengths(cmd.Context(), planner, pieces, stocks)
	if err != nil {
		return planError(err)
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		return export.WriteJSON(out, results)
	case "yaml":
		return export.WriteYAML(out, results)
	}
	return a.writeComparison(out, len(pieces), results)
}

func (a *app) writeComparison(out io.Writer, pieceCount int, results []engine.StockComparison) error {
	num := func(v float64) string {
		return strconv.FormatFloat(v, 'f', a.cfg.Decimals, 64) + a.cfg.Unit
	}

	if _, err := fmt.Fprintf(out, "Stock length comparison for %d pieces:\n", pieceCount); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSTOCK\tBARS\tWASTE\tEFFICIENCY")
	rank := 0
	for _, r := range results {
		stock := export.FormatLength(r.StockLength) + a.cfg.Unit
		if !r.Feasible {
			fmt.Fprintf(tw, "-\t%s\t-\t-\tinfeasible (%d pieces too long)\n", stock, len(r.Oversized))
			continue
		}
		rank++
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%.2f%%\n", rank, stock, r.Plan.TotalStockUsed, num(r.Plan.TotalWaste), r.Plan.Efficiency)
	}
	return tw.Flush()
}
