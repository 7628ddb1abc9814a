package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/export"
	"github.com/piwi3910/BarCut/internal/model"
)

type estimateOptions struct {
	pieceFlags
	stock        float64
	wastePercent float64
	price        float64
	format       string
}

func newEstimateCmd(a *app) *cobra.Command {
	opts := &estimateOptions{}

	cmd := &cobra.Command{
		Use:   "estimate [lengths...]",
		Short: "Estimate how many bars to buy without planning the cuts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEstimate(cmd, opts, args)
		},
	}

	opts.register(cmd)
	cmd.Flags().Float64VarP(&opts.stock, "stock", "s", model.DefaultStockLength, "Stock bar length (default from config)")
	cmd.Flags().Float64Var(&opts.wastePercent, "waste", 0, "Waste allowance in percent (default from config)")
	cmd.Flags().Float64Var(&opts.price, "price", 0, "Price per bar (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "text", "Output format: text, json or yaml")
	return cmd
}

func (a *app) runEstimate(cmd *cobra.Command, opts *estimateOptions, args []string) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}
	pieces, err := a.collect(opts.pieceFlags, args)
	if err != nil {
		return err
	}

	stock := a.stockLength(cmd, opts.stock)
	if err := engine.Validate(pieces, stock); err != nil {
		return planError(err)
	}
	wastePercent := a.cfg.WastePercent
	if cmd.Flags().Changed("waste") {
		wastePercent = opts.wastePercent
	}
	price := a.cfg.PricePerBar
	if cmd.Flags().Changed("price") {
		price = opts.price
	}
	if wastePercent < 0 || price < 0 {
		return NewCLIError(ExitInvalidInput, "--waste and --price must not be negative")
	}

	est := model.EstimateBars(pieces, stock, wastePercent, price)

	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		return export.WriteJSON(out, est)
	case "yaml":
		return export.WriteYAML(out, est)
	}

	num := func(v float64) string {
		return strconv.FormatFloat(v, 'f', a.cfg.Decimals, 64) + a.cfg.Unit
	}
	lines := []string{
		fmt.Sprintf("Total length: %s", num(est.TotalLength)),
		fmt.Sprintf("Stock length: %s", num(est.StockLength)),
		fmt.Sprintf("Bars needed (exact): %.2f", est.BarsNeededExact),
		fmt.Sprintf("Minimum bars: %d", est.BarsNeededMin),
		fmt.Sprintf("Recommended bars (+%s%% waste): %d", export.FormatLength(est.WastePercent), est.BarsWithWaste),
	}
	if est.PricePerBar > 0 {
		lines = append(lines, fmt.Sprintf("Estimated cost: %.2f", est.EstimatedCost))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(out, l); err != nil {
			return err
		}
	}
	return nil
}
