package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/importer"
	"github.com/piwi3910/BarCut/internal/prompt"
)

const banner = `+------------------------------- CUTTING OPTIMIZER -------------------------------+
| Plans the cutting of stock bars (steel profiles, rebar and similar) to minimize |
| waste. Enter the stock length, then the required pieces one per line.           |
+---------------------------------------------------------------------------------+
`

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Enter the stock length and pieces at a prompt",
		Args:    cobra.NoArgs,
		RunE:    a.runInteractive,
	}
}

func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprint(out, banner); err != nil {
		return err
	}

	session := prompt.NewSession(cmd.InOrStdin(), out, a.cfg.Unit)
	stock, err := session.StockLength(a.cfg.StockLength)
	if err != nil {
		return WrapError(ExitError, "failed to read stock length", err)
	}
	pieces, err := session.Pieces()
	if err != nil {
		return WrapError(ExitError, "failed to read pieces", err)
	}
	if pieces == nil {
		pieces = []float64{}
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}

	valid, ignored := importer.SplitOversized(pieces, stock)
	planner := engine.New(engine.Options{MaxSubsetSize: a.cfg.MaxSubsetSize})
	plan, err := planner.Plan(cmd.Context(), valid, stock)
	if err != nil {
		return planError(err)
	}
	a.logger.Info("plan computed", "id", uuid.New().String(), "bars", plan.TotalStockUsed, "efficiency", plan.Efficiency)

	return a.writePlan(out, "text", "", plan, pieces, ignored)
}
