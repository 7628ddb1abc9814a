package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/export"
	"github.com/piwi3910/BarCut/internal/importer"
	"github.com/piwi3910/BarCut/internal/model"
)

type planOptions struct {
	pieceFlags
	stock     float64
	maxSubset int
	format    string
	pdf       string
	labels    string
	xlsx      string
	dxf       string
}

func newPlanCmd(a *app) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan [lengths...]",
		Short: "Compute a cutting plan",
		Long: `Compute a cutting plan for the given pieces on one stock length.

Pieces longer than the stock are reported and left out of the plan.`,
		Example: `  barcut plan 5 5 5 --stock 12
  barcut plan --pieces "4.2*2, 3.6" --format json
  barcut plan --file cutlist.xlsx --pdf plan.pdf --labels labels.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(cmd, opts, args)
		},
	}

	opts.register(cmd)
	cmd.Flags().Float64VarP(&opts.stock, "stock", "s", model.DefaultStockLength, "Stock bar length (default from config)")
	cmd.Flags().IntVar(&opts.maxSubset, "max-subset", -1, "Cap on pieces tried per bar, 0 for none (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "Write a PDF with bar diagrams")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "Write a PDF of QR-coded piece labels")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "Write an Excel workbook")
	cmd.Flags().StringVar(&opts.dxf, "dxf", "", "Write a DXF drawing")
	return cmd
}

func checkFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return NewCLIError(ExitInvalidInput, fmt.Sprintf("unknown format %q, want text, json or yaml", format))
	}
}

// planner returns a planner honouring --max-subset when it was given.
func (a *app) planner(maxSubset int) (*engine.Planner, error) {
	if maxSubset < -1 {
		return nil, NewCLIError(ExitInvalidInput, "--max-subset must not be negative")
	}
	if maxSubset == -1 {
		maxSubset = a.cfg.MaxSubsetSize
	}
	return engine.New(engine.Options{MaxSubsetSize: maxSubset}), nil
}

func (a *app) runPlan(cmd *cobra.Command, opts *planOptions, args []string) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}
	pieces, err := a.collect(opts.pieceFlags, args)
	if err != nil {
		return err
	}
	planner, err := a.planner(opts.maxSubset)
	if err != nil {
		return err
	}

	stock := a.stockLength(cmd, opts.stock)
	if err := engine.Validate(nil, stock); err != nil {
		return planError(err)
	}

	valid, ignored := importer.SplitOversized(pieces, stock)
	if len(ignored) > 0 {
		a.logger.Warn("pieces exceed stock length and were ignored", "count", len(ignored), "stock_length", stock)
	}

	plan, err := planner.Plan(cmd.Context(), valid, stock)
	if err != nil {
		return planError(err)
	}
	id := uuid.New().String()
	a.logger.Info("plan computed", "id", id, "bars", plan.TotalStockUsed, "efficiency", plan.Efficiency)

	if err := a.writePlan(cmd.OutOrStdout(), opts.format, id, plan, pieces, ignored); err != nil {
		return err
	}
	return a.exportPlan(opts, id, plan)
}

func (a *app) writePlan(out io.Writer, format, id string, plan model.Plan, requested, ignored []float64) error {
	switch format {
	case "json":
		return export.WriteJSON(out, export.NewReport(id, plan, ignored, a.cfg.MinOffcutLength))
	case "yaml":
		return export.WriteYAML(out, export.NewReport(id, plan, ignored, a.cfg.MinOffcutLength))
	}

	textOpts := export.TextOptionsFromSettings(a.cfg.Settings)
	textOpts.Requested = requested
	textOpts.Ignored = ignored
	if err := export.WriteText(out, plan, textOpts); err != nil {
		return err
	}
	return a.writeOffcuts(out, plan)
}

// writeOffcuts lists the remnants worth keeping after the text report.
func (a *app) writeOffcuts(out io.Writer, plan model.Plan) error {
	offcuts := model.DetectOffcuts(plan, a.cfg.MinOffcutLength)
	if len(offcuts) == 0 {
		return nil
	}
	format := fmt.Sprintf("%%.%df%%s", a.cfg.Decimals)
	if _, err := fmt.Fprintf(out, "Reusable offcuts (at least "+format+"):\n", a.cfg.MinOffcutLength, a.cfg.Unit); err != nil {
		return err
	}
	for _, o := range offcuts {
		if _, err := fmt.Fprintf(out, "  Pattern %d: "+format+"\n", o.PatternIndex, o.Length, a.cfg.Unit); err != nil {
			return err
		}
	}
	return nil
}

// exportPlan writes every file requested on the command line.
func (a *app) exportPlan(opts *planOptions, id string, plan model.Plan) error {
	exports := []struct {
		kind  string
		path  string
		write func(string) error
	}{
		{"pdf", opts.pdf, func(p string) error { return export.ExportPDF(p, plan, a.cfg.Settings) }},
		{"labels", opts.labels, func(p string) error { return export.ExportLabels(p, plan, id, a.cfg.Unit) }},
		{"xlsx", opts.xlsx, func(p string) error { return export.ExportExcel(p, plan, a.cfg.Settings) }},
		{"dxf", opts.dxf, func(p string) error { return export.ExportDXF(p, plan) }},
	}

	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path); err != nil {
			return WrapError(ExitError, fmt.Sprintf("failed to write %s export", e.kind), err)
		}
		a.logger.Info("plan exported", "kind", e.kind, "path", e.path)
	}
	return nil
}
