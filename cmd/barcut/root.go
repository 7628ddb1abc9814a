package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// skipConfigAnnotation marks commands that must run without a valid config.
const skipConfigAnnotation = "barcut/skip-config"

// app carries the state shared by all commands of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "barcut",
		Short: "BarCut - stock bar cutting planner",
		Long: `BarCut plans how to cut required piece lengths out of stock bars of
one fixed length (steel profiles, rebar, tubes, timber) so that as few
bars as possible are used and each bar leaves the least waste.`,
		PersistentPreRunE: a.load,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.barcut/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override: debug, info, warn or error")

	root.AddCommand(
		newPlanCmd(a),
		newInteractiveCmd(a),
		newCompareCmd(a),
		newEstimateCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// load reads the configuration and sets up logging before any command runs.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if cmd.Annotations[skipConfigAnnotation] != "true" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return WrapError(ExitConfigError, "failed to load configuration", err)
		}
		cfg = loaded
	}

	if a.logLevel != "" {
		if _, err := config.ParseLevel(a.logLevel); err != nil {
			return WrapError(ExitConfigError, "invalid --log-level", err)
		}
		cfg.Log.Level = a.logLevel
	}

	a.cfg = cfg
	a.logger = config.NewLogger(cmd.ErrOrStderr(), cfg.Log)
	a.logger.Debug("configuration loaded", "stock_length", cfg.StockLength, "unit", cfg.Unit)
	return nil
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return HandleError(root, err)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("BarCut " + version)
		},
	}
}
