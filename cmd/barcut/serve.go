package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/metrics"
	"github.com/piwi3910/BarCut/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning HTTP API",
		Long: `Serve the planning API:

  POST /api/plan      plan pieces on one stock length
  POST /api/compare   rank candidate stock lengths
  POST /api/estimate  purchase estimate
  GET  /healthz       liveness
  GET  /metrics       Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			planner := engine.New(engine.Options{MaxSubsetSize: cfg.MaxSubsetSize})
			planner.Recorder = metrics.New(reg)

			srv := server.New(cfg, planner, reg, a.logger)
			if err := srv.ListenAndServe(cmd.Context()); err != nil {
				return WrapError(ExitError, "API server failed", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
