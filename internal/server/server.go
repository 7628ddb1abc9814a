// Package server exposes the planner over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/piwi3910/BarCut/internal/config"
	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/export"
	"github.com/piwi3910/BarCut/internal/importer"
	"github.com/piwi3910/BarCut/internal/model"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// PlanRequest is the body of POST /api/plan. A missing stock length or
// subset cap falls back to the configured value.
type PlanRequest struct {
	StockLength   *float64  `json:"stock_length"`
	Pieces        []float64 `json:"pieces"`
	MaxSubsetSize *int      `json:"max_subset_size"`
}

// CompareRequest is the body of POST /api/compare.
type CompareRequest struct {
	StockLengths  []float64 `json:"stock_lengths"`
	Pieces        []float64 `json:"pieces"`
	MaxSubsetSize *int      `json:"max_subset_size"`
}

// CompareResponse lists the candidates best first.
type CompareResponse struct {
	ID      string                   `json:"id"`
	Results []engine.StockComparison `json:"results"`
}

// EstimateRequest is the body of POST /api/estimate.
type EstimateRequest struct {
	StockLength  *float64  `json:"stock_length"`
	Pieces       []float64 `json:"pieces"`
	WastePercent *float64  `json:"waste_percent"`
	PricePerBar  *float64  `json:"price_per_bar"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the planning API.
type Server struct {
	cfg      config.Config
	planner  *engine.Planner
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	newID    func() string
}

// New creates a server. planner carries the recorder for metrics; gatherer
// backs /metrics and may be nil to disable it.
func New(cfg config.Config, planner *engine.Planner, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	if planner == nil {
		planner = engine.New(engine.Options{MaxSubsetSize: cfg.MaxSubsetSize})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		planner:  planner,
		gatherer: gatherer,
		logger:   logger,
		newID:    func() string { return uuid.New().String() },
	}
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/plan", s.handlePlan)
	mux.HandleFunc("POST /api/compare", s.handleCompare)
	mux.HandleFunc("POST /api/estimate", s.handleEstimate)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return s.logRequests(mux)
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if !s.decode(w, r, &req) {
		return
	}

	stock := s.cfg.StockLength
	if req.StockLength != nil {
		stock = *req.StockLength
	}
	planner, err := s.plannerFor(req.MaxSubsetSize)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := engine.Validate(nil, stock); err != nil {
		s.writeError(w, err)
		return
	}

	valid, ignored := importer.SplitOversized(req.Pieces, stock)

	ctx, cancel := s.requestContext(r)
	defer cancel()

	plan, err := planner.Plan(ctx, valid, stock)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := s.newID()
	s.logger.Info("plan computed",
		"id", id,
		"pieces", len(valid),
		"ignored", len(ignored),
		"bars", plan.TotalStockUsed,
		"efficiency", plan.Efficiency)

	writeJSON(w, http.StatusOK, export.NewReport(id, plan, ignored, s.cfg.MinOffcutLength))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !s.decode(w, r, &req) {
		return
	}

	planner, err := s.plannerFor(req.MaxSubsetSize)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	results, err := engine.CompareStockLengths(ctx, planner, req.Pieces, req.StockLengths)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CompareResponse{ID: s.newID(), Results: results})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if !s.decode(w, r, &req) {
		return
	}

	stock := s.cfg.StockLength
	if req.StockLength != nil {
		stock = *req.StockLength
	}
	wastePercent := s.cfg.WastePercent
	if req.WastePercent != nil {
		wastePercent = *req.WastePercent
	}
	price := s.cfg.PricePerBar
	if req.PricePerBar != nil {
		price = *req.PricePerBar
	}
	if err := engine.Validate(req.Pieces, stock); err != nil {
		s.writeError(w, err)
		return
	}
	if wastePercent < 0 || price < 0 {
		s.writeError(w, fmt.Errorf("%w: waste_percent and price_per_bar must not be negative", engine.ErrInvalidConfiguration))
		return
	}

	writeJSON(w, http.StatusOK, model.EstimateBars(req.Pieces, stock, wastePercent, price))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// plannerFor returns the shared planner, or a copy with a per-request cap.
func (s *Server) plannerFor(maxSubset *int) (*engine.Planner, error) {
	if maxSubset == nil {
		return s.planner, nil
	}
	if *maxSubset < 0 {
		return nil, fmt.Errorf("%w: max_subset_size must not be negative", engine.ErrInvalidConfiguration)
	}
	p := *s.planner
	p.Options.MaxSubsetSize = *maxSubset
	return &p, nil
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.cfg.Server.RequestTimeout > 0 {
		return context.WithTimeout(r.Context(), s.cfg.Server.RequestTimeout)
	}
	return context.WithCancel(r.Context())
}

// decode reads a JSON body into v, answering 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

// writeError maps planner errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	} else {
		s.logger.Warn("request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// StatusFor returns the HTTP status for a planner error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
