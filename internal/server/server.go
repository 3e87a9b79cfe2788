// Package server serves the water quality dashboard and its JSON API.
package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/config"
	"github.com/dotcommander/riverwqi/internal/metrics"
)

// Server renders the dashboard page and answers the JSON, report and chart
// routes for one shared Analyzer.
type Server struct {
	analyzer *analyzer.Analyzer
	addr     string
	plot     config.PlotConfig
	logger   *zap.SugaredLogger
	tmpl     *template.Template
}

// NewServer creates a dashboard server. The analyzer is shared by every
// request. A nil logger disables logging.
func NewServer(a *analyzer.Analyzer, cfg *config.Config, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{
		analyzer: a,
		addr:     cfg.Server.Addr,
		plot:     cfg.Plot,
		logger:   logger,
		tmpl:     newTemplates(),
	}
}

// Handler returns the routed handler with per-route latency metrics and
// /metrics. Run serves it; tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.handle(mux, "/", s.handleIndex)
	s.handle(mux, "/health", s.handleHealth)
	s.handle(mux, "/api/predict", s.handleAPIPredict)
	s.handle(mux, "/api/batch", s.handleAPIBatch)
	s.handle(mux, "/api/trend", s.handleAPITrend)
	s.handle(mux, "/api/tables", s.handleAPITables)
	s.handle(mux, "/chart.png", s.handleChart)
	s.handle(mux, "/report.txt", s.handleReportText)
	s.handle(mux, "/report.pdf", s.handleReportPDF)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// handle registers h on route and records its latency by status code.
func (s *Server) handle(mux *http.ServeMux, route string, h http.HandlerFunc) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		metrics.HTTPRequestDuration.
			WithLabelValues(route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warnw("dashboard shutdown", "error", err)
		}
	}()

	s.logger.Infow("dashboard listening", "addr", s.addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
