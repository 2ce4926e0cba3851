// Package server serves the player's statistics and Prometheus metrics over
// HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayoisaiah/guardian/internal/stats"
)

const (
	statsEndpoint   = "/api/stats"
	metricsEndpoint = "/metrics"
)

// ReportFunc returns the current report. It is called from request
// goroutines.
type ReportFunc func() (stats.Report, error)

// Server is the stats HTTP server.
type Server struct {
	server   *http.Server
	listener net.Listener
	logger   *slog.Logger
	report   ReportFunc
	port     int
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// New creates a server for 127.0.0.1:port. Port 0 picks a free port.
func New(
	port int,
	report ReportFunc,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Server {
	s := &Server{
		port:   port,
		report: report,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(statsEndpoint, s.handleStats)
	mux.Handle(
		metricsEndpoint,
		promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler exposes the routes without a listener.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start binds the port and begins serving in the background.
func (s *Server) Start() error {
	l, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.port))
	if err != nil {
		return fmt.Errorf("stats server: %w", err)
	}

	s.listener = l

	s.logger.Info(
		"stats server listening",
		slog.String("addr", l.Addr().String()),
	)

	go func() {
		err := s.server.Serve(l)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("stats server failed", slog.Any("error", err))
		}
	}()

	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}

	return s.server.Shutdown(ctx)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

		return
	}

	report, err := s.report()
	if err != nil {
		s.logger.Error("unable to build report", slog.Any("error", err))
		http.Error(w, "report unavailable", http.StatusServiceUnavailable)

		return
	}

	var (
		b           []byte
		contentType string
	)

	switch stats.Format(r.URL.Query().Get("format")) {
	case stats.FormatYAML:
		b, err = report.ToYAML()
		contentType = "application/yaml"
	default:
		b, err = report.ToJSON()
		contentType = "application/json"
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(b)
}
