package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tunegrab/internal/core"
)

type Server struct {
	config  *core.ServerConfig
	logger  *zap.Logger
	server  *http.Server
	metrics *Metrics
}

type Metrics struct {
	SearchesTotal    prometheus.Counter
	SelectionsTotal  *prometheus.CounterVec
	FetchErrorsTotal prometheus.Counter
	SearchDuration   prometheus.Histogram
	LibrarySize      prometheus.Gauge
}

func newMetrics(registry *prometheus.Registry) *Metrics {
	metrics := &Metrics{
		SearchesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tunegrab_searches_total",
				Help: "Total number of track searches performed",
			},
		),
		SelectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tunegrab_selections_total",
				Help: "Total number of resolution outcomes",
			},
			[]string{"mode"},
		),
		FetchErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tunegrab_fetch_errors_total",
				Help: "Total number of failed track fetches",
			},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tunegrab_search_duration_seconds",
				Help:    "Time spent searching for candidate tracks",
				Buckets: prometheus.DefBuckets,
			},
		),
		LibrarySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tunegrab_library_size",
				Help: "Current number of tracks in the library",
			},
		),
	}

	registry.MustRegister(
		metrics.SearchesTotal,
		metrics.SelectionsTotal,
		metrics.FetchErrorsTotal,
		metrics.SearchDuration,
		metrics.LibrarySize,
	)

	return metrics
}

func setupRoutes(registry *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"tunegrab"}`))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready","service":"tunegrab"}`))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>TuneGrab</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .header { color: #333; }
        .endpoint { margin: 10px 0; }
        .endpoint a { text-decoration: none; color: #0066cc; }
        .endpoint a:hover { text-decoration: underline; }
    </style>
</head>
<body>
    <h1 class="header">🎵 TuneGrab</h1>
    <p>Track search and download service</p>

    <h2>Endpoints</h2>
    <div class="endpoint">📊 <a href="/metrics">Metrics</a> - Prometheus metrics</div>
    <div class="endpoint">💚 <a href="/healthz">Health</a> - Health check</div>
    <div class="endpoint">✅ <a href="/readyz">Ready</a> - Readiness check</div>
</body>
</html>`))
	})

	return mux
}

func createHTTPServer(config *core.ServerConfig, mux *http.ServeMux) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      mux,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
}

// NewServer creates a metrics server with its own registry so repeated
// construction does not collide on collector registration.
func NewServer(config *core.ServerConfig, logger *zap.Logger) *Server {
	registry := prometheus.NewRegistry()
	metrics := newMetrics(registry)
	mux := setupRoutes(registry)

	return &Server{
		config:  config,
		logger:  logger,
		server:  createHTTPServer(config, mux),
		metrics: metrics,
	}
}

func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server",
		zap.String("addr", s.server.Addr))

	go func() {
		<-ctx.Done()
		s.logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Failed to shutdown HTTP server gracefully", zap.Error(err))
		}
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

func (s *Server) GetMetrics() *Metrics {
	return s.metrics
}

func (s *Server) RecordSearch(duration time.Duration) {
	s.metrics.SearchesTotal.Inc()
	s.metrics.SearchDuration.Observe(duration.Seconds())
}

func (s *Server) RecordSelection(mode string) {
	s.metrics.SelectionsTotal.WithLabelValues(mode).Inc()
}

func (s *Server) RecordFetchError() {
	s.metrics.FetchErrorsTotal.Inc()
}

func (s *Server) SetLibrarySize(size int) {
	s.metrics.LibrarySize.Set(float64(size))
}
