package service

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/log"

	"github.com/cuketest/cuke-runner/metrics"
	"github.com/cuketest/cuke-runner/runner"
)

const (
	DefaultHealthzHost = "0.0.0.0"
	DefaultHealthzPort = "8080"

	DefaultMetricsHost = "0.0.0.0"
	DefaultMetricsPort = "7300"
)

// Config holds the addresses the auxiliary HTTP servers bind to and
// the state they report from. Empty hosts and ports fall back to the
// defaults above.
type Config struct {
	Log log.Logger

	HealthzHost string
	HealthzPort string
	MetricsHost string
	MetricsPort string

	Version string
	// Result returns the most recent suite result, or nil before the
	// first run completes.
	Result func() *runner.SuiteResult
}

// Service runs the healthz and metrics servers alongside a runner in
// continuous mode.
type Service struct {
	config  Config
	Healthz *HealthzServer
	Metrics *MetricsServer
}

func New(cfg Config) *Service {
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}
	if cfg.HealthzHost == "" {
		cfg.HealthzHost = DefaultHealthzHost
	}
	if cfg.HealthzPort == "" {
		cfg.HealthzPort = DefaultHealthzPort
	}
	if cfg.MetricsHost == "" {
		cfg.MetricsHost = DefaultMetricsHost
	}
	if cfg.MetricsPort == "" {
		cfg.MetricsPort = DefaultMetricsPort
	}

	return &Service{
		config:  cfg,
		Healthz: NewHealthzServer(cfg.Log, cfg.Version, cfg.Result),
		Metrics: &MetricsServer{log: cfg.Log},
	}
}

func (s *Service) Start(ctx context.Context) {
	s.config.Log.Info("Service starting")

	go func() {
		addr := net.JoinHostPort(s.config.HealthzHost, s.config.HealthzPort)
		s.config.Log.Info("Starting healthz server", "addr", addr)
		if err := s.Healthz.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.config.Log.Error("Error starting healthz server", "err", err)
			metrics.RecordErrorDetails("error starting healthz server", err)
		}
	}()

	go func() {
		addr := net.JoinHostPort(s.config.MetricsHost, s.config.MetricsPort)
		s.config.Log.Info("Starting metrics server", "addr", addr)
		if err := s.Metrics.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.config.Log.Error("Error starting metrics server", "err", err)
			metrics.RecordErrorDetails("error starting metrics server", err)
		}
	}()

	s.config.Log.Info("Service started")
}

func (s *Service) Shutdown() {
	s.config.Log.Info("Service shutting down")

	_ = s.Healthz.Shutdown()
	s.config.Log.Debug("Healthz server stopped")

	_ = s.Metrics.Shutdown()
	s.config.Log.Debug("Metrics server stopped")

	s.config.Log.Info("Service stopped")
}
