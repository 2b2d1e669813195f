package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/log"
	"github.com/rs/cors"

	"github.com/cuketest/cuke-runner/runner"
)

// HealthzServer reports liveness plus a snapshot of the most recent
// suite run, so an operator polling /healthz can see what the runner
// last did without scraping metrics.
type HealthzServer struct {
	ctx     context.Context
	server  *http.Server
	log     log.Logger
	version string
	result  func() *runner.SuiteResult
}

type healthzStatus struct {
	Status  string   `json:"status"`
	Version string   `json:"version"`
	LastRun *lastRun `json:"last_run,omitempty"`
}

type lastRun struct {
	RunID         string `json:"run_id"`
	Status        string `json:"status"`
	Scenarios     int    `json:"scenarios"`
	Passed        int    `json:"passed"`
	Failed        int    `json:"failed"`
	Skipped       int    `json:"skipped"`
	ParseFailures int    `json:"parse_failures"`
}

// NewHealthzServer creates a healthz server. result may return nil
// before the first suite run completes; last_run is omitted until
// then.
func NewHealthzServer(logger log.Logger, version string, result func() *runner.SuiteResult) *HealthzServer {
	return &HealthzServer{log: logger, version: version, result: result}
}

func (h *HealthzServer) Start(ctx context.Context, addr string) error {
	hdlr := http.NewServeMux()
	hdlr.HandleFunc("/healthz", h.Handle)
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})
	h.server = &http.Server{
		Handler: c.Handler(hdlr),
		Addr:    addr,
	}
	h.ctx = ctx
	return h.server.ListenAndServe()
}

func (h *HealthzServer) Shutdown() error {
	return h.server.Shutdown(h.ctx)
}

func (h *HealthzServer) Handle(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("Received health check request", "path", r.URL.Path)

	status := healthzStatus{Status: "ok", Version: h.version}
	if h.result != nil {
		if res := h.result(); res != nil {
			status.LastRun = &lastRun{
				RunID:         res.RunID,
				Status:        string(res.Status),
				Scenarios:     res.Stats.Total,
				Passed:        res.Stats.Passed,
				Failed:        res.Stats.Failed,
				Skipped:       res.Stats.Skipped,
				ParseFailures: len(res.ParseFailures),
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status) //nolint:errcheck
}
