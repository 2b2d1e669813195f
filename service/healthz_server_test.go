package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuketest/cuke-runner/runner"
	"github.com/cuketest/cuke-runner/types"
)

func TestHealthzReportsLastRun(t *testing.T) {
	last := &runner.SuiteResult{
		RunID:  "run-123",
		Status: types.StatusFail,
		Stats:  runner.ResultStats{Total: 5, Passed: 3, Failed: 1, Skipped: 1},
		ParseFailures: []runner.ParseFailure{
			{Path: "broken.feature"},
		},
	}
	h := NewHealthzServer(log.New(), "v1.2.3", func() *runner.SuiteResult { return last })

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got healthzStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "v1.2.3", got.Version)
	require.NotNil(t, got.LastRun)
	assert.Equal(t, "run-123", got.LastRun.RunID)
	assert.Equal(t, string(types.StatusFail), got.LastRun.Status)
	assert.Equal(t, 5, got.LastRun.Scenarios)
	assert.Equal(t, 3, got.LastRun.Passed)
	assert.Equal(t, 1, got.LastRun.Failed)
	assert.Equal(t, 1, got.LastRun.Skipped)
	assert.Equal(t, 1, got.LastRun.ParseFailures)
}

func TestHealthzBeforeFirstRun(t *testing.T) {
	h := NewHealthzServer(log.New(), "v1.2.3", func() *runner.SuiteResult { return nil })

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got healthzStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Nil(t, got.LastRun)
}

func TestServiceConfigDefaults(t *testing.T) {
	s := New(Config{Log: log.New()})
	assert.Equal(t, DefaultHealthzPort, s.config.HealthzPort)
	assert.Equal(t, DefaultMetricsPort, s.config.MetricsPort)
	assert.Equal(t, DefaultHealthzHost, s.config.HealthzHost)
	assert.Equal(t, DefaultMetricsHost, s.config.MetricsHost)

	s = New(Config{Log: log.New(), HealthzPort: "9999", MetricsPort: "9998"})
	assert.Equal(t, "9999", s.config.HealthzPort)
	assert.Equal(t, "9998", s.config.MetricsPort)
}
