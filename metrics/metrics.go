package metrics

import (
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cuketest/cuke-runner/types"
)

const (
	MetricsNamespace = "cuke"
)

var (
	validResults = []types.Status{types.StatusPass, types.StatusFail, types.StatusSkip}

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	suiteResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_results",
		Help:      "Result of suite runs",
	}, []string{
		"run_id",
		"result",
	})

	suiteScenariosTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_scenarios_total",
		Help:      "Total number of scenarios run",
	}, []string{
		"run_id",
	})

	suiteScenariosPassed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_scenarios_passed",
		Help:      "Number of passed scenarios",
	}, []string{
		"run_id",
	})

	suiteScenariosFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_scenarios_failed",
		Help:      "Number of failed scenarios",
	}, []string{
		"run_id",
	})

	suiteParseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_parse_failures",
		Help:      "Number of feature files that failed to parse",
	}, []string{
		"run_id",
	})

	suiteDurationSeconds = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_duration_seconds",
		Help:      "Duration of the suite run in seconds",
	}, []string{
		"run_id",
	})
)

// RecordError increments the error counter for a named error class.
func RecordError(err string) {
	log.Debug("metric inc", "m", "errors_total", "error", err)
	errorsTotal.WithLabelValues(err).Inc()
}

// RecordErrorDetails concatenates the error message onto the metric
// name.
func RecordErrorDetails(name string, err error) {
	RecordError(name + ": " + err.Error())
}

// RecordSuite records the outcome of a completed suite run.
func RecordSuite(runID string, status types.Status, total, passed, failed, parseFailures int, duration time.Duration) {
	for _, result := range validResults {
		v := float64(0)
		if result == status {
			v = 1
		}
		suiteResults.WithLabelValues(runID, string(result)).Set(v)
	}
	suiteScenariosTotal.WithLabelValues(runID).Add(float64(total))
	suiteScenariosPassed.WithLabelValues(runID).Add(float64(passed))
	suiteScenariosFailed.WithLabelValues(runID).Add(float64(failed))
	suiteParseFailures.WithLabelValues(runID).Add(float64(parseFailures))
	suiteDurationSeconds.WithLabelValues(runID).Set(duration.Seconds())
}
