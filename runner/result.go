package runner

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/cuketest/cuke-runner/types"
)

// StepResult captures the outcome of a single step.
type StepResult struct {
	Keyword  string
	Text     string
	Status   types.Status
	Error    error
	Duration time.Duration
}

// ScenarioResult captures the outcome of a single scenario run.
type ScenarioResult struct {
	Name     string
	Status   types.Status
	Steps    []StepResult
	Error    error // first step error, if any
	Duration time.Duration
}

// FeatureResult captures aggregated results for one feature.
type FeatureResult struct {
	Name      string
	Path      string
	Scenarios []ScenarioResult
	Status    types.Status
	Duration  time.Duration
	Stats     ResultStats
}

// ParseFailure records a feature file that could not be parsed.
type ParseFailure struct {
	Path  string
	Error error
}

// ResultStats tracks scenario statistics at each level.
type ResultStats struct {
	Total     int
	Passed    int
	Failed    int
	Skipped   int
	StartTime time.Time
	EndTime   time.Time
}

func (s *ResultStats) add(status types.Status) {
	s.Total++
	switch status {
	case types.StatusPass:
		s.Passed++
	case types.StatusFail:
		s.Failed++
	case types.StatusSkip:
		s.Skipped++
	}
}

// SuiteResult captures the complete suite run results. Features
// appear in fold order, which is discovery order for a sequential
// run.
type SuiteResult struct {
	RunID         string
	Features      []*FeatureResult
	ParseFailures []ParseFailure
	Status        types.Status
	Duration      time.Duration
	Stats         ResultStats
}

// Err aggregates everything that made the suite non-passing into a
// single error, or nil when the suite passed.
func (s *SuiteResult) Err() error {
	var merr *multierror.Error
	for _, pf := range s.ParseFailures {
		merr = multierror.Append(merr, pf.Error)
	}
	for _, f := range s.Features {
		if f.Status == types.StatusFail {
			merr = multierror.Append(merr, fmt.Errorf("feature %q failed (%d of %d scenarios)",
				f.Name, f.Stats.Failed, f.Stats.Total))
		}
	}
	return merr.ErrorOrNil()
}

func (s *SuiteResult) String() string {
	return fmt.Sprintf("Suite %s: %d features, %d scenarios (%d passed, %d failed, %d skipped), %d parse failures, status=%s",
		s.RunID, len(s.Features), s.Stats.Total, s.Stats.Passed, s.Stats.Failed, s.Stats.Skipped,
		len(s.ParseFailures), s.Status)
}

// Accumulator folds per-feature outcomes into suite state. It is
// owned by one orchestrator for the duration of one run.
type Accumulator interface {
	// FoldFeature records the result of an executed feature.
	FoldFeature(result *FeatureResult)
	// FoldParseFailure records a feature file that failed to parse.
	FoldParseFailure(path string, err error)
	// Finish returns the accumulated suite result. It is idempotent
	// and side-effect-free; repeated calls return the same object.
	Finish() *SuiteResult
}

// SuiteAccumulator is the default Accumulator. Folds are serialized
// with a mutex so a concurrent executor cannot corrupt the fold
// order it chooses.
type SuiteAccumulator struct {
	mu     sync.Mutex
	result *SuiteResult
	start  time.Time
	dirty  bool
}

// NewSuiteAccumulator creates an empty accumulation with a fresh run
// ID.
func NewSuiteAccumulator() *SuiteAccumulator {
	now := time.Now()
	return &SuiteAccumulator{
		result: &SuiteResult{
			RunID: uuid.New().String(),
			Stats: ResultStats{StartTime: now},
		},
		start: now,
	}
}

// FoldFeature implements Accumulator.
func (a *SuiteAccumulator) FoldFeature(result *FeatureResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result.Features = append(a.result.Features, result)
	a.dirty = true
}

// FoldParseFailure implements Accumulator.
func (a *SuiteAccumulator) FoldParseFailure(path string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result.ParseFailures = append(a.result.ParseFailures, ParseFailure{Path: path, Error: err})
	a.dirty = true
}

// Finish implements Accumulator. The snapshot of the last call is
// authoritative; nothing is re-run, and calling Finish again without
// intervening folds returns the identical snapshot.
func (a *SuiteAccumulator) Finish() *SuiteResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.dirty && !a.result.Stats.EndTime.IsZero() {
		return a.result
	}
	a.dirty = false

	stats := ResultStats{StartTime: a.start, EndTime: time.Now()}
	status := types.StatusSkip
	for _, f := range a.result.Features {
		stats.Total += f.Stats.Total
		stats.Passed += f.Stats.Passed
		stats.Failed += f.Stats.Failed
		stats.Skipped += f.Stats.Skipped
		status = status.Combine(f.Status)
	}
	if len(a.result.ParseFailures) > 0 {
		status = types.StatusFail
	}

	a.result.Stats = stats
	a.result.Status = status
	a.result.Duration = stats.EndTime.Sub(stats.StartTime)
	return a.result
}
