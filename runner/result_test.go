package runner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuketest/cuke-runner/types"
)

func TestSuiteAccumulatorEmptyRun(t *testing.T) {
	acc := NewSuiteAccumulator()
	result := acc.Finish()

	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.Features)
	assert.Empty(t, result.ParseFailures)
	assert.Equal(t, types.StatusSkip, result.Status)
	assert.NoError(t, result.Err())
}

func TestSuiteAccumulatorAggregatesStats(t *testing.T) {
	acc := NewSuiteAccumulator()
	acc.FoldFeature(&FeatureResult{
		Name:   "a",
		Status: types.StatusPass,
		Stats:  ResultStats{Total: 2, Passed: 2},
	})
	acc.FoldFeature(&FeatureResult{
		Name:   "b",
		Status: types.StatusFail,
		Stats:  ResultStats{Total: 3, Passed: 1, Failed: 1, Skipped: 1},
	})

	result := acc.Finish()
	assert.Equal(t, types.StatusFail, result.Status)
	assert.Equal(t, 5, result.Stats.Total)
	assert.Equal(t, 3, result.Stats.Passed)
	assert.Equal(t, 1, result.Stats.Failed)
	assert.Equal(t, 1, result.Stats.Skipped)

	err := result.Err()
	require.Error(t, err)
	assert.ErrorContains(t, err, `feature "b" failed`)
}

func TestSuiteAccumulatorParseFailureForcesFail(t *testing.T) {
	acc := NewSuiteAccumulator()
	acc.FoldFeature(&FeatureResult{
		Name:   "fine",
		Status: types.StatusPass,
		Stats:  ResultStats{Total: 1, Passed: 1},
	})
	acc.FoldParseFailure("broken.feature", errors.New("bad syntax"))

	result := acc.Finish()
	assert.Equal(t, types.StatusFail, result.Status)

	err := result.Err()
	require.Error(t, err)
	assert.ErrorContains(t, err, "bad syntax")
}

func TestSuiteAccumulatorFinishSnapshotStable(t *testing.T) {
	acc := NewSuiteAccumulator()
	acc.FoldFeature(&FeatureResult{Name: "a", Status: types.StatusPass, Stats: ResultStats{Total: 1, Passed: 1}})

	first := acc.Finish()
	firstStats := first.Stats
	second := acc.Finish()

	assert.Same(t, first, second)
	assert.Equal(t, firstStats, second.Stats, "repeated Finish with no new folds must not drift")

	// A later fold is reflected by the next Finish; the last snapshot
	// is authoritative.
	acc.FoldFeature(&FeatureResult{Name: "b", Status: types.StatusFail, Stats: ResultStats{Total: 1, Failed: 1}})
	third := acc.Finish()
	assert.Same(t, first, third)
	assert.Equal(t, types.StatusFail, third.Status)
	assert.Equal(t, 2, third.Stats.Total)
}

func TestStatusCombine(t *testing.T) {
	tests := []struct {
		a, b, want types.Status
	}{
		{types.StatusSkip, types.StatusSkip, types.StatusSkip},
		{types.StatusSkip, types.StatusPass, types.StatusPass},
		{types.StatusPass, types.StatusFail, types.StatusFail},
		{types.StatusFail, types.StatusPass, types.StatusFail},
		{types.StatusFail, types.StatusSkip, types.StatusFail},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Combine(tt.b))
	}
}
