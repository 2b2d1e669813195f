package metrics

import (
	"testing"
	"time"

	"github.com/cuketest/cuke-runner/types"
)

func TestRecordSuite(t *testing.T) {
	// Smoke test: recording must not panic for any valid status.
	for _, status := range []types.Status{types.StatusPass, types.StatusFail, types.StatusSkip} {
		RecordSuite("test-run", status, 5, 3, 1, 1, 2*time.Second)
	}
}

func TestRecordError(t *testing.T) {
	RecordError("test error")
	RecordErrorDetails("wrapped", assertError{})
}

type assertError struct{}

func (assertError) Error() string { return "detail" }
