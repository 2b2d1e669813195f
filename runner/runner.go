// Package runner coordinates running a suite of features: it filters
// each parsed feature through a tag selector, drops features left
// without scenarios, hands the remainder to an executor and folds the
// outcomes into a suite accumulation. Scenario and step failures are
// data in the accumulation; only executor runtime errors propagate as
// hard errors.
package runner

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/cuketest/cuke-runner/tagexpr"
	"github.com/cuketest/cuke-runner/types"
)

// Executor runs an already-filtered feature and aggregates its
// scenarios' outcomes. Scenario-level failures must be represented in
// the result, not returned as an error; a non-nil error is a runtime
// failure that aborts the run.
type Executor interface {
	ExecuteFeature(ctx context.Context, feature *types.Feature) (*FeatureResult, error)
}

// Config holds configuration for creating an orchestrator.
type Config struct {
	Selector    tagexpr.Selector
	Executor    Executor
	Accumulator Accumulator // defaults to a fresh SuiteAccumulator
	Log         log.Logger
}

// Orchestrator processes features one at a time, in the order they
// are handed in, and owns its accumulation for the duration of one
// run. Construct a new orchestrator per run.
type Orchestrator struct {
	selector tagexpr.Selector
	executor Executor
	acc      Accumulator
	log      log.Logger
	tracer   trace.Tracer
}

// NewOrchestrator creates an orchestrator for a single suite run.
func NewOrchestrator(cfg Config) (*Orchestrator, error) {
	if cfg.Executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if cfg.Accumulator == nil {
		cfg.Accumulator = NewSuiteAccumulator()
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	return &Orchestrator{
		selector: cfg.Selector,
		executor: cfg.Executor,
		acc:      cfg.Accumulator,
		log:      cfg.Log,
		tracer:   otel.Tracer("suite orchestrator"),
	}, nil
}

// ProcessFeature filters the feature through the selector and, unless
// the filtered feature is vacuous, executes it and folds the result
// into the accumulation. A feature whose scenarios are all filtered
// out is dropped entirely: it contributes neither a pass nor a fail
// entry, so it cannot be mistaken for a genuinely empty feature in
// the final report.
func (o *Orchestrator) ProcessFeature(ctx context.Context, feature *types.Feature) error {
	filtered := o.selector.FilterFeature(feature)
	if len(filtered.Scenarios) == 0 {
		o.log.Debug("No scenarios selected, dropping feature",
			"feature", feature.Name, "path", feature.Path)
		return nil
	}

	ctx, span := o.tracer.Start(ctx, fmt.Sprintf("feature %s", filtered.Name))
	defer span.End()

	o.log.Debug("Executing feature", "feature", filtered.Name,
		"scenarios", len(filtered.Scenarios), "of", len(feature.Scenarios))
	result, err := o.executor.ExecuteFeature(ctx, filtered)
	if err != nil {
		return fmt.Errorf("executing feature %q: %w", filtered.Name, err)
	}

	o.acc.FoldFeature(result)
	return nil
}

// ProcessParseFailure records a feature file that failed to parse.
// The selector is never consulted for this path.
func (o *Orchestrator) ProcessParseFailure(path string, err error) {
	o.log.Debug("Recording parse failure", "path", path, "error", err)
	o.acc.FoldParseFailure(path, err)
}

// Finish returns the accumulated suite result. It can be called at
// any point and repeatedly; nothing is re-run.
func (o *Orchestrator) Finish() *SuiteResult {
	return o.acc.Finish()
}
