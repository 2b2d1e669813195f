package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/cuketest/cuke-runner/registry"
	"github.com/cuketest/cuke-runner/types"
)

// ExecutorConfig holds configuration for the default executor.
type ExecutorConfig struct {
	Registry    *registry.Registry
	Log         log.Logger
	Strict      bool          // undefined steps fail the scenario instead of skipping it
	StepTimeout time.Duration // per-step timeout, 0 means none
}

// executor is the default Executor: it runs a feature's scenarios
// sequentially, matching each step against the registry.
type executor struct {
	registry    *registry.Registry
	log         log.Logger
	strict      bool
	stepTimeout time.Duration
}

// NewExecutor creates the default sequential executor.
func NewExecutor(cfg ExecutorConfig) (Executor, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	return &executor{
		registry:    cfg.Registry,
		log:         cfg.Log,
		strict:      cfg.Strict,
		stepTimeout: cfg.StepTimeout,
	}, nil
}

// ExecuteFeature implements Executor. Scenarios run in sequence
// order; a failing scenario never stops the ones after it.
func (e *executor) ExecuteFeature(ctx context.Context, feature *types.Feature) (*FeatureResult, error) {
	start := time.Now()
	result := &FeatureResult{
		Name:  feature.Name,
		Path:  feature.Path,
		Stats: ResultStats{StartTime: start},
	}

	status := types.StatusSkip
	for i := range feature.Scenarios {
		sr := e.runScenario(ctx, &feature.Scenarios[i])
		e.log.Debug("Scenario finished", "feature", feature.Name,
			"scenario", sr.Name, "status", sr.Status)
		result.Scenarios = append(result.Scenarios, sr)
		result.Stats.add(sr.Status)
		status = status.Combine(sr.Status)
	}

	result.Status = status
	result.Duration = time.Since(start)
	result.Stats.EndTime = time.Now()
	return result, nil
}

// runScenario executes a scenario's steps in order. After the first
// failing, pending or undefined step, the remaining steps are marked
// skipped.
func (e *executor) runScenario(ctx context.Context, scenario *types.Scenario) ScenarioResult {
	start := time.Now()
	result := ScenarioResult{Name: scenario.Name, Status: types.StatusPass}

	skipRemaining := false
	for _, step := range scenario.Steps {
		sr := StepResult{Keyword: step.Keyword, Text: step.Text, Status: types.StatusSkip}

		if !skipRemaining {
			stepStart := time.Now()
			sr.Status, sr.Error = e.runStep(ctx, step)
			sr.Duration = time.Since(stepStart)
			if sr.Status != types.StatusPass {
				skipRemaining = true
			}
			if sr.Status == types.StatusFail && result.Error == nil {
				result.Error = sr.Error
			}
		}

		result.Steps = append(result.Steps, sr)
		result.Status = resolveScenarioStatus(result.Status, sr.Status)
	}

	result.Duration = time.Since(start)
	return result
}

// resolveScenarioStatus folds a step status into the scenario status.
// Unlike aggregate statistics, a single skipped step demotes a
// passing scenario to skipped: it did not run to completion.
func resolveScenarioStatus(current, step types.Status) types.Status {
	if current == types.StatusFail || step == types.StatusFail {
		return types.StatusFail
	}
	if current == types.StatusSkip || step == types.StatusSkip {
		return types.StatusSkip
	}
	return types.StatusPass
}

func (e *executor) runStep(ctx context.Context, step types.Step) (types.Status, error) {
	match, ok := e.registry.Match(step.Text)
	if !ok {
		if e.strict {
			return types.StatusFail, fmt.Errorf("no step definition matches %q", step.Text)
		}
		e.log.Debug("Undefined step, skipping", "step", step.Text)
		return types.StatusSkip, nil
	}

	err := e.invoke(ctx, match)
	switch {
	case err == nil:
		return types.StatusPass, nil
	case errors.Is(err, registry.ErrPending):
		e.log.Debug("Pending step, skipping", "step", step.Text)
		return types.StatusSkip, nil
	default:
		return types.StatusFail, err
	}
}

// invoke calls the step implementation, converting panics into
// failures so a broken step cannot take down the run.
func (e *executor) invoke(ctx context.Context, match *registry.StepMatch) (err error) {
	if e.stepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.stepTimeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step panicked: %v", r)
		}
	}()
	return match.Definition.Fn(ctx, match.Args)
}
