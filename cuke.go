package cuke

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/cuketest/cuke-runner/discovery"
	"github.com/cuketest/cuke-runner/exitcodes"
	"github.com/cuketest/cuke-runner/gherkin"
	"github.com/cuketest/cuke-runner/metrics"
	"github.com/cuketest/cuke-runner/registry"
	"github.com/cuketest/cuke-runner/runner"
	"github.com/cuketest/cuke-runner/tagexpr"
	"github.com/cuketest/cuke-runner/types"
)

// cuke is the behavior suite runner service: it discovers feature
// files, runs them through the orchestrator and reports the outcome.
type cuke struct {
	ctx      context.Context
	config   *Config
	version  string
	registry *registry.Registry
	executor runner.Executor
	source   discovery.Source
	selector tagexpr.Selector
	result   *runner.SuiteResult

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup

	shutdownCallback func(error) // Callback to signal application shutdown
}

func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*cuke, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("Creating runner with config",
		"featureDir", config.FeatureDir,
		"filter", config.Filter,
		"profile", config.ProfileFile,
		"runInterval", config.RunInterval,
		"runOnce", config.RunOnce,
		"strict", config.Strict)

	reg := config.Registry
	if reg == nil {
		var err error
		reg, err = registry.NewRegistry(registry.Config{
			Log:         config.Log,
			ProfileFile: config.ProfileFile,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create registry: %w", err)
		}
	}

	// CLI filter wins over the profile's.
	filter := config.Filter
	strict := config.Strict
	if profile := reg.Profile(); profile != nil {
		if filter == "" {
			filter = profile.Filter
		}
		if profile.Strict != nil {
			strict = *profile.Strict
		}
	}

	executor, err := runner.NewExecutor(runner.ExecutorConfig{
		Registry:    reg,
		Log:         config.Log,
		Strict:      strict,
		StepTimeout: config.StepTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create executor: %w", err)
	}
	config.Log.Info("cuke.New: created registry and executor", "filter", filter)

	return &cuke{
		ctx:              ctx,
		config:           config,
		version:          version,
		registry:         reg,
		executor:         executor,
		source:           discovery.NewSource(config.Log),
		selector:         tagexpr.NewSelector(filter),
		done:             make(chan struct{}),
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start runs the suite, either once or periodically at the configured
// interval.
func (c *cuke) Start(ctx context.Context) error {
	// Set up panic recovery to ensure we exit with code 2 for runtime errors
	defer func() {
		if r := recover(); r != nil {
			c.config.Log.Error("Runtime error occurred", "error", r)
			os.Exit(exitcodes.RuntimeErr)
		}
	}()

	c.ctx = ctx
	c.done = make(chan struct{})
	c.running.Store(true)

	if c.config.RunOnce {
		c.config.Log.Info("Starting cuke-runner in run-once mode")
	} else {
		c.config.Log.Info("Starting cuke-runner in continuous mode", "interval", c.config.RunInterval)
	}

	// Run the suite immediately on startup
	err := c.runSuite(ctx)
	if err != nil {
		c.config.Log.Error("Runtime error running suite", "error", err)
		return cli.Exit(err.Error(), exitcodes.RuntimeErr)
	}

	// If in run-once mode, trigger shutdown and return
	if c.config.RunOnce {
		c.config.Log.Info("Suite completed, exiting (run-once mode)")

		if c.result != nil && c.result.Status == types.StatusFail {
			c.config.Log.Warn("Run-once suite completed with failures, returning exit code 1")
			return NewSuiteFailureError(c.result.String())
		}

		// Only need to call this when we're in run-once mode and the suite passed
		go func() {
			c.shutdownCallback(nil)
		}()
		return nil // Success (exit code 0)
	}

	// Start a goroutine for periodic suite execution
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.config.Log.Debug("Starting periodic suite runner goroutine", "interval", c.config.RunInterval)

		for {
			select {
			case <-time.After(c.config.RunInterval):
				if !c.running.Load() {
					c.config.Log.Debug("Service stopped, exiting periodic suite runner")
					return
				}

				c.config.Log.Info("Running periodic suite")
				if err := c.runSuite(ctx); err != nil {
					c.config.Log.Error("Error running periodic suite", "error", err)
				}

			case <-c.done:
				c.config.Log.Debug("Done signal received, stopping periodic suite runner")
				return

			case <-ctx.Done():
				c.config.Log.Debug("Context canceled, stopping periodic suite runner")
				c.running.Store(false)
				return
			}
		}
	}()
	c.config.Log.Debug("cuke-runner started successfully")
	return nil
}

// runSuite discovers, filters and runs every feature file, then
// reports the accumulated result. Discovery and read failures are
// returned as runtime errors; parse and scenario failures end up in
// the suite result.
func (c *cuke) runSuite(ctx context.Context) error {
	paths, err := c.source.Discover(c.config.FeatureDir, ".feature")
	if err != nil {
		return NewRuntimeError(err)
	}
	c.config.Log.Info("Running suite", "features", len(paths))

	orch, err := runner.NewOrchestrator(runner.Config{
		Selector: c.selector,
		Executor: c.executor,
		Log:      c.config.Log,
	})
	if err != nil {
		return NewRuntimeError(err)
	}

	for _, path := range paths {
		data, err := c.source.ReadFile(path)
		if err != nil {
			// Hard error: results folded so far stay on the
			// orchestrator, but the run cannot proceed.
			return NewRuntimeError(err)
		}

		feature, perr := gherkin.ParseFeature(path, data)
		if perr != nil {
			orch.ProcessParseFailure(path, perr)
			continue
		}

		if err := orch.ProcessFeature(ctx, feature); err != nil {
			return NewRuntimeError(err)
		}
	}

	c.result = orch.Finish()

	c.printResultsTable(c.result)
	fmt.Println(c.result.String())
	c.config.Log.Info("Suite run completed", "run_id", c.result.RunID, "status", c.result.Status)

	metrics.RecordSuite(c.result.RunID, c.result.Status,
		c.result.Stats.Total, c.result.Stats.Passed, c.result.Stats.Failed,
		len(c.result.ParseFailures), c.result.Duration)
	return nil
}

// Stop stops the cuke-runner service.
func (c *cuke) Stop(ctx context.Context) error {
	c.config.Log.Info("Stopping cuke-runner")

	if !c.running.Load() {
		c.config.Log.Debug("Service already stopped, nothing to do")
		return nil
	}

	// Update running state first to prevent new suite runs
	c.running.Store(false)

	c.config.Log.Debug("Sending done signal to goroutines")
	close(c.done)

	c.config.Log.Info("cuke-runner stopped successfully")
	return nil
}

// Stopped returns true if the cuke-runner service is stopped.
func (c *cuke) Stopped() bool {
	return !c.running.Load()
}

// Result returns the suite result of the most recent run, or nil if
// no run has completed.
func (c *cuke) Result() *runner.SuiteResult {
	return c.result
}

// Registry returns the step registry so host code can register step
// definitions before Start.
func (c *cuke) Registry() *registry.Registry {
	return c.registry
}

// WaitForShutdown blocks until all goroutines have terminated.
// This is useful in tests to ensure complete cleanup before moving to the next test.
func (c *cuke) WaitForShutdown(ctx context.Context) error {
	c.config.Log.Debug("Waiting for all goroutines to terminate")

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.config.Log.Debug("All goroutines terminated successfully")
		return nil
	case <-ctx.Done():
		c.config.Log.Warn("Timed out waiting for goroutines to terminate", "error", ctx.Err())
		return ctx.Err()
	}
}
