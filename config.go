package cuke

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/cuketest/cuke-runner/flags"
	"github.com/cuketest/cuke-runner/registry"
)

// Config holds the application configuration
type Config struct {
	FeatureDir  string
	Filter      string // tag filter expression; empty selects everything
	ProfileFile string
	Strict      bool          // undefined steps fail instead of skipping
	RunInterval time.Duration // Interval between suite runs
	RunOnce     bool          // Indicates if the service should exit after one run
	StepTimeout time.Duration // Per-step timeout, 0 means none
	HealthzPort string        // Healthz server port (continuous mode)
	MetricsPort string        // Metrics server port (continuous mode)
	Registry    *registry.Registry
	Log         log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger, featureDir string) (*Config, error) {
	// Parse flags
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}
	if featureDir == "" {
		return nil, errors.New("feature directory is required")
	}

	absFeatureDir, err := filepath.Abs(featureDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for feature directory '%s': %w", featureDir, err)
	}

	profileFile := ctx.String(flags.Profile.Name)
	if profileFile != "" {
		profileFile, err = filepath.Abs(profileFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for profile '%s': %w", profileFile, err)
		}
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)
	runOnce := runInterval == 0

	return &Config{
		FeatureDir:  absFeatureDir,
		Filter:      ctx.String(flags.Filter.Name),
		ProfileFile: profileFile,
		Strict:      ctx.Bool(flags.Strict.Name),
		RunInterval: runInterval,
		RunOnce:     runOnce,
		StepTimeout: ctx.Duration(flags.StepTimeout.Name),
		HealthzPort: ctx.String(flags.HealthzPort.Name),
		MetricsPort: ctx.String(flags.MetricsPort.Name),
		Log:         log,
	}, nil
}
