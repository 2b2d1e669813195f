package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	cuke "github.com/cuketest/cuke-runner"
	"github.com/cuketest/cuke-runner/exitcodes"
	"github.com/cuketest/cuke-runner/flags"
	"github.com/cuketest/cuke-runner/service"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "cuke-runner"
	app.Usage = "Behavior Suite Runner Service"
	app.Description = "cuke-runner selects scenarios by tag and runs them across a suite of feature files"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			// Use the exit code from the ExitCoder
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			// Check for typed runtime errors
			if cuke.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else if cuke.IsSuiteFailureError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.SuiteFailure))
			} else {
				// For other unspecified errors, default to exit code 1
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.SuiteFailure))
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func run(cliCtx *cli.Context) error {
	logger := log.New()

	cfg, err := cuke.NewConfig(cliCtx, logger, cliCtx.String(flags.FeatureDir.Name))
	if err != nil {
		// Wrap in RuntimeError to signal this should exit with code 2
		return cuke.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	appCtx, cancel := context.WithCancelCause(cliCtx.Context)
	defer cancel(nil)

	svc, err := cuke.New(appCtx, cfg, Version, cancel)
	if err != nil {
		return cuke.NewRuntimeError(fmt.Errorf("failed to create runner: %w", err))
	}

	if err := svc.Start(appCtx); err != nil {
		return err
	}
	if cfg.RunOnce {
		return nil
	}

	// Continuous mode: expose healthz and metrics while re-running
	// the suite at the configured interval.
	srv := service.New(service.Config{
		Log:         logger,
		HealthzPort: cfg.HealthzPort,
		MetricsPort: cfg.MetricsPort,
		Version:     Version,
		Result:      svc.Result,
	})
	srv.Start(appCtx)
	defer srv.Shutdown()

	<-appCtx.Done()
	return svc.Stop(context.Background())
}
