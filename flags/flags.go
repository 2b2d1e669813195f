package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "CUKE_RUNNER"

// prefixEnvVars derives the environment variable names for a flag.
func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	FeatureDir = &cli.StringFlag{
		Name:    "features",
		Value:   "",
		EnvVars: prefixEnvVars("FEATURES"),
		Usage:   "Path to the directory from which to discover feature files",
	}
	Filter = &cli.StringFlag{
		Name:    "filter",
		Value:   "",
		EnvVars: prefixEnvVars("FILTER"),
		Usage:   "Tag filter expression (eg. '@smoke', 'not @wip', '@a,@b'). Empty selects everything.",
	}
	Profile = &cli.StringFlag{
		Name:    "profile",
		Value:   "",
		EnvVars: prefixEnvVars("PROFILE"),
		Usage:   "Path to a YAML run profile (eg. 'cuke.yaml')",
	}
	Strict = &cli.BoolFlag{
		Name:    "strict",
		Value:   false,
		EnvVars: prefixEnvVars("STRICT"),
		Usage:   "Fail scenarios with undefined steps instead of skipping them",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: prefixEnvVars("RUN_INTERVAL"),
		Usage:   "Interval between suite runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
	StepTimeout = &cli.DurationFlag{
		Name:    "step-timeout",
		Value:   0,
		EnvVars: prefixEnvVars("STEP_TIMEOUT"),
		Usage:   "Per-step timeout. Set to 0 or omit for no timeout.",
	}
	HealthzPort = &cli.StringFlag{
		Name:    "healthz-port",
		Value:   "8080",
		EnvVars: prefixEnvVars("HEALTHZ_PORT"),
		Usage:   "Port for the healthz server (continuous mode only)",
	}
	MetricsPort = &cli.StringFlag{
		Name:    "metrics-port",
		Value:   "7300",
		EnvVars: prefixEnvVars("METRICS_PORT"),
		Usage:   "Port for the prometheus metrics server (continuous mode only)",
	}
)

var requiredFlags = []cli.Flag{
	FeatureDir,
}

var optionalFlags = []cli.Flag{
	Filter,
	Profile,
	Strict,
	RunInterval,
	StepTimeout,
	HealthzPort,
	MetricsPort,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
