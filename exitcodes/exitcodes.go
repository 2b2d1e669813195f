// Package exitcodes defines the standard exit codes used by
// cuke-runner.
package exitcodes

// Exit code constants used by cuke-runner
// These constants define the exit codes that the application uses to
// indicate various states when it exits:
//
// * Success (0): Used when every selected scenario passes
// * SuiteFailure (1): Used when scenarios fail or feature files fail to parse
// * RuntimeErr (2): Used for runtime errors such as unreadable directories or panics
const (
	Success      = 0 // All scenarios pass
	SuiteFailure = 1 // Scenario failures or parse failures
	RuntimeErr   = 2 // Runtime errors
)
