package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"
)

// ErrPending marks a step implementation that exists but is not done
// yet. A pending step skips the rest of its scenario instead of
// failing it.
var ErrPending = errors.New("step implementation pending")

// StepFunc is a step implementation. args holds the capture groups of
// the matched pattern, in order.
type StepFunc func(ctx context.Context, args []string) error

// StepDefinition pairs a compiled pattern with its implementation.
type StepDefinition struct {
	Expr *regexp.Regexp
	Fn   StepFunc
}

// StepMatch is the result of resolving a step text against the
// registry.
type StepMatch struct {
	Definition *StepDefinition
	Args       []string // capture groups of the matched pattern
}

// Profile is an optional YAML run profile, the counterpart of a
// cucumber.yml: default feature locations, tag filter and
// strictness.
type Profile struct {
	Features []string `yaml:"features,omitempty"`
	Filter   string   `yaml:"filter,omitempty"`
	Strict   *bool    `yaml:"strict,omitempty"`
}

// Config contains registry configuration.
type Config struct {
	Log         log.Logger
	ProfileFile string // optional path to a YAML run profile
}

// Registry holds step definitions and matches step text against them.
// Definitions are matched in registration order; the first pattern
// that matches wins.
type Registry struct {
	log     log.Logger
	profile *Profile
	steps   []*StepDefinition
	mu      sync.RWMutex
}

// NewRegistry creates a new registry instance, loading the run
// profile if one was configured.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	r := &Registry{log: cfg.Log}

	if cfg.ProfileFile != "" {
		profile, err := loadProfile(cfg.ProfileFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load run profile: %w", err)
		}
		r.profile = profile
		cfg.Log.Debug("Run profile loaded", "path", cfg.ProfileFile,
			"features", profile.Features, "filter", profile.Filter)
	}

	return r, nil
}

// Register compiles pattern and adds a step definition. The pattern
// is anchored to match the whole step text.
func (r *Registry) Register(pattern string, fn StepFunc) error {
	if fn == nil {
		return errors.New("step function is required")
	}
	expr, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return fmt.Errorf("invalid step pattern %q: %w", pattern, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, &StepDefinition{Expr: expr, Fn: fn})
	r.log.Debug("Registered step definition", "pattern", pattern)
	return nil
}

// MustRegister is Register, panicking on error. Intended for suite
// setup code.
func (r *Registry) MustRegister(pattern string, fn StepFunc) {
	if err := r.Register(pattern, fn); err != nil {
		panic(err)
	}
}

// Match resolves a step text to a registered definition. The second
// return value is false when no definition matches.
func (r *Registry) Match(text string) (*StepMatch, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, def := range r.steps {
		m := def.Expr.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return &StepMatch{Definition: def, Args: m[1:]}, true
	}
	return nil, false
}

// Len returns the number of registered step definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.steps)
}

// Profile returns the loaded run profile, or nil when none was
// configured.
func (r *Registry) Profile() *Profile {
	return r.profile
}

// loadProfile loads a run profile from a YAML file.
func loadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile file: %w", err)
	}

	return &p, nil
}
