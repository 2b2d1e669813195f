package tagexpr

import "github.com/cuketest/cuke-runner/types"

// Selector wraps a root expression and applies it to features and
// scenarios. Selectors are immutable after construction; the zero
// value selects everything.
type Selector struct {
	root Expr
}

func (s Selector) expr() Expr {
	if s.root == nil {
		return MatchAll{}
	}
	return s.root
}

// SelectAll selects every scenario.
var SelectAll = Selector{root: MatchAll{}}

// NewSelector builds a selector from filter text. It is a pure
// function of the text.
func NewSelector(filter string) Selector {
	return Selector{root: ParseFilter(filter)}
}

// Match evaluates the selector against the scenario's effective tag
// set, i.e. the union of the feature's and the scenario's tags.
func (s Selector) Match(f *types.Feature, sc *types.Scenario) bool {
	return s.expr().Eval(f.EffectiveTags(sc))
}

// FilterFeature returns a new feature containing, in original order,
// exactly the scenarios the selector matches. A feature with zero
// matching scenarios is a legal result; callers decide what to do
// with it. The input feature is never mutated.
func (s Selector) FilterFeature(f *types.Feature) *types.Feature {
	var kept []types.Scenario
	for i := range f.Scenarios {
		if s.Match(f, &f.Scenarios[i]) {
			kept = append(kept, f.Scenarios[i])
		}
	}
	return f.WithScenarios(kept)
}
