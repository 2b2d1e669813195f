package types

// Tag is an opaque text label attached to a feature or scenario,
// e.g. "@smoke". Tags are compared as whole strings; there is no
// wildcard or hierarchy semantics.
type Tag = string

// TagSet is an unordered collection of tags. Duplicates are
// immaterial.
type TagSet map[Tag]struct{}

// NewTagSet builds a TagSet from a list of tags.
func NewTagSet(tags ...Tag) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether tag is a member of the set.
func (s TagSet) Has(tag Tag) bool {
	_, ok := s[tag]
	return ok
}

// Union returns a new set containing the members of both sets.
// Neither receiver nor argument is modified.
func (s TagSet) Union(other TagSet) TagSet {
	out := make(TagSet, len(s)+len(other))
	for t := range s {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Step is a single executable line within a scenario.
type Step struct {
	Keyword string // Given, When, Then, And, But
	Text    string
}

// Scenario is a named, tagged, ordered sequence of steps.
type Scenario struct {
	Name  string
	Tags  []Tag
	Steps []Step
}

// Feature is a named, tagged collection of scenarios parsed from a
// single feature file.
type Feature struct {
	Name      string
	Path      string // originating file, used for reporting
	Tags      []Tag
	Scenarios []Scenario
}

// EffectiveTags returns the union of the feature's tags and the
// scenario's own tags. Scenarios inherit feature tags additively.
func (f *Feature) EffectiveTags(s *Scenario) TagSet {
	return NewTagSet(f.Tags...).Union(NewTagSet(s.Tags...))
}

// WithScenarios returns a copy of the feature whose scenario sequence
// is replaced by the given subset. The original feature is untouched.
func (f *Feature) WithScenarios(scenarios []Scenario) *Feature {
	out := *f
	out.Scenarios = scenarios
	return &out
}
