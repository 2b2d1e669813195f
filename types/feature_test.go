package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagSet(t *testing.T) {
	s := NewTagSet("@a", "@b", "@a") // duplicates are immaterial

	assert.True(t, s.Has("@a"))
	assert.True(t, s.Has("@b"))
	assert.False(t, s.Has("@c"))
	assert.Len(t, s, 2)
}

func TestTagSetUnion(t *testing.T) {
	a := NewTagSet("@x", "@y")
	b := NewTagSet("@y", "@z")

	u := a.Union(b)
	assert.Len(t, u, 3)
	assert.True(t, u.Has("@x"))
	assert.True(t, u.Has("@y"))
	assert.True(t, u.Has("@z"))

	// Inputs are untouched.
	assert.Len(t, a, 2)
	assert.Len(t, b, 2)
}

func TestEffectiveTags(t *testing.T) {
	f := &Feature{
		Tags: []Tag{"@feature"},
		Scenarios: []Scenario{
			{Name: "s", Tags: []Tag{"@scenario"}},
		},
	}

	tags := f.EffectiveTags(&f.Scenarios[0])
	assert.True(t, tags.Has("@feature"))
	assert.True(t, tags.Has("@scenario"))
	assert.Len(t, tags, 2)
}

func TestWithScenarios(t *testing.T) {
	f := &Feature{
		Name: "orig",
		Scenarios: []Scenario{
			{Name: "a"}, {Name: "b"},
		},
	}

	sub := f.WithScenarios(f.Scenarios[:1])
	require.Len(t, sub.Scenarios, 1)
	assert.Equal(t, "a", sub.Scenarios[0].Name)
	assert.Equal(t, "orig", sub.Name)
	assert.Len(t, f.Scenarios, 2)
}
