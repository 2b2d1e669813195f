package gherkin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuketest/cuke-runner/types"
)

const sampleFeature = `# checkout flows
@checkout @web
Feature: Checkout

  @smoke
  Scenario: Pay with card
    Given a cart with 2 items
    When the customer pays by card
    Then the order is confirmed

  Scenario: Empty cart
    Given an empty cart
    Then checkout is disabled
`

func TestParseFeature(t *testing.T) {
	feature, err := ParseFeature("checkout.feature", []byte(sampleFeature))
	require.NoError(t, err)

	assert.Equal(t, "Checkout", feature.Name)
	assert.Equal(t, "checkout.feature", feature.Path)
	assert.Equal(t, []types.Tag{"@checkout", "@web"}, feature.Tags)
	require.Len(t, feature.Scenarios, 2)

	first := feature.Scenarios[0]
	assert.Equal(t, "Pay with card", first.Name)
	assert.Equal(t, []types.Tag{"@smoke"}, first.Tags)
	require.Len(t, first.Steps, 3)
	assert.Equal(t, types.Step{Keyword: "Given", Text: "a cart with 2 items"}, first.Steps[0])
	assert.Equal(t, types.Step{Keyword: "When", Text: "the customer pays by card"}, first.Steps[1])
	assert.Equal(t, types.Step{Keyword: "Then", Text: "the order is confirmed"}, first.Steps[2])

	second := feature.Scenarios[1]
	assert.Equal(t, "Empty cart", second.Name)
	assert.Empty(t, second.Tags)
	assert.Len(t, second.Steps, 2)
}

func TestParseFeatureMinimal(t *testing.T) {
	feature, err := ParseFeature("min.feature", []byte("Feature: Minimal\n"))
	require.NoError(t, err)

	assert.Equal(t, "Minimal", feature.Name)
	assert.Empty(t, feature.Tags)
	assert.Empty(t, feature.Scenarios)
}

func TestParseFeatureAndButSteps(t *testing.T) {
	src := `Feature: Conjunctions
  Scenario: All keywords
    Given a precondition
    And another precondition
    When something happens
    But nothing breaks
`
	feature, err := ParseFeature("conj.feature", []byte(src))
	require.NoError(t, err)
	require.Len(t, feature.Scenarios, 1)

	steps := feature.Scenarios[0].Steps
	require.Len(t, steps, 4)
	assert.Equal(t, "And", steps[1].Keyword)
	assert.Equal(t, "But", steps[3].Keyword)
}

func TestParseFeatureNamesStartingWithStepKeyword(t *testing.T) {
	src := `Feature: When in Rome
  Scenario: Given up
    Given a towel
`
	feature, err := ParseFeature("names.feature", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "When in Rome", feature.Name)
	require.Len(t, feature.Scenarios, 1)
	assert.Equal(t, "Given up", feature.Scenarios[0].Name)
	require.Len(t, feature.Scenarios[0].Steps, 1)
	assert.Equal(t, types.Step{Keyword: "Given", Text: "a towel"}, feature.Scenarios[0].Steps[0])
}

func TestParseFeatureSyntaxError(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "no feature header", src: "Scenario: orphan\n  Given a step\n"},
		{name: "free text", src: "this is not a feature file\n"},
		{name: "unsupported background", src: "Feature: F\n  Background:\n    Given setup\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFeature("bad.feature", []byte(tt.src))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "bad.feature", perr.Path)
		})
	}
}

func TestParseFeatureCommentsAndBlankLinesIgnored(t *testing.T) {
	src := "# leading comment\n\n\nFeature: Sparse\n\n  # inner comment\n  Scenario: s\n\n    Given a step\n"
	feature, err := ParseFeature("sparse.feature", []byte(src))
	require.NoError(t, err)

	require.Len(t, feature.Scenarios, 1)
	require.Len(t, feature.Scenarios[0].Steps, 1)
}
