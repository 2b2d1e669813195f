// Package gherkin parses a subset of the Gherkin feature-file
// language: tag lines, a Feature header, and Scenario blocks whose
// steps start with Given/When/Then/And/But. Comments (#) and blank
// lines are ignored. Backgrounds, outlines, doc strings and data
// tables are not supported; files using them produce a ParseError.
package gherkin

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/cuketest/cuke-runner/types"
)

// ParseError reports a feature file that could not be parsed. It is
// recorded against the originating file by the orchestrator; it is
// never a hard error.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type featureFile struct {
	Tags      []string        `parser:"EOL* (@Tag+ EOL+)*"`
	Name      string          `parser:"FeatureKw @Text? EOL*"`
	Scenarios []*scenarioNode `parser:"@@*"`
}

type scenarioNode struct {
	Tags  []string    `parser:"(@Tag+ EOL+)*"`
	Name  string      `parser:"ScenarioKw @Text? EOL*"`
	Steps []*stepNode `parser:"@@*"`
}

type stepNode struct {
	Keyword string `parser:"@StepKw"`
	Text    string `parser:"@Text? EOL*"`
}

// The lexer is stateful: once a Feature/Scenario/step keyword is seen
// the rest of the line is a single Text token, so a name like
// "Scenario: Given up" keeps its text instead of lexing "Given" as a
// step keyword.
var featureLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `#[^\r\n]*`},
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "EOL", Pattern: `\r?\n`},
		{Name: "FeatureKw", Pattern: `Feature:`, Action: lexer.Push("Line")},
		{Name: "ScenarioKw", Pattern: `Scenario:`, Action: lexer.Push("Line")},
		{Name: "StepKw", Pattern: `(?:Given|When|Then|And|But)\b`, Action: lexer.Push("Line")},
		{Name: "Tag", Pattern: `@[^\s]+`},
	},
	"Line": {
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "EOL", Pattern: `\r?\n`, Action: lexer.Pop()},
		{Name: "Text", Pattern: `[^\r\n]+`},
	},
})

var featureParser = participle.MustBuild[featureFile](
	participle.Lexer(featureLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// ParseFeature parses the contents of a single feature file. On
// syntax errors it returns a *ParseError carrying the file path.
func ParseFeature(path string, src []byte) (*types.Feature, error) {
	file, err := featureParser.ParseString(path, string(src))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	feature := &types.Feature{
		Name: strings.TrimSpace(file.Name),
		Path: path,
		Tags: file.Tags,
	}
	for _, sc := range file.Scenarios {
		scenario := types.Scenario{
			Name: strings.TrimSpace(sc.Name),
			Tags: sc.Tags,
		}
		for _, st := range sc.Steps {
			scenario.Steps = append(scenario.Steps, types.Step{
				Keyword: st.Keyword,
				Text:    strings.TrimSpace(st.Text),
			})
		}
		feature.Scenarios = append(feature.Scenarios, scenario)
	}
	return feature, nil
}
