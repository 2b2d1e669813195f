package tagexpr

import "strings"

const notPrefix = "not "

// ParseFilter converts a filter string into an expression. See the
// package documentation for the grammar. ParseFilter cannot fail:
// unrecognized text degrades to a disjunction of verbatim literals.
func ParseFilter(filter string) Expr {
	if strings.TrimSpace(filter) == "" {
		return MatchAll{}
	}
	if rest, ok := strings.CutPrefix(filter, notPrefix); ok {
		// "not not @x" double-negates.
		return Not{Inner: ParseFilter(rest)}
	}
	tokens := strings.Split(filter, ",")
	options := make([]Expr, len(tokens))
	for i, tok := range tokens {
		// Token text is used verbatim; surrounding whitespace is
		// significant.
		options[i] = Literal{Value: tok}
	}
	return Any{Options: options}
}
