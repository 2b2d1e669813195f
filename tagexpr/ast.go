// Package tagexpr implements the tag filter expression language used
// to select which scenarios of a feature run.
//
// The canonical grammar is a single top-level dispatch over the whole
// filter string:
//
//	""            -> match everything (including untagged scenarios)
//	"not <rest>"  -> negation of the remainder, applied recursively
//	"a,b,c"       -> disjunction of literal tags (comma means OR)
//
// Anything that is not an empty string or a "not " prefix is treated
// as a best-effort disjunction of literals; filter parsing therefore
// never fails. Tokens are used verbatim, without trimming. Grouping
// and nesting "not" inside a disjunction term are not expressible; the
// combinator layer in this package is the substrate a richer grammar
// would be built on.
package tagexpr

import "github.com/cuketest/cuke-runner/types"

// Expr is a boolean predicate over a tag set. The set of
// implementations is closed; evaluation is pure and never fails for
// any tag set, including the empty one.
type Expr interface {
	// Eval reports whether the expression matches the given tag set.
	Eval(tags types.TagSet) bool

	exprNode()
}

// MatchAll matches any tag set, including the empty set.
type MatchAll struct{}

func (MatchAll) Eval(types.TagSet) bool { return true }
func (MatchAll) exprNode()              {}

// Literal matches iff its value is a member of the tag set.
type Literal struct {
	Value string
}

func (l Literal) Eval(tags types.TagSet) bool { return tags.Has(l.Value) }
func (Literal) exprNode()                     {}

// Not matches iff its inner expression does not.
type Not struct {
	Inner Expr
}

func (n Not) Eval(tags types.TagSet) bool { return !n.Inner.Eval(tags) }
func (Not) exprNode()                     {}

// Any matches iff at least one of its options matches. An Any with no
// options never matches.
type Any struct {
	Options []Expr
}

func (a Any) Eval(tags types.TagSet) bool {
	for _, opt := range a.Options {
		if opt.Eval(tags) {
			return true
		}
	}
	return false
}

func (Any) exprNode() {}
