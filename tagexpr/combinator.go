package tagexpr

// Parser is a composable parsing function: it is applied at a cursor
// and yields a Result. Parsers never panic or return errors; absence
// of a match is a Failure outcome, and the caller decides whether
// that is fatal.
type Parser[T any] func(Cursor) Result[T]

// ExcludeChars returns a parser consuming exactly one rune that is
// not end-of-input and not one of the forbidden runes. It fails
// without advancing otherwise.
func ExcludeChars(forbidden ...rune) Parser[rune] {
	set := make(map[rune]struct{}, len(forbidden))
	for _, r := range forbidden {
		set[r] = struct{}{}
	}
	return func(c Cursor) Result[rune] {
		if c.EOF() {
			return Failure[rune](c)
		}
		r := c.Rune()
		if _, bad := set[r]; bad {
			return Failure[rune](c)
		}
		return Success(r, c.Next())
	}
}

// Repeat applies inner until it fails, collecting the successful
// values in order. It always succeeds; zero repetitions yield an
// empty sequence at the original cursor.
func Repeat[T any](inner Parser[T]) Parser[[]T] {
	return func(c Cursor) Result[[]T] {
		var values []T
		for {
			r := inner(c)
			if !r.OK() {
				return Success(values, c)
			}
			values = append(values, r.Value())
			c = r.At()
		}
	}
}

// Map runs inner and transforms its value on success, preserving the
// cursor. A failure propagates unchanged, keeping the failure's
// cursor.
func Map[T, U any](inner Parser[T], transform func(T) U) Parser[U] {
	return func(c Cursor) Result[U] {
		r := inner(c)
		if !r.OK() {
			return Failure[U](r.At())
		}
		return Success(transform(r.Value()), r.At())
	}
}

// TagToken parses a single tag token: a run of characters terminated
// by a parenthesis, a space, or end of input.
func TagToken() Parser[string] {
	return Map(Repeat(ExcludeChars('(', ')', ' ')), func(runes []rune) string {
		return string(runes)
	})
}
