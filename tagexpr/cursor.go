package tagexpr

import "unicode/utf8"

// Cursor is an immutable position within filter source text.
// Advancing a cursor produces a new cursor; the original is never
// modified. The position is a byte offset; a position equal to
// len(source) denotes end of input.
type Cursor struct {
	src string
	pos int
}

// NewCursor returns a cursor at the start of src.
func NewCursor(src string) Cursor {
	return Cursor{src: src}
}

// EOF reports whether the cursor is past the last rune of the source.
func (c Cursor) EOF() bool {
	return c.pos >= len(c.src)
}

// Rune returns the rune at the cursor. It must not be called at EOF.
func (c Cursor) Rune() rune {
	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])
	return r
}

// Next returns a cursor advanced past the current rune. At EOF it
// returns the cursor unchanged.
func (c Cursor) Next() Cursor {
	if c.EOF() {
		return c
	}
	_, size := utf8.DecodeRuneInString(c.src[c.pos:])
	return Cursor{src: c.src, pos: c.pos + size}
}

// Pos returns the byte offset of the cursor within the source.
func (c Cursor) Pos() int {
	return c.pos
}

// Result is the outcome of applying a parser at a cursor: either a
// value plus the cursor after it, or a failure carrying the cursor at
// which matching stopped. There is no partial-success state.
type Result[T any] struct {
	ok    bool
	value T
	at    Cursor
}

// Success builds a successful result with the cursor positioned after
// the consumed input.
func Success[T any](value T, next Cursor) Result[T] {
	return Result[T]{ok: true, value: value, at: next}
}

// Failure builds a failed result carrying the cursor at which the
// parser could not match.
func Failure[T any](at Cursor) Result[T] {
	return Result[T]{at: at}
}

// OK reports whether the parse succeeded.
func (r Result[T]) OK() bool { return r.ok }

// Value returns the parsed value. Meaningful only when OK.
func (r Result[T]) Value() T { return r.value }

// At returns the cursor after the consumed input on success, or the
// cursor at which matching failed.
func (r Result[T]) At() Cursor { return r.at }
