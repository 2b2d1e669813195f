package tagexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcludeChars(t *testing.T) {
	p := ExcludeChars('(', ')', ' ')

	t.Run("consumes an allowed rune", func(t *testing.T) {
		r := p(NewCursor("@x"))
		require.True(t, r.OK())
		assert.Equal(t, '@', r.Value())
		assert.Equal(t, 1, r.At().Pos())
	})

	t.Run("fails on forbidden rune without advancing", func(t *testing.T) {
		c := NewCursor("(x")
		r := p(c)
		require.False(t, r.OK())
		assert.Equal(t, c.Pos(), r.At().Pos())
	})

	t.Run("fails at end of input", func(t *testing.T) {
		r := p(NewCursor(""))
		require.False(t, r.OK())
		assert.Equal(t, 0, r.At().Pos())
	})
}

func TestRepeat(t *testing.T) {
	p := Repeat(ExcludeChars(' '))

	t.Run("collects until failure", func(t *testing.T) {
		r := p(NewCursor("abc def"))
		require.True(t, r.OK())
		assert.Equal(t, []rune("abc"), r.Value())
		assert.Equal(t, 3, r.At().Pos())
	})

	t.Run("zero repetitions still succeeds", func(t *testing.T) {
		r := p(NewCursor(" leading"))
		require.True(t, r.OK())
		assert.Empty(t, r.Value())
		assert.Equal(t, 0, r.At().Pos())
	})

	t.Run("consumes to end of input", func(t *testing.T) {
		r := p(NewCursor("abc"))
		require.True(t, r.OK())
		assert.Equal(t, 3, r.At().Pos())
		assert.True(t, r.At().EOF())
	})
}

func TestMap(t *testing.T) {
	count := Map(Repeat(ExcludeChars(' ')), func(rs []rune) int { return len(rs) })

	t.Run("transforms the value, preserves the cursor", func(t *testing.T) {
		r := count(NewCursor("abcd rest"))
		require.True(t, r.OK())
		assert.Equal(t, 4, r.Value())
		assert.Equal(t, 4, r.At().Pos())
	})

	t.Run("propagates failure with the failure's cursor", func(t *testing.T) {
		one := Map(ExcludeChars('x'), func(r rune) string { return string(r) })
		c := NewCursor("x")
		r := one(c)
		require.False(t, r.OK())
		assert.Equal(t, c.Pos(), r.At().Pos())
	})
}

func TestTagToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		pos   int
	}{
		{name: "whole input", input: "@smoke", want: "@smoke", pos: 6},
		{name: "stops at space", input: "@smoke @slow", want: "@smoke", pos: 6},
		{name: "stops at open paren", input: "@a(b", want: "@a", pos: 2},
		{name: "stops at close paren", input: "@a)b", want: "@a", pos: 2},
		{name: "empty input yields empty token", input: "", want: "", pos: 0},
	}

	p := TagToken()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := p(NewCursor(tt.input))
			require.True(t, r.OK())
			assert.Equal(t, tt.want, r.Value())
			assert.Equal(t, tt.pos, r.At().Pos())
		})
	}
}

func TestCursorImmutability(t *testing.T) {
	c := NewCursor("ab")
	next := c.Next()

	assert.Equal(t, 0, c.Pos(), "advancing must not mutate the original")
	assert.Equal(t, 1, next.Pos())
	assert.Equal(t, 'a', c.Rune())
	assert.Equal(t, 'b', next.Rune())

	end := next.Next()
	assert.True(t, end.EOF())
	assert.Equal(t, end.Pos(), end.Next().Pos(), "advancing past EOF is a no-op")
}
