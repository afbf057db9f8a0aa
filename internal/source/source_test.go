package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaddedStringHasSentinel(t *testing.T) {
	ps := NewPaddedStringFromString("abc")
	assert.Equal(t, 3, ps.Len())
	assert.Equal(t, byte('a'), ps.At(0))
	assert.Equal(t, byte(0), ps.At(3), "sentinel byte is readable at Len()")
	assert.Equal(t, "abc", ps.String())
	require.Len(t, ps.WithSentinel(), 4)
}

func TestPaddedStringCopiesInput(t *testing.T) {
	input := []byte("abc")
	ps := NewPaddedString(input)
	input[0] = 'z'
	assert.Equal(t, "abc", ps.String())
}

func TestSpan(t *testing.T) {
	s := NewSpan(2, 5)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(5), "spans are half-open")
	assert.Equal(t, "[2,5)", s.String())

	empty := EmptySpanAt(7)
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Contains(7))
}

func TestSpanText(t *testing.T) {
	ps := NewPaddedStringFromString("let x = y;")
	assert.Equal(t, "x", ps.SpanText(NewSpan(4, 5)))
	assert.Equal(t, "let", ps.SpanText(NewSpan(0, 3)))
}
