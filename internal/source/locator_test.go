package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocatorFirstLine(t *testing.T) {
	loc := NewLocator(NewPaddedStringFromString("hello"))
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, loc.Position(0, ColumnUTF8))
	assert.Equal(t, Position{Line: 1, Column: 5, Offset: 4}, loc.Position(4, ColumnUTF8))
}

func TestLocatorMultipleLines(t *testing.T) {
	//                                      0123 456 789
	loc := NewLocator(NewPaddedStringFromString("ab\ncd\nef"))
	assert.Equal(t, 1, loc.Position(2, ColumnUTF8).Line)
	assert.Equal(t, 2, loc.Position(3, ColumnUTF8).Line)
	assert.Equal(t, 1, loc.Position(3, ColumnUTF8).Column)
	assert.Equal(t, 2, loc.Position(4, ColumnUTF8).Column)
	assert.Equal(t, 3, loc.Position(6, ColumnUTF8).Line)
}

func TestLocatorCRLF(t *testing.T) {
	loc := NewLocator(NewPaddedStringFromString("a\r\nb\rc"))
	assert.Equal(t, 2, loc.Position(3, ColumnUTF8).Line)
	assert.Equal(t, 3, loc.Position(5, ColumnUTF8).Line)
}

func TestLocatorUnicodeLineSeparators(t *testing.T) {
	// U+2028 is a line terminator in ECMAScript.
	input := "a\u2028b"
	loc := NewLocator(NewPaddedStringFromString(input))
	assert.Equal(t, 2, loc.Position(len(input)-1, ColumnUTF8).Line)
	assert.Equal(t, 1, loc.Position(len(input)-1, ColumnUTF8).Column)
}

func TestLocatorUTF16Columns(t *testing.T) {
	// "é" is two UTF-8 bytes but one UTF-16 code unit; "😀" is four UTF-8
	// bytes and two UTF-16 code units.
	input := "é😀x"
	loc := NewLocator(NewPaddedStringFromString(input))
	offsetOfX := len("é😀")
	assert.Equal(t, offsetOfX+1, loc.Position(offsetOfX, ColumnUTF8).Column)
	assert.Equal(t, 4, loc.Position(offsetOfX, ColumnUTF16).Column, "1 (é) + 2 (😀) + 1")
}

func TestLocatorClampsOutOfRangeOffsets(t *testing.T) {
	loc := NewLocator(NewPaddedStringFromString("ab"))
	assert.Equal(t, 3, loc.Position(99, ColumnUTF8).Column)
	assert.Equal(t, 1, loc.Position(-1, ColumnUTF8).Column)
}

func TestLocatorReset(t *testing.T) {
	loc := NewLocator(NewPaddedStringFromString("a\nb"))
	assert.Equal(t, 2, loc.Position(2, ColumnUTF8).Line)
	loc.Reset(NewPaddedStringFromString("abc"))
	assert.Equal(t, 1, loc.Position(2, ColumnUTF8).Line)
}
