// Package source provides the input buffer and position tracking for the
// Kasumi front end. The buffer guarantees a trailing NUL sentinel so the
// lexer can detect end-of-input without a bounds check on every byte.
package source

import "fmt"

// PaddedString owns a copy of the input bytes plus a trailing NUL sentinel.
// The sentinel is not part of the logical content; Len and Bytes exclude it.
type PaddedString struct {
	data []byte // content plus one NUL byte
}

// NewPaddedString copies input into a fresh buffer with a NUL sentinel.
func NewPaddedString(input []byte) *PaddedString {
	data := make([]byte, len(input)+1)
	copy(data, input)
	data[len(input)] = 0
	return &PaddedString{data: data}
}

// NewPaddedStringFromString is a convenience wrapper for test inputs.
func NewPaddedStringFromString(input string) *PaddedString {
	return NewPaddedString([]byte(input))
}

// Len returns the length of the content, excluding the sentinel.
func (ps *PaddedString) Len() int {
	return len(ps.data) - 1
}

// Bytes returns the content without the sentinel.
func (ps *PaddedString) Bytes() []byte {
	return ps.data[:len(ps.data)-1]
}

// WithSentinel returns the content including the trailing NUL byte.
func (ps *PaddedString) WithSentinel() []byte {
	return ps.data
}

// At returns the byte at offset. Reading at Len() yields the sentinel.
func (ps *PaddedString) At(offset int) byte {
	return ps.data[offset]
}

// SpanText returns the content covered by span.
func (ps *PaddedString) SpanText(s Span) string {
	return string(ps.data[s.Begin:s.End])
}

func (ps *PaddedString) String() string {
	return string(ps.Bytes())
}

// Span is a half-open byte range [Begin, End) within one buffer.
type Span struct {
	Begin int
	End   int
}

// NewSpan constructs a span from byte offsets.
func NewSpan(begin, end int) Span {
	return Span{Begin: begin, End: end}
}

// EmptySpanAt is a zero-width span, used for insertion-point diagnostics.
func EmptySpanAt(offset int) Span {
	return Span{Begin: offset, End: offset}
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Begin
}

// Contains reports whether offset lies within the span.
func (s Span) Contains(offset int) bool {
	return s.Begin <= offset && offset < s.End
}

// Before reports whether this span starts before other.
func (s Span) Before(other Span) bool {
	return s.Begin < other.Begin
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Begin, s.End)
}

// Position is a human-readable location. Line and Column are 1-based; the
// column unit depends on which Locator method produced it.
type Position struct {
	Line   int
	Column int
	Offset int // 0-based byte offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
