package source

import (
	"sort"
	"unicode/utf8"
)

// ColumnUnit selects how a Locator counts columns within a line.
type ColumnUnit int

const (
	// ColumnUTF8 counts bytes. Used by the CLI and web-demo adapters.
	ColumnUTF8 ColumnUnit = iota
	// ColumnUTF16 counts UTF-16 code units. Used by the LSP adapter.
	ColumnUTF16
)

// Locator translates byte offsets into 1-based line/column positions.
// The line-start table is computed lazily on the first query and reused for
// subsequent queries against the same buffer.
type Locator struct {
	src        *PaddedString
	lineStarts []int // offset of the first byte of each line; lineStarts[0] == 0
}

// NewLocator creates a locator over src.
func NewLocator(src *PaddedString) *Locator {
	return &Locator{src: src}
}

// Reset points the locator at a new buffer and drops the cached line table.
func (l *Locator) Reset(src *PaddedString) {
	l.src = src
	l.lineStarts = nil
}

// Position translates a byte offset into a line/column pair, counting
// columns in the given unit. Offsets past the end of the buffer are clamped.
func (l *Locator) Position(offset int, unit ColumnUnit) Position {
	if offset < 0 {
		offset = 0
	}
	if max := l.src.Len(); offset > max {
		offset = max
	}
	l.ensureLineStarts()

	line := sort.Search(len(l.lineStarts), func(i int) bool {
		return l.lineStarts[i] > offset
	})
	lineStart := l.lineStarts[line-1]

	return Position{
		Line:   line,
		Column: l.column(lineStart, offset, unit),
		Offset: offset,
	}
}

// SpanBegin is shorthand for locating the start of a span.
func (l *Locator) SpanBegin(s Span, unit ColumnUnit) Position {
	return l.Position(s.Begin, unit)
}

// SpanEnd is shorthand for locating the end of a span.
func (l *Locator) SpanEnd(s Span, unit ColumnUnit) Position {
	return l.Position(s.End, unit)
}

func (l *Locator) column(lineStart, offset int, unit ColumnUnit) int {
	switch unit {
	case ColumnUTF16:
		units := 0
		bytes := l.src.Bytes()[lineStart:offset]
		for len(bytes) > 0 {
			r, size := utf8.DecodeRune(bytes)
			if r > 0xFFFF {
				units += 2 // surrogate pair
			} else {
				units++
			}
			bytes = bytes[size:]
		}
		return units + 1
	default:
		return offset - lineStart + 1
	}
}

func (l *Locator) ensureLineStarts() {
	if l.lineStarts != nil {
		return
	}
	bytes := l.src.Bytes()
	starts := []int{0}
	for i := 0; i < len(bytes); i++ {
		switch bytes[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(bytes) && bytes[i+1] == '\n' {
				continue // counted at the '\n'
			}
			starts = append(starts, i+1)
		case 0xe2:
			// U+2028 LINE SEPARATOR and U+2029 PARAGRAPH SEPARATOR
			if i+2 < len(bytes) && bytes[i+1] == 0x80 && (bytes[i+2] == 0xa8 || bytes[i+2] == 0xa9) {
				starts = append(starts, i+3)
			}
		}
	}
	l.lineStarts = starts
}
