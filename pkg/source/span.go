// Package source maps byte offsets in Cypher query text to line/column
// positions and carries the Span type used by every AST node.
package source

import "fmt"

// Span is a half-open byte-offset range [Start, End) into the original
// query text. Offsets are always relative to the full text handed to
// Parse, never to a clause body substring.
type Span struct {
	Start int
	End int
}

// Pos is a 1-indexed line/column position.
type Pos struct {
	Line int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Map converts byte offsets into line/column positions for a fixed source
// text. Lines are split on '\n'; column counts bytes, not runes, matching
// the byte-offset contract requires for the AST JSON span
// encoding.
type Map struct {
	text string
	lineOffsets []int // byte offset of the start of each line
}

// NewMap builds a Map over text. Construction is O(n) in len(text).
func NewMap(text string) *Map {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &Map{text: text, lineOffsets: offsets}
}

// Pos returns the line/column for a byte offset. Offsets outside [0,
// len(text)] are clamped.
func (m *Map) Pos(offset int) Pos {
	if offset < 0 {
		offset = 0
	}
	if offset > len(m.text) {
		offset = len(m.text)
	}

	lo, hi := 0, len(m.lineOffsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.lineOffsets[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line := lo
	col := offset - m.lineOffsets[line]
	return Pos{Line: line + 1, Column: col + 1}
}

// Span returns the human-readable start/end positions for a Span.
func (m *Map) Span(s Span) (Pos, Pos) {
	return m.Pos(s.Start), m.Pos(s.End)
}

// Text returns the substring covered by a Span.
func (m *Map) Text(s Span) string {
	if s.Start < 0 {
		s.Start = 0
	}
	if s.End > len(m.text) {
		s.End = len(m.text)
	}
	if s.Start > s.End {
		return ""
	}
	return m.text[s.Start:s.End]
}
