package peg

import (
	"fmt"
	"sort"
)

// LineMap translates code-point offsets of a character input into line and
// column numbers for diagnostics. Lines are 1-indexed. Columns start at
// ColumnStart (1 by default, 0 is permitted) and a tab advances to the next
// tab stop; stops lie every TabWidth columns from ColumnStart.
type LineMap struct {
	// TabWidth is the visual width of a tab stop. Defaults to 4.
	TabWidth int
	// ColumnStart is the column number of the first character on a line.
	// Defaults to 1.
	ColumnStart int

	runes      []rune
	lineStarts []int
}

// NewLineMap indexes src. The zero-valued knobs are filled with defaults;
// override TabWidth or ColumnStart before use if needed.
func NewLineMap(src string) *LineMap {
	m := &LineMap{
		TabWidth:    4,
		ColumnStart: 1,
		runes:       []rune(src),
	}
	m.lineStarts = append(m.lineStarts, 0)
	for i, r := range m.runes {
		if r == '\n' {
			m.lineStarts = append(m.lineStarts, i+1)
		}
	}
	return m
}

// Position maps a code-point offset in [0, len(input)] to (line, column).
// It panics on offsets outside the input.
func (m *LineMap) Position(offset int) (line, column int) {
	if offset < 0 || offset > len(m.runes) {
		panic(fmt.Sprintf("peg: offset %d outside input of length %d", offset, len(m.runes)))
	}
	// Index of the last line starting at or before offset.
	idx := sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	}) - 1

	column = m.ColumnStart
	for i := m.lineStarts[idx]; i < offset; i++ {
		if m.runes[i] == '\t' {
			column += m.TabWidth - (column-m.ColumnStart)%m.TabWidth
		} else {
			column++
		}
	}
	return idx + 1, column
}

// Describe formats an offset as "line L, column C".
func (m *LineMap) Describe(offset int) string {
	line, column := m.Position(offset)
	return fmt.Sprintf("line %d, column %d", line, column)
}
