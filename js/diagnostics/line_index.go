package diagnostics

import (
	"sort"
	"unicode/utf8"
)

// Position is a zero-based line and column. Column counts bytes unless it was
// produced by UTF16Position.
type Position struct {
	Line   int
	Column int
}

// LineIndex maps byte offsets to line/column positions.
type LineIndex struct {
	text       string
	lineStarts []int
}

func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case 0xE2:
			// U+2028 and U+2029
			if i+2 < len(text) && text[i+1] == 0x80 && (text[i+2] == 0xA8 || text[i+2] == 0xA9) {
				i += 2
				starts = append(starts, i+1)
			}
		}
	}
	return &LineIndex{text: text, lineStarts: starts}
}

func (idx *LineIndex) LineCount() int {
	return len(idx.lineStarts)
}

// Position returns the byte-based position of offset.
func (idx *LineIndex) Position(offset int) Position {
	offset = idx.clamp(offset)
	line := sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	}) - 1
	return Position{Line: line, Column: offset - idx.lineStarts[line]}
}

// UTF16Position returns the position of offset with the column counted in
// UTF-16 code units, as the language server protocol expects.
func (idx *LineIndex) UTF16Position(offset int) Position {
	pos := idx.Position(offset)
	lineStart := idx.lineStarts[pos.Line]
	col := 0
	for _, r := range idx.text[lineStart : lineStart+pos.Column] {
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
	}
	pos.Column = col
	return pos
}

// Line returns the text of line n without its terminator.
func (idx *LineIndex) Line(n int) string {
	if n < 0 || n >= len(idx.lineStarts) {
		return ""
	}
	start := idx.lineStarts[n]
	end := len(idx.text)
	if n+1 < len(idx.lineStarts) {
		end = idx.lineStarts[n+1]
	}
	line := idx.text[start:end]
	for len(line) > 0 {
		r, size := utf8.DecodeLastRuneInString(line)
		if r != '\n' && r != '\r' && r != '\u2028' && r != '\u2029' {
			break
		}
		line = line[:len(line)-size]
	}
	return line
}

func (idx *LineIndex) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(idx.text) {
		return len(idx.text)
	}
	return offset
}
