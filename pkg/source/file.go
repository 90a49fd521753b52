// Package source holds the text of an expression source together with a
// line index, and converts between byte offsets and line/column positions.
package source

import (
	"sort"
	"unicode/utf8"
)

// Line holds the byte offsets of a single line.
type Line struct {
	// Start is the offset of the first byte of the line.
	Start int

	// NewlineStart is the offset where the line terminator begins.
	// It equals End for a final line without a terminator.
	NewlineStart int

	// End is the offset just past the terminator.
	End int
}

// Position is a 1-based line and column. Column counts bytes.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether both coordinates are positive.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// File is an immutable expression source with its line index.
type File struct {
	// Path is the file path, or empty for in-memory input.
	Path string

	// Content is the full source text.
	Content string

	// Lines is the line index. It always holds at least one line.
	Lines []Line
}

// NewFile creates a File and builds its line index.
func NewFile(path, content string) *File {
	return &File{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines splits content into lines. Both LF and CRLF terminators are
// recognized. Empty content yields a single empty line.
func BuildLines(content string) []Line {
	var lines []Line
	start := 0

	for idx := range len(content) {
		if content[idx] != '\n' {
			continue
		}
		nl := idx
		if idx > start && content[idx-1] == '\r' {
			nl = idx - 1
		}
		lines = append(lines, Line{Start: start, NewlineStart: nl, End: idx + 1})
		start = idx + 1
	}

	return append(lines, Line{Start: start, NewlineStart: len(content), End: len(content)})
}

// LineCount returns the number of lines.
func (f *File) LineCount() int {
	return len(f.Lines)
}

// lineIndex returns the 0-based index of the line containing offset.
func (f *File) lineIndex(offset int) int {
	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].End > offset
	})
	if idx >= len(f.Lines) {
		idx = len(f.Lines) - 1
	}
	return idx
}

// Position converts a byte offset to a 1-based line and byte column.
// Offsets past the end clamp to the end of the content. A negative offset
// yields the zero Position.
func (f *File) Position(offset int) Position {
	if offset < 0 {
		return Position{}
	}
	offset = min(offset, len(f.Content))

	idx := f.lineIndex(offset)
	return Position{Line: idx + 1, Column: offset - f.Lines[idx].Start + 1}
}

// Offset converts a 1-based line and byte column to an offset.
// The column may point one past the last byte of the line.
func (f *File) Offset(pos Position) (int, bool) {
	if pos.Line < 1 || pos.Line > len(f.Lines) || pos.Column < 1 {
		return 0, false
	}

	line := f.Lines[pos.Line-1]
	offset := line.Start + pos.Column - 1
	if offset > line.End {
		return 0, false
	}
	return offset, true
}

// LineText returns the text of a 1-based line without its terminator.
func (f *File) LineText(line int) string {
	if line < 1 || line > len(f.Lines) {
		return ""
	}
	l := f.Lines[line-1]
	return f.Content[l.Start:l.NewlineStart]
}

// UTF16Position converts a byte offset to a 0-based line and UTF-16 code
// unit column, the coordinate system used by the Language Server Protocol.
func (f *File) UTF16Position(offset int) (int, int) {
	offset = max(0, min(offset, len(f.Content)))

	idx := f.lineIndex(offset)
	col := 0
	for _, r := range f.Content[f.Lines[idx].Start:offset] {
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
	}
	return idx, col
}

// OffsetUTF16 converts a 0-based line and UTF-16 column to a byte offset.
// Columns past the end of the line clamp to the line terminator.
func (f *File) OffsetUTF16(line, col int) int {
	if line < 0 {
		return 0
	}
	if line >= len(f.Lines) {
		return len(f.Content)
	}

	l := f.Lines[line]
	offset := l.Start
	for offset < l.NewlineStart && col > 0 {
		r, size := utf8.DecodeRuneInString(f.Content[offset:l.NewlineStart])
		if r >= 0x10000 {
			col -= 2
		} else {
			col--
		}
		offset += size
	}
	return offset
}
