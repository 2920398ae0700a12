// Package source pairs source texts with their file names and resolves byte
// offsets into line/column locations.
package source

import (
	"sort"
	"strings"

	"github.com/runa-lang/runa/token"
)

// File holds one source text and owns the newline index used to resolve byte
// offsets into locations. The index is built once, on first use, and lives
// exactly as long as the File, so it can never keep a discarded source text
// alive. A File is not safe for concurrent use; the parsing pipeline that
// owns it is single-threaded.
type File struct {
	name  string
	text  string
	lines []int // offsets of every '\n', ascending; nil until first use
}

// NewFile creates a File for the given name and source text.
func NewFile(name, text string) *File {
	return &File{name: name, text: text}
}

// Name returns the file name used in locations and diagnostics.
func (f *File) Name() string { return f.name }

// Text returns the complete source text.
func (f *File) Text() string { return f.text }

// Size returns the length of the source text in bytes.
func (f *File) Size() int { return len(f.text) }

// Position converts a byte offset into a Location. The line is 1 plus the
// number of newlines strictly before the offset; the column is the 1-based
// byte distance from the start of that line. Offsets at or past the end of
// the file resolve to the position just past the final byte. Repeated calls
// for the same offset always return identical results.
func (f *File) Position(offset int) token.Location {
	if f.lines == nil {
		f.buildIndex()
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.text) {
		offset = len(f.text)
	}
	i := sort.SearchInts(f.lines, offset)
	lineStart := 0
	if i > 0 {
		lineStart = f.lines[i-1] + 1
	}
	return token.Location{
		File:   f.name,
		Line:   i + 1,
		Column: offset - lineStart + 1,
		Offset: offset,
	}
}

// LineText returns the text of the given 1-based line, without its
// terminating newline. It returns "" for lines outside the file.
func (f *File) LineText(line int) string {
	if f.lines == nil {
		f.buildIndex()
	}
	if line < 1 || line > len(f.lines)+1 {
		return ""
	}
	start := 0
	if line > 1 {
		start = f.lines[line-2] + 1
	}
	end := len(f.text)
	if line <= len(f.lines) {
		end = f.lines[line-1]
	}
	return f.text[start:end]
}

func (f *File) buildIndex() {
	lines := make([]int, 0, strings.Count(f.text, "\n"))
	for i := 0; i < len(f.text); i++ {
		if f.text[i] == '\n' {
			lines = append(lines, i)
		}
	}
	f.lines = lines
}
