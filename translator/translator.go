// Package translator emits the Lua form of a parsed Runa program. Runa is
// designed so that erasing its type syntax from the source text leaves a
// valid Lua program: annotations and casts are blanked in place and type
// declarations are removed wholly, while newlines and comments are kept, so
// every line of the emitted Lua carries the same number as its Runa source.
package translator

import (
	"fmt"
	"sort"

	"github.com/runa-lang/runa/ast"
)

// Translate renders the program as Lua. The src text must be the exact text
// the program was parsed from; the recorded byte ranges are resolved against
// it.
func Translate(src string, program *ast.Program) (string, error) {
	if program == nil {
		return "", fmt.Errorf("translator: nil program")
	}
	tr := &eraser{src: src, out: []byte(src), comments: program.CommentRegions}

	// Type declarations exist only for the checker; Lua sees neither the
	// declaration nor any use of the name, so the whole span goes.
	for _, top := range program.Toplevels {
		switch top.(type) {
		case *ast.Typealias, *ast.Record:
			r := ast.Region{Start: top.Pos().Offset, End: top.End()}
			if err := tr.blank(r); err != nil {
				return "", err
			}
		}
	}

	for _, r := range program.TypeRegions {
		// Annotation regions start just past their introducing colon, so
		// the colon itself is the byte before. Cast regions start at "as"
		// and have nothing extra to take.
		if r.Start > 0 && r.Start <= len(src) && src[r.Start-1] == ':' {
			r.Start--
		}
		if err := tr.blank(r); err != nil {
			return "", err
		}
	}
	return string(tr.out), nil
}

// eraser blanks byte ranges of one source text while keeping line structure
// and comments intact.
type eraser struct {
	src      string
	out      []byte
	comments []ast.Region
}

func (e *eraser) blank(r ast.Region) error {
	if r.Start < 0 || r.End < r.Start || r.End > len(e.src) {
		return fmt.Errorf("translator: region %d..%d is outside the source text (%d bytes); the program was parsed from a different text",
			r.Start, r.End, len(e.src))
	}
	for i := r.Start; i < r.End; i++ {
		if e.out[i] == '\n' || e.out[i] == '\r' {
			continue
		}
		if e.inComment(i) {
			continue
		}
		e.out[i] = ' '
	}
	return nil
}

// inComment reports whether the byte offset lies inside a comment. The
// comment ranges are ordered and disjoint, so a binary search finds the only
// candidate.
func (e *eraser) inComment(off int) bool {
	i := sort.Search(len(e.comments), func(i int) bool {
		return e.comments[i].End > off
	})
	return i < len(e.comments) && e.comments[i].Contains(off)
}
