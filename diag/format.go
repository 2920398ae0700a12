package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/runa-lang/runa/source"
)

// Formatter renders diagnostics for terminal display, optionally with an
// excerpt of the offending source line and a caret under the column.
type Formatter struct {
	useColor bool
	label    *color.Color
	location *color.Color
	gutter   *color.Color
	caret    *color.Color
}

// NewFormatter creates a diagnostic formatter. Color sequences are emitted
// only when useColor is true, regardless of any terminal detection done by
// the caller.
func NewFormatter(useColor bool) *Formatter {
	f := &Formatter{
		useColor: useColor,
		label:    color.New(color.FgRed, color.Bold),
		location: color.New(color.FgCyan),
		gutter:   color.New(color.FgHiBlack),
		caret:    color.New(color.FgHiRed, color.Bold),
	}
	for _, c := range []*color.Color{f.label, f.location, f.gutter, f.caret} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// Format renders one diagnostic. When file holds the text the diagnostic
// points into, the offending line is shown with a caret at the column.
func (f *Formatter) Format(e *Error, file *source.File) string {
	var b strings.Builder
	b.WriteString(f.label.Sprint("syntax error"))
	b.WriteString(": ")
	if e.Loc.IsValid() {
		b.WriteString(f.location.Sprint(e.Loc.String()))
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	b.WriteString("\n")
	f.writeExcerpt(&b, e, file)
	return b.String()
}

func (f *Formatter) writeExcerpt(b *strings.Builder, e *Error, file *source.File) {
	if file == nil || !e.Loc.IsValid() {
		return
	}
	text := file.LineText(e.Loc.Line)
	if text == "" {
		return
	}
	lineNum := fmt.Sprintf("%d", e.Loc.Line)
	pad := strings.Repeat(" ", len(lineNum))

	b.WriteString(f.gutter.Sprintf("%s | ", lineNum))
	b.WriteString(text)
	b.WriteString("\n")

	if e.Loc.Column > 0 && e.Loc.Column <= len(text)+1 {
		b.WriteString(f.gutter.Sprintf("%s | ", pad))
		b.WriteString(caretPadding(text, e.Loc.Column))
		b.WriteString(f.caret.Sprint("^"))
		b.WriteString("\n")
	}
}

// caretPadding returns the spacing that places a caret under the given
// 1-based column, keeping any tabs from the source line so the caret stays
// aligned however the terminal expands them.
func caretPadding(text string, column int) string {
	pad := []byte(nil)
	for i := 0; i < column-1 && i < len(text); i++ {
		if text[i] == '\t' {
			pad = append(pad, '\t')
		} else {
			pad = append(pad, ' ')
		}
	}
	for i := len(pad); i < column-1; i++ {
		pad = append(pad, ' ')
	}
	return string(pad)
}

// FormatAll renders every diagnostic carried by err, separated by blank
// lines, with a trailing count when there is more than one.
func (f *Formatter) FormatAll(err error, file *source.File) string {
	diags := List(err)
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range diags {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.Format(e, file))
	}
	if len(diags) > 1 {
		b.WriteString("\n")
		b.WriteString(f.label.Sprintf("found %d syntax errors", len(diags)))
		b.WriteString("\n")
	}
	return b.String()
}
