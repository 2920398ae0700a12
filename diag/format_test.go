package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runa-lang/runa/source"
)

func TestFormatPlain(t *testing.T) {
	file := source.NewFile("demo.rn", "if x 2 then\nend\n")
	f := NewFormatter(false)

	out := f.Format(Errorf(file.Position(5), "unexpected number"), file)
	want := "syntax error: demo.rn:1:6: unexpected number\n" +
		"1 | if x 2 then\n" +
		"  |      ^\n"
	require.Equal(t, want, out)
}

func TestFormatWithoutFile(t *testing.T) {
	f := NewFormatter(false)
	out := f.Format(Errorf(loc(2, 3), "unexpected symbol"), nil)
	require.Equal(t, "syntax error: demo.rn:2:3: unexpected symbol\n", out)
}

func TestFormatColor(t *testing.T) {
	file := source.NewFile("demo.rn", "return ,\n")
	f := NewFormatter(true)
	out := f.Format(Errorf(file.Position(7), "unexpected symbol"), file)
	require.Contains(t, out, "\x1b[")
	require.Contains(t, out, "unexpected symbol")
}

func TestFormatTabAlignment(t *testing.T) {
	file := source.NewFile("demo.rn", "\tbreak\n")
	f := NewFormatter(false)
	out := f.Format(Errorf(file.Position(1), "break outside a loop"), file)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	// The caret padding mirrors the tab so the caret lines up under "break".
	require.Equal(t, "  | \t^", lines[2])
}

func TestFormatAll(t *testing.T) {
	file := source.NewFile("demo.rn", "local m = {}\nbreak\nreturn m\n")
	f := NewFormatter(false)
	joined := Join([]*Error{
		Errorf(file.Position(13), "break outside a loop"),
		Errorf(file.Position(19), "missing module return"),
	})

	out := f.FormatAll(joined, file)
	require.Contains(t, out, "demo.rn:2:1: break outside a loop")
	require.Contains(t, out, "found 2 syntax errors")
	// One blank line between entries.
	require.Contains(t, out, "^\n\nsyntax error")
}

func TestFormatAllNil(t *testing.T) {
	f := NewFormatter(false)
	require.Equal(t, "", f.FormatAll(nil, nil))
}
