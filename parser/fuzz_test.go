package parser

import (
	"strings"
	"testing"
)

// FuzzParse feeds arbitrary inputs to the parser. The parser must never
// panic and must either produce a program or an error, never both.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"local m = {}\nreturn m",
		"local m: module = {}\nlocal x: int = 1\nreturn m",
		"local m = {}\ntypealias id = int\nreturn m",
		"local m = {}\nrecord P\nx: float\ny: float\nend\nreturn m",
		"local m = {}\nlocal f, g\nfunction f() end\nfunction g() end\nreturn m",
		"local m = {}\nfunction m.go(a: int): int\nreturn a as int\nend\nreturn m",
		"local m = {}\nlocal t = {1, 2; x = 3,}\nreturn m",
		"local m = {}\nfor i = 1, 10, 2 do\nbreak\nend\nreturn m",
		"local m = {}\nwhile x do\nrepeat\ny()\nuntil z\nend\nreturn m",
		"local m = {}\nlocal s = \"a\\tb\" .. [[long]]\nreturn m",
		"local m = {}\nlocal n = 0xFF + 1.5e2 - #t\nreturn m",
		"local m = {}\nprint \"hi\"\nnew {x = 1}\nreturn m",
		"local m = {}\nlocal v = a.b[c]:d(e)\nreturn m",
		"local m = {}\n-- comment\n--[[ block ]]\nreturn m",
		"local m = {}",
		"return m",
		"local m = {}\nfunction",
		"local m = {}\nlocal x: = 1\nreturn m",
		"local m = {}\nlocal x = (1\nreturn m",
		"local m = {}\nlocal s = \"unfinished",
		"local m = {}\nlocal x = 1e\nreturn m",
		"local = {}",
		"local m = {}\nend",
		"\x00\xff\xfe",
		"local m = {}\nlocal x = y as\nreturn m",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 10000 {
			t.Skip("input too large")
		}
		program, err := Parse(input, WithFilename("fuzz.rn"))
		if (program == nil) == (err == nil) {
			t.Fatalf("parse returned program=%v err=%v, want exactly one", program != nil, err != nil)
		}
		if program != nil {
			_ = program.String()
		}
	})
}

// FuzzParseNesting drives the parser with deeply nested expressions to
// exercise the depth limit.
func FuzzParseNesting(f *testing.F) {
	f.Add(10)
	f.Add(400)
	f.Add(600)
	f.Fuzz(func(t *testing.T, depth int) {
		if depth < 0 || depth > 2000 {
			t.Skip("depth out of range")
		}
		input := "local m = {}\nlocal x = " +
			strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth) +
			"\nreturn m"
		program, err := Parse(input)
		if (program == nil) == (err == nil) {
			t.Fatalf("parse returned program=%v err=%v, want exactly one", program != nil, err != nil)
		}
	})
}
