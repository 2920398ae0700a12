// Package runa is the embedding API for the Runa front end. Runa is a small
// statically typed language that compiles to Lua by erasure: a Runa program
// is a Lua program with type declarations and annotations added, and the
// emitted Lua is the source text with exactly those parts blanked out.
//
// Parse builds the validated syntax tree for a source text; Translate goes
// all the way to Lua:
//
//	lua, err := runa.Translate(source, runa.WithFilename("main.rn"))
package runa

import (
	"github.com/runa-lang/runa/ast"
	"github.com/runa-lang/runa/parser"
	"github.com/runa-lang/runa/translator"
)

// Option configures a Runa parse or translation.
type Option func(*options)

type options struct {
	filename string
	maxDepth int
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	if o.maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(o.maxDepth))
	}
	return opts
}

// WithFilename sets the file name used in locations and diagnostics.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithMaxDepth overrides the maximum nesting depth the parser accepts
// before reporting an error.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// Parse turns Runa source code into its validated syntax tree. It returns
// either the program or an error carrying every syntax diagnostic, never
// both.
func Parse(source string, opts ...Option) (*ast.Program, error) {
	o := collectOptions(opts...)
	return parser.Parse(source, o.parserOpts()...)
}

// Translate parses Runa source code and emits the equivalent Lua. Every
// line of the output carries the same line number as its source, so Lua
// runtime errors point into the Runa file.
func Translate(source string, opts ...Option) (string, error) {
	program, err := Parse(source, opts...)
	if err != nil {
		return "", err
	}
	return translator.Translate(source, program)
}
