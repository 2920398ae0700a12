// Package parser is used to generate the abstract syntax tree (AST) for a
// Runa program.
//
// A parser is created by calling New() with a token source as input, usually
// a lexer. The parser should then be used only once, by calling parser.Parse()
// to produce the AST. Alongside the tree the parser records the source byte
// ranges of every type annotation and comment, which later passes use to
// erase types while keeping the Lua that remains.
package parser

import (
	"errors"

	"github.com/runa-lang/runa/ast"
	"github.com/runa-lang/runa/diag"
	"github.com/runa-lang/runa/internal/lexer"
	"github.com/runa-lang/runa/source"
	"github.com/runa-lang/runa/token"
)

// TokenSource is the stream of tokens consumed by the parser. It is
// implemented by *lexer.Lexer. Next returns the next token or a lexical
// error; after the input is exhausted it returns EOF tokens forever.
type TokenSource interface {
	Next() (token.Token, error)
}

// Parse the provided input as Runa source code and return the AST. This is a
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(input string, options ...Option) (*ast.Program, error) {
	// Extract the filename from the options before creating the lexer, so
	// that token locations carry it from the first token on.
	var filename string
	for _, opt := range options {
		var probe Parser
		opt(&probe)
		if probe.filename != "" {
			filename = probe.filename
			break
		}
	}
	file := source.NewFile(filename, input)
	p := New(lexer.New(file), options...)
	return p.Parse()
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in token locations and syntax
// errors when the token source does not provide one itself.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Parser object
type Parser struct {
	// src is our token source, usually a lexer
	src TokenSource

	// filename is stamped onto tokens whose locations lack one
	filename string

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token from the source.
	curToken token.Token

	// peekToken holds the next token from the source.
	peekToken token.Token

	// moduleName is the module variable declared at the top of the file
	moduleName string

	// parsing errors collected during parsing
	errors []*diag.Error

	// fault is a token source failure that is not a lexical diagnostic.
	// It is returned to the caller unchanged, never as a syntax error.
	fault error

	// current nesting depth, compared against maxDepth
	depth    int
	maxDepth int

	// number of enclosing loops in the current function body
	loopDepth int

	// type annotation region tracking; only the outermost region of a
	// nested group is recorded
	regionDepth int
	regionStart int
	typeRegions []ast.Region

	// source ranges of the comments seen so far
	commentRegions []ast.Region
}

// New returns a Parser for the given token source.
func New(src TokenSource, options ...Option) *Parser {
	p := &Parser{
		src:      src,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Parse the program provided by the token source. Either a complete AST or
// an error is returned, never both. The error joins every syntax error
// found, so one Parse call can report several independent problems.
func (p *Parser) Parse() (program *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(abortParse); !ok {
				panic(r)
			}
			program = nil
			if p.fault != nil {
				err = p.fault
				return
			}
			err = p.joinErrors()
		}
	}()
	// Prime the token window. This happens here rather than in New so that
	// lexical errors in the first tokens are reported like any other.
	p.advance()
	p.advance()
	program = p.parseProgram()
	if len(p.errors) > 0 {
		return nil, p.joinErrors()
	}
	return program, nil
}

// advance shifts the token window forward by one token. Comment tokens are
// filtered out here and recorded as source regions.
func (p *Parser) advance() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	for {
		tok, srcErr := p.src.Next()
		if srcErr != nil {
			// A lexical diagnostic joins the syntax errors. Anything else is
			// an internal fault of the token source and is handed back to the
			// caller as-is, so implementation bugs never masquerade as syntax
			// errors in the user's file.
			var lexErr *diag.Error
			if errors.As(srcErr, &lexErr) {
				p.errors = append(p.errors, lexErr)
			} else {
				p.fault = srcErr
			}
			panic(abortParse{})
		}
		if tok.Type == token.COMMENT {
			p.commentRegions = append(p.commentRegions, ast.Region{
				Start: tok.Start.Offset,
				End:   tok.EndOff,
			})
			continue
		}
		if tok.Start.File == "" {
			tok.Start.File = p.filename
		}
		p.peekToken = tok
		return
	}
}

func (p *Parser) curTokenIs(typ token.Type) bool {
	return p.curToken.Type == typ
}

func (p *Parser) peekTokenIs(typ token.Type) bool {
	return p.peekToken.Type == typ
}

// got consumes the current token if it has the given type.
func (p *Parser) got(typ token.Type) bool {
	if p.curTokenIs(typ) {
		p.advance()
		return true
	}
	return false
}

// enterNesting guards recursive descent against stack overflow on deeply
// nested input. Every call must be paired with leaveNesting.
func (p *Parser) enterNesting(loc token.Location) {
	p.depth++
	if p.depth > p.maxDepth {
		p.abortf(loc, "maximum nesting depth exceeded")
	}
}

func (p *Parser) leaveNesting() {
	p.depth--
}

// beginRegion opens a type annotation region starting at the given source
// offset. Regions opened while another is in progress are folded into the
// outer one, so a declaration whose type contains further annotated parts
// yields a single region covering the whole annotation.
func (p *Parser) beginRegion(start int) {
	if p.regionDepth == 0 {
		p.regionStart = start
	}
	p.regionDepth++
}

// endRegion closes the innermost open region. The end offset is the end of
// the last consumed token, which keeps trailing whitespace and comments out
// of the region.
func (p *Parser) endRegion() {
	p.regionDepth--
	if p.regionDepth == 0 {
		p.typeRegions = append(p.typeRegions, ast.Region{
			Start: p.regionStart,
			End:   p.prevToken.EndOff,
		})
	}
}
