package parser

import (
	"fmt"
	"sort"

	"github.com/runa-lang/runa/diag"
	"github.com/runa-lang/runa/token"
)

// MaxErrors is the maximum number of syntax errors reported for one input.
// Once the limit is reached the parse stops rather than drowning the user
// in follow-on errors.
const MaxErrors = 10

// abortParse is the sentinel panic value used to unwind the parser when a
// syntax error cannot be recovered from. Parse catches it and nothing else.
type abortParse struct{}

// errorf records a recoverable syntax error and keeps parsing. The parser
// continues as if the offending construct had been accepted.
func (p *Parser) errorf(loc token.Location, format string, args ...interface{}) {
	p.addError(diag.Errorf(loc, format, args...))
}

// abortf records a syntax error and unwinds the parse.
func (p *Parser) abortf(loc token.Location, format string, args ...interface{}) {
	p.addError(diag.Errorf(loc, format, args...))
	panic(abortParse{})
}

func (p *Parser) addError(err *diag.Error) {
	p.errors = append(p.errors, err)
	if len(p.errors) >= MaxErrors {
		panic(abortParse{})
	}
}

// joinErrors returns the collected syntax errors as one error, ordered by
// source position. Errors found late in the parse can refer to earlier
// constructs, like a block's function grouping checks, so emission order
// alone is not presentation order.
func (p *Parser) joinErrors() error {
	sort.SliceStable(p.errors, func(i, j int) bool {
		return p.errors[i].Loc.Offset < p.errors[j].Loc.Offset
	})
	return diag.Join(p.errors)
}

// expect consumes the current token if it has the given type and aborts the
// parse with a syntax error otherwise. The context string names the
// construct being parsed, e.g. "if statement".
func (p *Parser) expect(typ token.Type, context string) token.Token {
	if !p.curTokenIs(typ) {
		p.abortf(p.curToken.Start, "unexpected %s while parsing %s (expected %s)",
			tokenDescription(p.curToken), context, tokenTypeDescription(typ))
	}
	tok := p.curToken
	p.advance()
	return tok
}

// closeMatch consumes the token that closes a construct opened by open,
// e.g. the "end" of a "function". When the closer is missing and the opener
// was on an earlier line, the error points back at it.
func (p *Parser) closeMatch(typ token.Type, context string, open token.Token) token.Token {
	if p.curTokenIs(typ) {
		tok := p.curToken
		p.advance()
		return tok
	}
	if open.Start.Line == p.curToken.Start.Line {
		p.abortf(p.curToken.Start, "unexpected %s while parsing %s (expected %s)",
			tokenDescription(p.curToken), context, tokenTypeDescription(typ))
	}
	p.abortf(p.curToken.Start, "unexpected %s while parsing %s (expected %s to close the %q on line %d)",
		tokenDescription(p.curToken), context, tokenTypeDescription(typ),
		open.Literal, open.Start.Line)
	return token.Token{}
}

// tokenDescription returns a human friendly description of a token, for
// use in error messages.
func tokenDescription(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of file"
	case token.STRING:
		return fmt.Sprintf("string %q", tok.Literal)
	default:
		return fmt.Sprintf("%q", tok.Literal)
	}
}

// tokenTypeDescription returns a human friendly description of a token
// type, for use in error messages.
func tokenTypeDescription(typ token.Type) string {
	switch typ {
	case token.EOF:
		return "end of file"
	case token.NAME:
		return "a name"
	case token.INT, token.FLOAT:
		return "a number"
	case token.STRING:
		return "a string"
	default:
		return fmt.Sprintf("%q", string(typ))
	}
}
