package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/runa-lang/runa/ast"
	"github.com/runa-lang/runa/token"
)

// MaxArity is the most parameters a function may declare and the most
// arguments a call may pass. Exceeding it is reported once per list.
const MaxArity = 200

// Expression parsing methods for the Parser.

func (p *Parser) parseExpr() ast.Expr {
	return p.subExpr(0)
}

// subExpr parses an expression whose binary operators all bind tighter than
// limit. This is classic precedence climbing: the loop claims operators as
// long as their left power beats the limit, and recurses with each
// operator's right power, so "a .. b .. c" and "2 ^ 3 ^ 2" group to the
// right while everything else groups to the left.
func (p *Parser) subExpr(limit int) ast.Expr {
	p.enterNesting(p.curToken.Start)
	defer p.leaveNesting()

	var x ast.Expr
	if unaryOps[p.curToken.Type] {
		opTok := p.curToken
		p.advance()
		x = &ast.Unop{OpPos: opTok.Start, Op: opTok.Type, X: p.subExpr(unaryPriority)}
	} else {
		x = p.castExpr()
	}
	for {
		pr, ok := binaryPriority[p.curToken.Type]
		if !ok || pr.left <= limit {
			return x
		}
		opTok := p.curToken
		p.advance()
		x = &ast.Binop{X: x, OpPos: opTok.Start, Op: opTok.Type, Y: p.subExpr(pr.right)}
	}
}

// castExpr parses a simple expression followed by any number of "as" casts.
// A cast binds tighter than every binary operator, so "x + y as int"
// converts only y. The cast's "as type" text forms a type region starting
// at the keyword itself.
func (p *Parser) castExpr() ast.Expr {
	x := p.simpleExpr()
	for p.curTokenIs(token.AS) {
		asTok := p.curToken
		p.beginRegion(asTok.Start.Offset)
		p.advance()
		typ := p.parseType()
		p.endRegion()
		x = &ast.Cast{X: x, AsPos: asTok.Start, Type: typ}
	}
	return x
}

func (p *Parser) simpleExpr() ast.Expr {
	switch p.curToken.Type {
	case token.NIL:
		x := &ast.Nil{ValuePos: p.curToken.Start}
		p.advance()
		return x
	case token.TRUE, token.FALSE:
		x := &ast.Bool{ValuePos: p.curToken.Start, Value: p.curTokenIs(token.TRUE)}
		p.advance()
		return x
	case token.INT:
		x := p.intNode(p.curToken)
		p.advance()
		return x
	case token.FLOAT:
		x := p.floatNode(p.curToken)
		p.advance()
		return x
	case token.STRING:
		x := p.stringNode(p.curToken)
		p.advance()
		return x
	case token.LBRACE:
		return p.initList()
	case token.FUNCTION:
		funcTok := p.curToken
		p.advance()
		params, rets, body, endOff := p.funcBody(funcTok)
		return &ast.Lambda{
			FuncPos:  funcTok.Start,
			Params:   params,
			RetTypes: rets,
			Body:     body,
			EndOff:   endOff,
		}
	default:
		return p.suffixedExpr()
	}
}

// suffixedExpr parses a primary expression followed by any number of field
// selections, index accesses and calls.
func (p *Parser) suffixedExpr() ast.Expr {
	x := p.primaryExpr()
	for {
		switch p.curToken.Type {
		case token.DOT:
			p.advance()
			nameTok := p.expect(token.NAME, "field access")
			x = &ast.Dot{X: x, Sel: nameTok.Literal, SelPos: nameTok.Start}
		case token.LBRACKET:
			open := p.curToken
			p.advance()
			index := p.parseExpr()
			closeTok := p.closeMatch(token.RBRACKET, "index expression", open)
			x = &ast.Bracket{X: x, Lbrack: open.Start, Index: index, Rbrack: closeTok.Start}
		case token.COLON:
			p.advance()
			nameTok := p.expect(token.NAME, "method call")
			args, lparen, rparen := p.callArgs()
			x = &ast.CallMethod{
				X:         x,
				Method:    nameTok.Literal,
				MethodPos: nameTok.Start,
				Args:      args,
				Lparen:    lparen,
				Rparen:    rparen,
			}
		case token.LPAREN, token.STRING, token.LBRACE:
			args, lparen, rparen := p.callArgs()
			x = &ast.CallFunc{Fun: x, Lparen: lparen, Args: args, Rparen: rparen}
		default:
			return x
		}
	}
}

func (p *Parser) primaryExpr() ast.Expr {
	switch p.curToken.Type {
	case token.NAME:
		x := &ast.Name{NamePos: p.curToken.Start, Name: p.curToken.Literal}
		p.advance()
		return x
	case token.LPAREN:
		open := p.curToken
		p.advance()
		inner := p.parseExpr()
		closeTok := p.closeMatch(token.RPAREN, "parenthesized expression", open)
		return &ast.Paren{Lparen: open.Start, X: inner, Rparen: closeTok.Start}
	default:
		p.abortf(p.curToken.Start, "unexpected %s while parsing expression", tokenDescription(p.curToken))
		return nil
	}
}

// callArgs parses the arguments of a call. Besides the parenthesized form,
// Lua's sugar of a lone string or initializer list argument is accepted; in
// that case the returned paren locations are invalid.
func (p *Parser) callArgs() ([]ast.Expr, token.Location, token.Location) {
	switch p.curToken.Type {
	case token.LPAREN:
		open := p.curToken
		p.advance()
		var args []ast.Expr
		if !p.curTokenIs(token.RPAREN) {
			args = append(args, p.parseExpr())
			for p.got(token.COMMA) {
				args = append(args, p.parseExpr())
				if len(args) == MaxArity+1 {
					p.errorf(args[MaxArity].Pos(), "too many arguments (limit is %d)", MaxArity)
				}
			}
		}
		closeTok := p.closeMatch(token.RPAREN, "call arguments", open)
		return args, open.Start, closeTok.Start
	case token.STRING:
		s := p.stringNode(p.curToken)
		p.advance()
		return []ast.Expr{s}, token.Location{}, token.Location{}
	case token.LBRACE:
		return []ast.Expr{p.initList()}, token.Location{}, token.Location{}
	default:
		p.abortf(p.curToken.Start, "unexpected %s while parsing call arguments", tokenDescription(p.curToken))
		return nil, token.Location{}, token.Location{}
	}
}

// initList parses a brace-enclosed initializer list. An entry is either
// positional or, when a name is directly followed by "=", named.
func (p *Parser) initList() *ast.InitList {
	open := p.curToken
	p.advance()
	var fields []ast.Field
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.NAME) && p.peekTokenIs(token.ASSIGN) {
			nameTok := p.curToken
			p.advance()
			p.advance()
			fields = append(fields, &ast.FieldRec{
				NamePos: nameTok.Start,
				Name:    nameTok.Literal,
				Value:   p.parseExpr(),
			})
		} else {
			fields = append(fields, &ast.FieldList{Value: p.parseExpr()})
		}
		if !p.got(token.COMMA) && !p.got(token.SEMI) {
			break
		}
	}
	closeTok := p.closeMatch(token.RBRACE, "initializer list", open)
	return &ast.InitList{Lbrace: open.Start, Fields: fields, Rbrace: closeTok.Start}
}

// exprList parses one or more comma separated expressions.
func (p *Parser) exprList() []ast.Expr {
	list := []ast.Expr{p.parseExpr()}
	for p.got(token.COMMA) {
		list = append(list, p.parseExpr())
	}
	return list
}

func (p *Parser) stringNode(tok token.Token) *ast.String {
	return &ast.String{ValuePos: tok.Start, Value: tok.Literal, EndOff: tok.EndOff}
}

// intNode converts an integer literal to its value. Hexadecimal literals
// wrap around on overflow the way Lua's do, while decimal literals too
// large for an integer quietly become floats.
func (p *Parser) intNode(tok token.Token) ast.Expr {
	lit := tok.Literal
	if isHexLiteral(lit) {
		var v uint64
		for i := 2; i < len(lit); i++ {
			v = v*16 + hexValue(lit[i])
		}
		return &ast.Int{ValuePos: tok.Start, Literal: lit, Value: int64(v)}
	}
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		if f, ferr := strconv.ParseFloat(lit, 64); ferr == nil {
			return &ast.Float{ValuePos: tok.Start, Literal: lit, Value: f}
		}
		p.errorf(tok.Start, "malformed number near '%s'", lit)
	}
	return &ast.Int{ValuePos: tok.Start, Literal: lit, Value: v}
}

func (p *Parser) floatNode(tok token.Token) *ast.Float {
	lit := tok.Literal
	text := lit
	if isHexLiteral(lit) && !strings.ContainsAny(lit, "pP") {
		// strconv requires an explicit exponent on hex floats
		text += "p0"
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		p.errorf(tok.Start, "malformed number near '%s'", lit)
	}
	return &ast.Float{ValuePos: tok.Start, Literal: lit, Value: v}
}

func isHexLiteral(lit string) bool {
	return len(lit) > 2 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X')
}

func hexValue(c byte) uint64 {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0')
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10
	default:
		return uint64(c-'A') + 10
	}
}
