package parser

import (
	"github.com/runa-lang/runa/ast"
	"github.com/runa-lang/runa/token"
)

// parseType parses a type.
//
//	type := simpletype
//	      | simpletype "->" rettypes
//	      | "(" [typelist] ")" "->" rettypes
//
// A parenthesized single type without a following arrow is plain grouping.
func (p *Parser) parseType() ast.Type {
	p.enterNesting(p.curToken.Start)
	defer p.leaveNesting()

	if p.curTokenIs(token.LPAREN) {
		open := p.curToken
		p.advance()
		var args []ast.Type
		if !p.curTokenIs(token.RPAREN) {
			args = p.typeList()
		}
		p.closeMatch(token.RPAREN, "type", open)
		if p.got(token.ARROW) {
			return &ast.FuncType{
				StartLoc: open.Start,
				ArgTypes: args,
				RetTypes: p.retTypes(),
				EndOff:   p.prevToken.EndOff,
			}
		}
		if len(args) == 1 {
			return args[0]
		}
		p.abortf(p.curToken.Start, "unexpected %s while parsing type (expected \"->\")",
			tokenDescription(p.curToken))
	}

	t := p.simpleType()
	if p.got(token.ARROW) {
		return &ast.FuncType{
			StartLoc: t.Pos(),
			ArgTypes: []ast.Type{t},
			RetTypes: p.retTypes(),
			EndOff:   p.prevToken.EndOff,
		}
	}
	return t
}

// simpleType parses a type that is not a function type: nil, a type name,
// an array type like {int}, or a table type like {x: float, y: float}.
func (p *Parser) simpleType() ast.Type {
	switch p.curToken.Type {
	case token.NIL:
		t := &ast.NilType{NilPos: p.curToken.Start}
		p.advance()
		return t
	case token.NAME:
		t := &ast.NameType{NamePos: p.curToken.Start, Name: p.curToken.Literal}
		p.advance()
		return t
	case token.LBRACE:
		return p.braceType()
	default:
		p.abortf(p.curToken.Start, "unexpected %s while parsing type", tokenDescription(p.curToken))
		return nil
	}
}

// braceType parses {elem} or {name: type, ...}. The two forms are told
// apart by the two tokens after the brace: a name followed by a colon opens
// a table type.
func (p *Parser) braceType() ast.Type {
	open := p.curToken
	p.advance()
	if p.curTokenIs(token.NAME) && p.peekTokenIs(token.COLON) {
		var fields []*ast.RecordField
		for {
			fields = append(fields, p.recordField())
			if !p.got(token.COMMA) && !p.got(token.SEMI) {
				break
			}
			if p.curTokenIs(token.RBRACE) {
				break
			}
		}
		closeTok := p.closeMatch(token.RBRACE, "table type", open)
		return &ast.TableType{Lbrace: open.Start, Fields: fields, Rbrace: closeTok.Start}
	}
	if p.curTokenIs(token.RBRACE) {
		p.abortf(p.curToken.Start, "unexpected %s while parsing type (expected an element type)",
			tokenDescription(p.curToken))
	}
	elem := p.parseType()
	closeTok := p.closeMatch(token.RBRACE, "array type", open)
	return &ast.ArrayType{Lbrace: open.Start, Elem: elem, Rbrace: closeTok.Start}
}

// recordField parses one "name: type" field, as found in record bodies and
// table types. The annotation after the colon is bracketed as a type region;
// inside a larger annotation the bracketing folds into the enclosing region.
func (p *Parser) recordField() *ast.RecordField {
	nameTok := p.expect(token.NAME, "field declaration")
	colonTok := p.expect(token.COLON, "field declaration")
	p.beginRegion(colonTok.EndOff)
	typ := p.parseType()
	p.endRegion()
	return &ast.RecordField{
		NamePos: nameTok.Start,
		Name:    nameTok.Literal,
		Type:    typ,
	}
}

// retTypes parses the return types after a "->". Parentheses allow zero or
// several returns; a parenthesized list followed by another arrow is itself
// a function type, so "-> (int) -> int" nests to the right.
func (p *Parser) retTypes() []ast.Type {
	if p.curTokenIs(token.LPAREN) {
		open := p.curToken
		p.advance()
		var list []ast.Type
		if !p.curTokenIs(token.RPAREN) {
			list = p.typeList()
		}
		p.closeMatch(token.RPAREN, "return types", open)
		if p.got(token.ARROW) {
			return []ast.Type{&ast.FuncType{
				StartLoc: open.Start,
				ArgTypes: list,
				RetTypes: p.retTypes(),
				EndOff:   p.prevToken.EndOff,
			}}
		}
		return list
	}
	return []ast.Type{p.parseType()}
}

// typeList parses one or more comma separated types.
func (p *Parser) typeList() []ast.Type {
	list := []ast.Type{p.parseType()}
	for p.got(token.COMMA) {
		list = append(list, p.parseType())
	}
	return list
}

// decl parses "name" or "name: type". Used for local variables, function
// parameters and loop variables.
func (p *Parser) decl(context string) *ast.Decl {
	nameTok := p.expect(token.NAME, context)
	d := &ast.Decl{NamePos: nameTok.Start, Name: nameTok.Literal}
	if p.curTokenIs(token.COLON) {
		colonTok := p.curToken
		p.advance()
		p.beginRegion(colonTok.EndOff)
		d.Type = p.parseType()
		p.endRegion()
	}
	return d
}

// declList parses one or more comma separated declarations.
func (p *Parser) declList(context string) []*ast.Decl {
	decls := []*ast.Decl{p.decl(context)}
	for p.got(token.COMMA) {
		decls = append(decls, p.decl(context))
	}
	return decls
}
