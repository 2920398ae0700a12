package parser

import (
	"github.com/runa-lang/runa/ast"
	"github.com/runa-lang/runa/token"
)

// parseProgram parses a whole file: the module declaration, the toplevel
// items, and the final return of the module variable.
func (p *Parser) parseProgram() *ast.Program {
	program := &ast.Program{StartLoc: p.curToken.Start}
	program.ModuleName = p.moduleDecl()
	p.moduleName = program.ModuleName

	sawReturn := false
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.TYPEALIAS:
			program.Toplevels = append(program.Toplevels, p.typealiasDecl())
		case token.RECORD:
			program.Toplevels = append(program.Toplevels, p.recordDecl())
		case token.RETURN:
			ret := p.returnStat()
			p.checkModuleReturn(ret)
			sawReturn = true
			if !p.curTokenIs(token.EOF) {
				p.errorf(p.curToken.Start, "the module's return must be the last statement in the file")
			}
		default:
			if stmts := p.statRun(); len(stmts) > 0 {
				program.Toplevels = append(program.Toplevels, &ast.Stats{List: stmts})
			}
		}
	}
	if !sawReturn {
		if p.moduleName != "" {
			p.errorf(p.curToken.Start, "missing the final 'return %s'", p.moduleName)
		} else {
			p.errorf(p.curToken.Start, "missing the final return of the module variable")
		}
	}

	program.EndLoc = p.curToken.Start
	program.TypeRegions = p.typeRegions
	program.CommentRegions = p.commentRegions
	return program
}

// moduleDecl parses the declaration that must open every file, of the form
// "local m = {}" with an optional ": module" annotation. Deviations are
// reported but parsing continues with whatever name was found.
func (p *Parser) moduleDecl() string {
	if !p.curTokenIs(token.LOCAL) {
		p.errorf(p.curToken.Start, "the file must start with a module declaration, like 'local m = {}'")
		return ""
	}
	p.advance()
	decls := p.declList("module declaration")
	if len(decls) > 1 {
		p.errorf(decls[1].NamePos, "the module declaration must declare a single variable")
	}
	name := decls[0].Name
	if t := decls[0].Type; t != nil {
		if nt, ok := t.(*ast.NameType); !ok || nt.Name != "module" {
			p.errorf(t.Pos(), "the module variable can only be annotated as 'module'")
		}
	}
	if !p.got(token.ASSIGN) {
		p.errorf(p.curToken.Start, "the module variable must be initialized with '{}'")
		return name
	}
	exprs := p.exprList()
	init, isInit := exprs[0].(*ast.InitList)
	if len(exprs) != 1 || !isInit || len(init.Fields) != 0 {
		p.errorf(exprs[0].Pos(), "the module variable must be initialized with '{}'")
	}
	return name
}

// checkModuleReturn verifies that the toplevel return names exactly the
// module variable. Nothing is checked when the module declaration itself
// was missing, to avoid piling errors onto one root cause.
func (p *Parser) checkModuleReturn(ret *ast.Return) {
	if p.moduleName == "" {
		return
	}
	if len(ret.Exprs) == 1 {
		if name, ok := ret.Exprs[0].(*ast.Name); ok && name.Name == p.moduleName {
			return
		}
	}
	p.errorf(ret.ReturnPos, "the final return must return the module variable '%s'", p.moduleName)
}

// statRun parses a run of toplevel statements, stopping at the next type
// declaration, the module return, or end of file.
func (p *Parser) statRun() []ast.Stmt {
	var stmts []ast.Stmt
	for {
		switch p.curToken.Type {
		case token.EOF, token.RECORD, token.TYPEALIAS, token.RETURN:
			return p.groupFunctions(stmts)
		}
		if s := p.stat(); s != nil {
			stmts = append(stmts, s)
		}
	}
}

func (p *Parser) typealiasDecl() ast.Toplevel {
	tok := p.curToken
	p.advance()
	nameTok := p.expect(token.NAME, "typealias")
	eqTok := p.expect(token.ASSIGN, "typealias")
	p.beginRegion(eqTok.EndOff)
	alias := p.parseType()
	p.endRegion()
	return &ast.Typealias{
		TypealiasPos: tok.Start,
		Name:         nameTok.Literal,
		NamePos:      nameTok.Start,
		Alias:        alias,
	}
}

func (p *Parser) recordDecl() ast.Toplevel {
	tok := p.curToken
	p.advance()
	nameTok := p.expect(token.NAME, "record declaration")
	var fields []*ast.RecordField
	for !p.curTokenIs(token.END) && !p.curTokenIs(token.EOF) {
		fields = append(fields, p.recordField())
		p.got(token.SEMI)
	}
	endTok := p.closeMatch(token.END, "record declaration", tok)
	return &ast.Record{
		RecordPos: tok.Start,
		Name:      nameTok.Literal,
		NamePos:   nameTok.Start,
		Fields:    fields,
		EndOff:    endTok.EndOff,
	}
}
