package parser

import (
	"github.com/runa-lang/runa/ast"
	"github.com/runa-lang/runa/token"
)

// Statement parsing methods for the Parser.

// statList parses statements until a block terminator. A return statement
// always closes the list. Before the list is returned, adjacent function
// definitions are folded into Functions groups.
func (p *Parser) statList() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.blockFollow() {
		if p.curTokenIs(token.RETURN) {
			stmts = append(stmts, p.returnStat())
			break
		}
		if s := p.stat(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return p.groupFunctions(stmts)
}

// blockFollow reports whether the current token ends a block.
func (p *Parser) blockFollow() bool {
	switch p.curToken.Type {
	case token.EOF, token.END, token.ELSE, token.ELSEIF, token.UNTIL:
		return true
	}
	return false
}

// stat parses a single statement. Empty statements parse to nil.
func (p *Parser) stat() ast.Stmt {
	p.enterNesting(p.curToken.Start)
	defer p.leaveNesting()

	switch p.curToken.Type {
	case token.SEMI:
		p.advance()
		return nil
	case token.IF:
		return p.ifStat()
	case token.WHILE:
		return p.whileStat()
	case token.DO:
		open := p.curToken
		p.advance()
		body := p.statList()
		endTok := p.closeMatch(token.END, "do block", open)
		return &ast.Block{DoPos: open.Start, Body: body, EndOff: endTok.EndOff}
	case token.FOR:
		return p.forStat()
	case token.REPEAT:
		return p.repeatStat()
	case token.LOCAL:
		return p.localStat()
	case token.FUNCTION:
		return p.funcStat()
	case token.BREAK:
		tok := p.curToken
		p.advance()
		if p.loopDepth == 0 {
			p.errorf(tok.Start, "'break' outside a loop")
		}
		return &ast.Break{BreakPos: tok.Start}
	default:
		return p.exprStat()
	}
}

func (p *Parser) ifStat() ast.Stmt {
	open := p.curToken
	first := &ast.If{IfPos: open.Start}
	p.advance()
	first.Cond = p.parseExpr()
	p.expect(token.THEN, "if statement")
	first.Then = p.statList()

	// Each elseif becomes a nested If in the previous arm's else slot. All
	// links share the offset of the single closing "end".
	links := []*ast.If{first}
	last := first
	for p.curTokenIs(token.ELSEIF) {
		link := &ast.If{IfPos: p.curToken.Start}
		p.advance()
		link.Cond = p.parseExpr()
		p.expect(token.THEN, "if statement")
		link.Then = p.statList()
		last.Else = []ast.Stmt{link}
		links = append(links, link)
		last = link
	}
	if p.got(token.ELSE) {
		last.Else = p.statList()
	}
	endTok := p.closeMatch(token.END, "if statement", open)
	for _, link := range links {
		link.EndOff = endTok.EndOff
	}
	return first
}

func (p *Parser) whileStat() ast.Stmt {
	open := p.curToken
	p.advance()
	cond := p.parseExpr()
	p.expect(token.DO, "while statement")
	p.loopDepth++
	body := p.statList()
	p.loopDepth--
	endTok := p.closeMatch(token.END, "while statement", open)
	return &ast.While{WhilePos: open.Start, Cond: cond, Body: body, EndOff: endTok.EndOff}
}

func (p *Parser) repeatStat() ast.Stmt {
	open := p.curToken
	p.advance()
	p.loopDepth++
	body := p.statList()
	p.loopDepth--
	p.closeMatch(token.UNTIL, "repeat statement", open)
	cond := p.parseExpr()
	return &ast.Repeat{RepeatPos: open.Start, Body: body, Cond: cond}
}

// forStat parses both loop forms. The shape is decided after the first
// loop variable: "=" opens a numeric range, anything else an iterator.
func (p *Parser) forStat() ast.Stmt {
	open := p.curToken
	p.advance()
	first := p.decl("for statement")
	if p.curTokenIs(token.ASSIGN) {
		p.advance()
		start := p.parseExpr()
		p.expect(token.COMMA, "numeric for")
		limit := p.parseExpr()
		var step ast.Expr
		if p.got(token.COMMA) {
			step = p.parseExpr()
		}
		p.expect(token.DO, "numeric for")
		p.loopDepth++
		body := p.statList()
		p.loopDepth--
		endTok := p.closeMatch(token.END, "for statement", open)
		return &ast.ForNum{
			ForPos: open.Start,
			Decl:   first,
			Start:  start,
			Limit:  limit,
			Step:   step,
			Body:   body,
			EndOff: endTok.EndOff,
		}
	}
	decls := []*ast.Decl{first}
	for p.got(token.COMMA) {
		decls = append(decls, p.decl("for statement"))
	}
	p.expect(token.IN, "for statement")
	exprs := p.exprList()
	p.expect(token.DO, "for statement")
	p.loopDepth++
	body := p.statList()
	p.loopDepth--
	endTok := p.closeMatch(token.END, "for statement", open)
	return &ast.ForIn{
		ForPos: open.Start,
		Decls:  decls,
		Exprs:  exprs,
		Body:   body,
		EndOff: endTok.EndOff,
	}
}

func (p *Parser) localStat() ast.Stmt {
	localTok := p.curToken
	p.advance()
	decls := p.declList("local declaration")
	var exprs []ast.Expr
	if p.got(token.ASSIGN) {
		exprs = p.exprList()
	}
	return &ast.Local{LocalPos: localTok.Start, Decls: decls, Exprs: exprs}
}

func (p *Parser) returnStat() *ast.Return {
	retTok := p.curToken
	p.advance()
	var exprs []ast.Expr
	if !p.blockFollow() && !p.curTokenIs(token.SEMI) {
		exprs = p.exprList()
	}
	p.got(token.SEMI)
	return &ast.Return{ReturnPos: retTok.Start, Exprs: exprs}
}

// exprStat parses a statement that begins with an expression: either an
// assignment or a call. Any other expression is not a statement.
func (p *Parser) exprStat() ast.Stmt {
	first := p.suffixedExpr()
	if p.curTokenIs(token.ASSIGN) || p.curTokenIs(token.COMMA) {
		vars := []ast.Var{p.assignable(first)}
		for p.got(token.COMMA) {
			vars = append(vars, p.assignable(p.suffixedExpr()))
		}
		p.expect(token.ASSIGN, "assignment")
		return &ast.Assign{Vars: vars, Exprs: p.exprList()}
	}
	switch first.(type) {
	case *ast.CallFunc, *ast.CallMethod:
		return &ast.CallStmt{Call: first}
	}
	p.abortf(first.Pos(), "cannot use this expression as a statement")
	return nil
}

func (p *Parser) assignable(x ast.Expr) ast.Var {
	if v, ok := x.(ast.Var); ok {
		return v
	}
	p.abortf(x.Pos(), "cannot assign to this expression")
	return nil
}

func (p *Parser) funcStat() ast.Stmt {
	funcTok := p.curToken
	p.advance()
	nameTok := p.expect(token.NAME, "function statement")
	module := ""
	name := nameTok
	if p.got(token.DOT) {
		name = p.expect(token.NAME, "function statement")
		module = nameTok.Literal
		if p.moduleName != "" && module != p.moduleName {
			p.errorf(nameTok.Start, "functions can only be added to the module variable '%s'", p.moduleName)
		}
	}
	params, rets, body, endOff := p.funcBody(funcTok)
	return &ast.FuncStat{
		FuncPos:  funcTok.Start,
		Module:   module,
		Name:     name.Literal,
		NamePos:  name.Start,
		Params:   params,
		RetTypes: rets,
		Body:     body,
		EndOff:   endOff,
	}
}

// funcBody parses everything after the function name: parameters, optional
// return types, the body and the closing "end". A fresh loop context starts
// here so that "break" cannot jump out of the enclosing function.
func (p *Parser) funcBody(funcTok token.Token) ([]*ast.Decl, []ast.Type, []ast.Stmt, int) {
	p.expect(token.LPAREN, "function parameters")
	var params []*ast.Decl
	if !p.curTokenIs(token.RPAREN) {
		params = append(params, p.decl("function parameters"))
		for p.got(token.COMMA) {
			params = append(params, p.decl("function parameters"))
			if len(params) == MaxArity+1 {
				p.errorf(params[MaxArity].NamePos, "too many parameters (limit is %d)", MaxArity)
			}
		}
	}
	p.expect(token.RPAREN, "function parameters")

	var rets []ast.Type
	if p.curTokenIs(token.COLON) {
		colonTok := p.curToken
		p.advance()
		p.beginRegion(colonTok.EndOff)
		rets = p.typeList()
		p.endRegion()
	}

	savedLoop := p.loopDepth
	p.loopDepth = 0
	body := p.statList()
	p.loopDepth = savedLoop

	endTok := p.closeMatch(token.END, "function body", funcTok)
	return params, rets, body, endTok.EndOff
}

// groupFunctions folds runs of adjacent function definitions into single
// Functions nodes. A bare local declaration without initializers directly
// before a run is claimed as the run's forward declarations when the run
// defines unqualified names, which is what allows mutual recursion between
// local functions.
func (p *Parser) groupFunctions(stmts []ast.Stmt) []ast.Stmt {
	var out []ast.Stmt
	for i := 0; i < len(stmts); i++ {
		fs, ok := stmts[i].(*ast.FuncStat)
		if !ok {
			out = append(out, stmts[i])
			continue
		}
		run := []*ast.FuncStat{fs}
		for i+1 < len(stmts) {
			next, ok := stmts[i+1].(*ast.FuncStat)
			if !ok {
				break
			}
			run = append(run, next)
			i++
		}
		group := &ast.Functions{Funcs: run}
		if n := len(out); n > 0 {
			if fwd, ok := out[n-1].(*ast.Local); ok && claimForward(fwd, run) {
				out = out[:n-1]
				group.LocalPos = fwd.LocalPos
				group.Declared = fwd.Decls
			}
		}
		p.checkFunctionGroup(group)
		out = append(out, group)
	}
	return out
}

// claimForward reports whether the local declaration serves as the forward
// declarations of the run. Only an initializer-free local directly before a
// run with at least one unqualified definition is claimed; a plain local
// before a run of module functions stays an ordinary declaration.
func claimForward(local *ast.Local, run []*ast.FuncStat) bool {
	if len(local.Exprs) > 0 {
		return false
	}
	for _, fn := range run {
		if fn.Module == "" {
			return true
		}
	}
	return false
}

// checkFunctionGroup enforces the pairing rules between forward
// declarations and the definitions in the run.
func (p *Parser) checkFunctionGroup(group *ast.Functions) {
	declared := make(map[string]bool)
	for _, d := range group.Declared {
		if d.Type != nil {
			p.errorf(d.NamePos, "forward declarations cannot have type annotations")
		}
		if declared[d.Name] {
			p.errorf(d.NamePos, "duplicate forward declaration of '%s'", d.Name)
			continue
		}
		declared[d.Name] = true
	}
	defined := make(map[string]int)
	for _, fn := range group.Funcs {
		if fn.Module != "" {
			continue
		}
		defined[fn.Name]++
		if !declared[fn.Name] {
			p.errorf(fn.NamePos, "function '%s' was not forward declared", fn.Name)
		} else if defined[fn.Name] > 1 {
			p.errorf(fn.NamePos, "function '%s' is defined more than once", fn.Name)
		}
	}
	reported := make(map[string]bool)
	for _, d := range group.Declared {
		if reported[d.Name] {
			continue
		}
		reported[d.Name] = true
		if defined[d.Name] == 0 {
			p.errorf(d.NamePos, "function '%s' was declared but never defined", d.Name)
		}
	}
}
