package ast

import (
	"bytes"
	"strings"

	"github.com/runa-lang/runa/token"
)

// Block is a statement node for an explicit "do ... end" block.
type Block struct {
	DoPos  token.Location // position of "do"
	Body   []Stmt         // statements in the block
	EndOff int            // offset just past the closing "end"
}

func (s *Block) stmtNode() {}

func (s *Block) Pos() token.Location { return s.DoPos }
func (s *Block) End() int            { return s.EndOff }

func (s *Block) String() string {
	return "do" + stmtListString(s.Body) + "\nend"
}

// While is a statement node for a while loop.
type While struct {
	WhilePos token.Location // position of "while"
	Cond     Expr           // loop condition
	Body     []Stmt         // loop body
	EndOff   int            // offset just past the closing "end"
}

func (s *While) stmtNode() {}

func (s *While) Pos() token.Location { return s.WhilePos }
func (s *While) End() int            { return s.EndOff }

func (s *While) String() string {
	return "while " + s.Cond.String() + " do" + stmtListString(s.Body) + "\nend"
}

// Repeat is a statement node for a repeat-until loop. The condition is
// evaluated in the scope of the body.
type Repeat struct {
	RepeatPos token.Location // position of "repeat"
	Body      []Stmt         // loop body
	Cond      Expr           // exit condition
}

func (s *Repeat) stmtNode() {}

func (s *Repeat) Pos() token.Location { return s.RepeatPos }
func (s *Repeat) End() int            { return s.Cond.End() }

func (s *Repeat) String() string {
	return "repeat" + stmtListString(s.Body) + "\nuntil " + s.Cond.String()
}

// If is a statement node for a conditional. An "elseif" chain is represented
// by nesting: the Else list of each link holds a single If node that shares
// the outermost EndOff.
type If struct {
	IfPos  token.Location // position of "if" or "elseif"
	Cond   Expr           // branch condition
	Then   []Stmt         // taken when Cond is true
	Else   []Stmt         // taken otherwise; nil when absent
	EndOff int            // offset just past the closing "end"
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Location { return s.IfPos }
func (s *If) End() int            { return s.EndOff }

func (s *If) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(s.Cond.String())
	out.WriteString(" then")
	out.WriteString(stmtListString(s.Then))
	cur := s
	for {
		next, ok := elseifLink(cur.Else)
		if !ok {
			break
		}
		out.WriteString("\nelseif ")
		out.WriteString(next.Cond.String())
		out.WriteString(" then")
		out.WriteString(stmtListString(next.Then))
		cur = next
	}
	if len(cur.Else) > 0 {
		out.WriteString("\nelse")
		out.WriteString(stmtListString(cur.Else))
	}
	out.WriteString("\nend")
	return out.String()
}

// elseifLink reports whether an else list is the continuation of an elseif
// chain, which the parser encodes as a single nested If statement.
func elseifLink(alt []Stmt) (*If, bool) {
	if len(alt) != 1 {
		return nil, false
	}
	next, ok := alt[0].(*If)
	return next, ok
}

// ForNum is a statement node for a numeric for loop, as in
// "for i = 1, n, 2 do ... end".
type ForNum struct {
	ForPos token.Location // position of "for"
	Decl   *Decl          // loop variable declaration
	Start  Expr           // initial value
	Limit  Expr           // inclusive bound
	Step   Expr           // increment; nil when omitted
	Body   []Stmt         // loop body
	EndOff int            // offset just past the closing "end"
}

func (s *ForNum) stmtNode() {}

func (s *ForNum) Pos() token.Location { return s.ForPos }
func (s *ForNum) End() int            { return s.EndOff }

func (s *ForNum) String() string {
	var out bytes.Buffer
	out.WriteString("for ")
	out.WriteString(s.Decl.String())
	out.WriteString(" = ")
	out.WriteString(s.Start.String())
	out.WriteString(", ")
	out.WriteString(s.Limit.String())
	if s.Step != nil {
		out.WriteString(", ")
		out.WriteString(s.Step.String())
	}
	out.WriteString(" do")
	out.WriteString(stmtListString(s.Body))
	out.WriteString("\nend")
	return out.String()
}

// ForIn is a statement node for a generic for loop over an iterator, as in
// "for k, v in pairs(t) do ... end".
type ForIn struct {
	ForPos token.Location // position of "for"
	Decls  []*Decl        // loop variable declarations
	Exprs  []Expr         // iterator expressions
	Body   []Stmt         // loop body
	EndOff int            // offset just past the closing "end"
}

func (s *ForIn) stmtNode() {}

func (s *ForIn) Pos() token.Location { return s.ForPos }
func (s *ForIn) End() int            { return s.EndOff }

func (s *ForIn) String() string {
	var out bytes.Buffer
	out.WriteString("for ")
	out.WriteString(declListString(s.Decls))
	out.WriteString(" in ")
	out.WriteString(exprListString(s.Exprs))
	out.WriteString(" do")
	out.WriteString(stmtListString(s.Body))
	out.WriteString("\nend")
	return out.String()
}

// Local is a statement node that declares local variables, with optional
// initializers, as in "local x: int = 0". With no initializers it forward
// declares the names for a following group of function definitions.
type Local struct {
	LocalPos token.Location // position of "local"
	Decls    []*Decl        // declared names
	Exprs    []Expr         // initializers; may be empty
}

func (s *Local) stmtNode() {}

func (s *Local) Pos() token.Location { return s.LocalPos }

func (s *Local) End() int {
	if len(s.Exprs) > 0 {
		return s.Exprs[len(s.Exprs)-1].End()
	}
	return s.Decls[len(s.Decls)-1].End()
}

func (s *Local) String() string {
	out := "local " + declListString(s.Decls)
	if len(s.Exprs) > 0 {
		out += " = " + exprListString(s.Exprs)
	}
	return out
}

// Assign is a statement node that assigns values to existing variables, as
// in "x, y = y, x".
type Assign struct {
	Vars  []Var  // assignment targets
	Exprs []Expr // assigned values
}

func (s *Assign) stmtNode() {}

func (s *Assign) Pos() token.Location { return s.Vars[0].Pos() }
func (s *Assign) End() int            { return s.Exprs[len(s.Exprs)-1].End() }

func (s *Assign) String() string {
	items := make([]string, 0, len(s.Vars))
	for _, v := range s.Vars {
		items = append(items, v.String())
	}
	return strings.Join(items, ", ") + " = " + exprListString(s.Exprs)
}

// CallStmt is a statement node for a function or method call in statement
// position, where its results are discarded.
type CallStmt struct {
	Call Expr // a *CallFunc or *CallMethod
}

func (s *CallStmt) stmtNode() {}

func (s *CallStmt) Pos() token.Location { return s.Call.Pos() }
func (s *CallStmt) End() int            { return s.Call.End() }

func (s *CallStmt) String() string { return s.Call.String() }

// Break is a statement node for a break statement.
type Break struct {
	BreakPos token.Location // position of "break"
}

func (s *Break) stmtNode() {}

func (s *Break) Pos() token.Location { return s.BreakPos }
func (s *Break) End() int            { return s.BreakPos.Offset + len("break") }

func (s *Break) String() string { return "break" }

// Return is a statement node for a return statement.
type Return struct {
	ReturnPos token.Location // position of "return"
	Exprs     []Expr         // returned values; may be empty
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Location { return s.ReturnPos }

func (s *Return) End() int {
	if len(s.Exprs) > 0 {
		return s.Exprs[len(s.Exprs)-1].End()
	}
	return s.ReturnPos.Offset + len("return")
}

func (s *Return) String() string {
	if len(s.Exprs) == 0 {
		return "return"
	}
	return "return " + exprListString(s.Exprs)
}

// Functions is a statement node holding one group of adjacent function
// definitions that may reference each other, optionally preceded by the
// forward declaration of their names. Grouping replaces every FuncStat in a
// statement list, so a finished tree contains function definitions only
// inside Functions nodes.
type Functions struct {
	LocalPos token.Location // position of "local"; invalid when Declared is nil
	Declared []*Decl        // forward declared names; nil when absent
	Funcs    []*FuncStat    // the adjacent definitions
}

func (s *Functions) stmtNode() {}

func (s *Functions) Pos() token.Location {
	if s.LocalPos.IsValid() {
		return s.LocalPos
	}
	return s.Funcs[0].Pos()
}

func (s *Functions) End() int { return s.Funcs[len(s.Funcs)-1].End() }

func (s *Functions) String() string {
	var out bytes.Buffer
	if s.Declared != nil {
		out.WriteString("local ")
		out.WriteString(declListString(s.Declared))
	}
	for i, fn := range s.Funcs {
		if i > 0 || s.Declared != nil {
			out.WriteString("\n")
		}
		out.WriteString(fn.String())
	}
	return out.String()
}

// FuncStat is a single function definition, either of a forward-declared
// local name ("function tick() ... end") or of a module field
// ("function m.tick() ... end"). It only appears in a statement list while
// the parser is collecting statements; grouping folds every run of adjacent
// definitions into one Functions node.
type FuncStat struct {
	FuncPos  token.Location // position of "function"
	Module   string         // module variable for qualified names; "" otherwise
	Name     string         // function name
	NamePos  token.Location // position of the name
	Params   []*Decl        // parameter declarations
	RetTypes []Type         // declared return types; nil when omitted
	Body     []Stmt         // function body
	EndOff   int            // offset just past the closing "end"
}

func (s *FuncStat) stmtNode() {}

func (s *FuncStat) Pos() token.Location { return s.FuncPos }
func (s *FuncStat) End() int            { return s.EndOff }

func (s *FuncStat) String() string {
	var out bytes.Buffer
	out.WriteString("function ")
	if s.Module != "" {
		out.WriteString(s.Module)
		out.WriteString(".")
	}
	out.WriteString(s.Name)
	out.WriteString("(")
	out.WriteString(declListString(s.Params))
	out.WriteString(")")
	if len(s.RetTypes) > 0 {
		out.WriteString(": ")
		out.WriteString(typeListString(s.RetTypes))
	}
	out.WriteString(stmtListString(s.Body))
	out.WriteString("\nend")
	return out.String()
}

func stmtListString(stmts []Stmt) string {
	var out bytes.Buffer
	for _, s := range stmts {
		out.WriteString("\n")
		out.WriteString(s.String())
	}
	return out.String()
}
