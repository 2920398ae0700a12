// Package ast defines the abstract syntax tree representation of Runa code.
//
// Each syntactic family (toplevel items, statements, expressions, variables,
// types, initializer fields) is a closed interface with one struct per
// variant. Membership is enforced by unexported marker methods, so a node can
// never migrate between families, and every constructor site is arity- and
// type-checked by the compiler. Code dispatching over a family should use an
// exhaustive type switch; ast.Walk carries the canonical one and panics on an
// unknown variant, which always indicates a bug in this repository rather
// than an error in user input.
package ast

import "github.com/runa-lang/runa/token"

// Node represents a portion of the syntax tree. All nodes know where they
// begin and end in the source text.
type Node interface {
	// Pos returns the location of the first byte belonging to the node.
	Pos() token.Location

	// End returns the byte offset one past the node's last byte.
	End() int

	// String returns a human friendly rendering of the node. It resembles
	// the original source but is normalized, with operator expressions
	// fully parenthesized.
	String() string
}

// Toplevel is a module-level item: a type alias, a record declaration, or a
// run of statements.
type Toplevel interface {
	Node
	toplevelNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Var represents an assignable expression: a bare name, a dotted field
// access, or a bracketed index. Every Var is also an Expr.
type Var interface {
	Expr
	varNode()
}

// Type represents a type annotation node.
type Type interface {
	Node
	typeNode()
}

// Field represents one entry of a table initializer list.
type Field interface {
	Node
	fieldNode()
}

// Region is a half-open byte range [Start, End) of the source text.
type Region struct {
	Start int
	End   int
}

// Contains reports whether the given byte offset falls inside the region.
func (r Region) Contains(off int) bool {
	return r.Start <= off && off < r.End
}

// Program is the root node of a parsed module. TypeRegions holds the byte
// ranges of every outermost type annotation, and CommentRegions the ranges
// of every comment, both in strictly increasing, non-overlapping order.
type Program struct {
	StartLoc       token.Location
	EndLoc         token.Location // location just past the final byte
	ModuleName     string         // the declared module variable
	Toplevels      []Toplevel
	TypeRegions    []Region
	CommentRegions []Region
}

func (p *Program) Pos() token.Location { return p.StartLoc }
func (p *Program) End() int            { return p.EndLoc.Offset }

func (p *Program) String() string {
	out := "local " + p.ModuleName + " = {}"
	for _, t := range p.Toplevels {
		out += "\n" + t.String()
	}
	return out + "\nreturn " + p.ModuleName
}
