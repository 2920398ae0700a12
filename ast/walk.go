package ast

import (
	"fmt"
	"iter"
)

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
//
// Walk panics when handed a node type it does not know. Such a node cannot
// come from the parser, so the panic flags a missing case here rather than
// bad input.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, t := range n.Toplevels {
			Walk(v, t)
		}

	// Toplevel items
	case *Typealias:
		Walk(v, n.Alias)
	case *Record:
		for _, f := range n.Fields {
			Walk(v, f)
		}
	case *Stats:
		for _, s := range n.List {
			Walk(v, s)
		}

	// Statements
	case *Block:
		walkStmts(v, n.Body)
	case *While:
		Walk(v, n.Cond)
		walkStmts(v, n.Body)
	case *Repeat:
		walkStmts(v, n.Body)
		Walk(v, n.Cond)
	case *If:
		Walk(v, n.Cond)
		walkStmts(v, n.Then)
		walkStmts(v, n.Else)
	case *ForNum:
		Walk(v, n.Decl)
		Walk(v, n.Start)
		Walk(v, n.Limit)
		if n.Step != nil {
			Walk(v, n.Step)
		}
		walkStmts(v, n.Body)
	case *ForIn:
		for _, d := range n.Decls {
			Walk(v, d)
		}
		walkExprs(v, n.Exprs)
		walkStmts(v, n.Body)
	case *Local:
		for _, d := range n.Decls {
			Walk(v, d)
		}
		walkExprs(v, n.Exprs)
	case *Assign:
		for _, lhs := range n.Vars {
			Walk(v, lhs)
		}
		walkExprs(v, n.Exprs)
	case *CallStmt:
		Walk(v, n.Call)
	case *Break:
		// No children
	case *Return:
		walkExprs(v, n.Exprs)
	case *Functions:
		for _, d := range n.Declared {
			Walk(v, d)
		}
		for _, fn := range n.Funcs {
			Walk(v, fn)
		}
	case *FuncStat:
		for _, p := range n.Params {
			Walk(v, p)
		}
		for _, t := range n.RetTypes {
			Walk(v, t)
		}
		walkStmts(v, n.Body)

	// Expressions
	case *Nil, *Bool, *Int, *Float, *String, *Name:
		// No children
	case *Dot:
		Walk(v, n.X)
	case *Bracket:
		Walk(v, n.X)
		Walk(v, n.Index)
	case *Paren:
		Walk(v, n.X)
	case *Unop:
		Walk(v, n.X)
	case *Binop:
		Walk(v, n.X)
		Walk(v, n.Y)
	case *Cast:
		Walk(v, n.X)
		Walk(v, n.Type)
	case *Lambda:
		for _, p := range n.Params {
			Walk(v, p)
		}
		for _, t := range n.RetTypes {
			Walk(v, t)
		}
		walkStmts(v, n.Body)
	case *InitList:
		for _, f := range n.Fields {
			Walk(v, f)
		}
	case *FieldRec:
		Walk(v, n.Value)
	case *FieldList:
		Walk(v, n.Value)
	case *CallFunc:
		Walk(v, n.Fun)
		walkExprs(v, n.Args)
	case *CallMethod:
		Walk(v, n.X)
		walkExprs(v, n.Args)

	// Types and declarations
	case *NilType, *NameType:
		// No children
	case *ArrayType:
		Walk(v, n.Elem)
	case *TableType:
		for _, f := range n.Fields {
			Walk(v, f)
		}
	case *FuncType:
		for _, t := range n.ArgTypes {
			Walk(v, t)
		}
		for _, t := range n.RetTypes {
			Walk(v, t)
		}
	case *Decl:
		if n.Type != nil {
			Walk(v, n.Type)
		}
	case *RecordField:
		Walk(v, n.Type)

	default:
		panic(fmt.Sprintf("ast: unhandled node type %T", n))
	}
}

func walkStmts(v Visitor, stmts []Stmt) {
	for _, s := range stmts {
		Walk(v, s)
	}
}

func walkExprs(v Visitor, exprs []Expr) {
	for _, e := range exprs {
		Walk(v, e)
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		stopped := false
		Inspect(root, func(n Node) bool {
			if stopped {
				return false
			}
			if !yield(n) {
				stopped = true
				return false
			}
			return true
		})
	}
}
