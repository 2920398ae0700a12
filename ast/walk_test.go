package ast

import (
	"testing"

	"github.com/runa-lang/runa/token"
)

// buildAssign models: x = y + 1
func buildAssign() *Program {
	return &Program{
		ModuleName: "m",
		Toplevels: []Toplevel{
			&Stats{
				List: []Stmt{
					&Assign{
						Vars: []Var{&Name{Name: "x"}},
						Exprs: []Expr{
							&Binop{
								X:  &Name{Name: "y"},
								Op: token.PLUS,
								Y:  &Int{Literal: "1", Value: 1},
							},
						},
					},
				},
			},
		},
	}
}

func TestWalk(t *testing.T) {
	var visited []string
	Inspect(buildAssign(), func(n Node) bool {
		switch node := n.(type) {
		case *Program:
			visited = append(visited, "Program")
		case *Stats:
			visited = append(visited, "Stats")
		case *Assign:
			visited = append(visited, "Assign")
		case *Name:
			visited = append(visited, "Name:"+node.Name)
		case *Binop:
			visited = append(visited, "Binop:"+string(node.Op))
		case *Int:
			visited = append(visited, "Int")
		}
		return true
	})

	expected := []string{"Program", "Stats", "Assign", "Name:x", "Binop:+", "Name:y", "Int"}
	if len(visited) != len(expected) {
		t.Errorf("expected %d nodes, got %d: %v", len(expected), len(visited), visited)
		return
	}
	for i, v := range expected {
		if visited[i] != v {
			t.Errorf("expected %q at index %d, got %q", v, i, visited[i])
		}
	}
}

func TestWalkRecord(t *testing.T) {
	program := &Program{
		ModuleName: "m",
		Toplevels: []Toplevel{
			&Record{
				Name: "Point",
				Fields: []*RecordField{
					{Name: "x", Type: &NameType{Name: "float"}},
					{Name: "y", Type: &NameType{Name: "float"}},
				},
			},
		},
	}

	var count int
	Inspect(program, func(n Node) bool {
		count++
		return true
	})

	// Program, Record, RecordField, NameType, RecordField, NameType
	if count != 6 {
		t.Errorf("expected 6 nodes, got %d", count)
	}
}

func TestWalkFunctions(t *testing.T) {
	// Model: local f  function f(n: int): int return n end
	program := &Program{
		ModuleName: "m",
		Toplevels: []Toplevel{
			&Stats{
				List: []Stmt{
					&Functions{
						LocalPos: token.Location{Line: 1, Column: 1},
						Declared: []*Decl{{Name: "f"}},
						Funcs: []*FuncStat{
							{
								Name:     "f",
								Params:   []*Decl{{Name: "n", Type: &NameType{Name: "int"}}},
								RetTypes: []Type{&NameType{Name: "int"}},
								Body: []Stmt{
									&Return{Exprs: []Expr{&Name{Name: "n"}}},
								},
							},
						},
					},
				},
			},
		},
	}

	var nodes []string
	Inspect(program, func(n Node) bool {
		switch n.(type) {
		case *Functions:
			nodes = append(nodes, "Functions")
		case *FuncStat:
			nodes = append(nodes, "FuncStat")
		case *Decl:
			nodes = append(nodes, "Decl")
		case *NameType:
			nodes = append(nodes, "NameType")
		case *Return:
			nodes = append(nodes, "Return")
		case *Name:
			nodes = append(nodes, "Name")
		}
		return true
	})

	// Declared name, then the definition: its param, param type, return
	// type, then the body.
	expected := []string{"Functions", "Decl", "FuncStat", "Decl", "NameType", "NameType", "Return", "Name"}
	if len(nodes) != len(expected) {
		t.Errorf("expected %d nodes, got %d: %v", len(expected), len(nodes), nodes)
		return
	}
	for i, v := range expected {
		if nodes[i] != v {
			t.Errorf("expected %q at index %d, got %q", v, i, nodes[i])
		}
	}
}

func TestWalkIfChain(t *testing.T) {
	// Model: if a then break elseif b then break else break end
	program := &Program{
		ModuleName: "m",
		Toplevels: []Toplevel{
			&Stats{
				List: []Stmt{
					&If{
						Cond: &Name{Name: "a"},
						Then: []Stmt{&Break{}},
						Else: []Stmt{
							&If{
								Cond: &Name{Name: "b"},
								Then: []Stmt{&Break{}},
								Else: []Stmt{&Break{}},
							},
						},
					},
				},
			},
		},
	}

	var count int
	Inspect(program, func(n Node) bool {
		count++
		return true
	})

	// Program, Stats, If, Name, Break, If, Name, Break, Break
	if count != 9 {
		t.Errorf("expected 9 nodes, got %d", count)
	}
}

func TestInspectStopEarly(t *testing.T) {
	program := buildAssign()

	var visited []string
	Inspect(program, func(n Node) bool {
		switch n.(type) {
		case *Program:
			visited = append(visited, "Program")
			return true
		case *Stats:
			visited = append(visited, "Stats")
			return false // do not descend into the statement run
		}
		return true
	})

	expected := []string{"Program", "Stats"}
	if len(visited) != len(expected) {
		t.Errorf("expected %d nodes, got %d: %v", len(expected), len(visited), visited)
	}
}

func TestPreorder(t *testing.T) {
	var visited []string
	for n := range Preorder(buildAssign()) {
		switch node := n.(type) {
		case *Program:
			visited = append(visited, "Program")
		case *Stats:
			visited = append(visited, "Stats")
		case *Assign:
			visited = append(visited, "Assign")
		case *Name:
			visited = append(visited, "Name:"+node.Name)
		case *Binop:
			visited = append(visited, "Binop:"+string(node.Op))
		case *Int:
			visited = append(visited, "Int")
		}
	}

	expected := []string{"Program", "Stats", "Assign", "Name:x", "Binop:+", "Name:y", "Int"}
	if len(visited) != len(expected) {
		t.Errorf("expected %d nodes, got %d: %v", len(expected), len(visited), visited)
		return
	}
	for i, v := range expected {
		if visited[i] != v {
			t.Errorf("expected %q at index %d, got %q", v, i, visited[i])
		}
	}
}

func TestPreorderBreak(t *testing.T) {
	var count int
	for range Preorder(buildAssign()) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("expected to stop after 3 nodes, got %d", count)
	}
}

func TestWalkForNumNilStep(t *testing.T) {
	// Walk should handle a numeric for loop with no step expression.
	loop := &ForNum{
		Decl:  &Decl{Name: "i"},
		Start: &Int{Literal: "1", Value: 1},
		Limit: &Name{Name: "n"},
		Body:  []Stmt{&Break{}},
	}

	var count int
	Inspect(loop, func(n Node) bool {
		count++
		return true
	})

	// ForNum, Decl, Int, Name, Break
	if count != 5 {
		t.Errorf("expected 5 nodes, got %d", count)
	}
}

func TestWalkUnknownNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown node type")
		}
	}()
	Walk(inspector(func(Node) bool { return true }), unknownNode{})
}

type unknownNode struct{}

func (unknownNode) Pos() token.Location { return token.Location{} }
func (unknownNode) End() int            { return 0 }
func (unknownNode) String() string      { return "?" }
