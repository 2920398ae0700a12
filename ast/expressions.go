package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/runa-lang/runa/token"
)

// Nil is the expression node for the nil literal.
type Nil struct {
	ValuePos token.Location // position of "nil"
}

func (x *Nil) exprNode() {}

func (x *Nil) Pos() token.Location { return x.ValuePos }
func (x *Nil) End() int            { return x.ValuePos.Offset + len("nil") }

func (x *Nil) String() string { return "nil" }

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	ValuePos token.Location // position of "true" or "false"
	Value    bool           // literal value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Location { return x.ValuePos }

func (x *Bool) End() int {
	if x.Value {
		return x.ValuePos.Offset + len("true")
	}
	return x.ValuePos.Offset + len("false")
}

func (x *Bool) String() string { return fmt.Sprintf("%t", x.Value) }

// Int is an expression node that holds an integer literal.
type Int struct {
	ValuePos token.Location // position of the literal
	Literal  string         // literal source text, e.g. "42" or "0x2A"
	Value    int64          // literal value
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Location { return x.ValuePos }
func (x *Int) End() int            { return x.ValuePos.Offset + len(x.Literal) }

func (x *Int) String() string { return x.Literal }

// Float is an expression node that holds a floating point literal.
type Float struct {
	ValuePos token.Location // position of the literal
	Literal  string         // literal source text, e.g. "1.5" or "3e2"
	Value    float64        // literal value
}

func (x *Float) exprNode() {}

func (x *Float) Pos() token.Location { return x.ValuePos }
func (x *Float) End() int            { return x.ValuePos.Offset + len(x.Literal) }

func (x *Float) String() string { return x.Literal }

// String is an expression node that holds a string literal. Value is the
// decoded text, with escape sequences already processed.
type String struct {
	ValuePos token.Location // position of the opening quote
	Value    string         // decoded value
	EndOff   int            // offset just past the closing quote
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Location { return x.ValuePos }
func (x *String) End() int            { return x.EndOff }

func (x *String) String() string { return fmt.Sprintf("%q", x.Value) }

// Name is an expression node that refers to a variable by name.
type Name struct {
	NamePos token.Location // position of the identifier
	Name    string         // identifier text
}

func (x *Name) exprNode() {}
func (x *Name) varNode()  {}

func (x *Name) Pos() token.Location { return x.NamePos }
func (x *Name) End() int            { return x.NamePos.Offset + len(x.Name) }

func (x *Name) String() string { return x.Name }

// Dot is an expression node for field selection, as in "point.x". It is
// assignable when the selected field is a table slot.
type Dot struct {
	X      Expr           // expression left of the dot
	Sel    string         // selected field name
	SelPos token.Location // position of the field name
}

func (x *Dot) exprNode() {}
func (x *Dot) varNode()  {}

func (x *Dot) Pos() token.Location { return x.X.Pos() }
func (x *Dot) End() int            { return x.SelPos.Offset + len(x.Sel) }

func (x *Dot) String() string { return x.X.String() + "." + x.Sel }

// Bracket is an expression node for index access, as in "items[i]".
type Bracket struct {
	X      Expr           // expression left of the brackets
	Lbrack token.Location // position of "["
	Index  Expr           // index expression
	Rbrack token.Location // position of "]"
}

func (x *Bracket) exprNode() {}
func (x *Bracket) varNode()  {}

func (x *Bracket) Pos() token.Location { return x.X.Pos() }
func (x *Bracket) End() int            { return x.Rbrack.Offset + 1 }

func (x *Bracket) String() string {
	return x.X.String() + "[" + x.Index.String() + "]"
}

// Paren is an expression node for a parenthesized expression. The grouping
// is kept in the tree because parentheses truncate multiple results in call
// position.
type Paren struct {
	Lparen token.Location // position of "("
	X      Expr           // inner expression
	Rparen token.Location // position of ")"
}

func (x *Paren) exprNode() {}

func (x *Paren) Pos() token.Location { return x.Lparen }
func (x *Paren) End() int            { return x.Rparen.Offset + 1 }

func (x *Paren) String() string { return "(" + x.X.String() + ")" }

// Unop is an operator expression where the operator precedes the operand.
// Examples include "-x", "#items", and "not done".
type Unop struct {
	OpPos token.Location // position of the operator
	Op    token.Type     // NOT, MINUS, HASH, or TILDE
	X     Expr           // operand
}

func (x *Unop) exprNode() {}

func (x *Unop) Pos() token.Location { return x.OpPos }
func (x *Unop) End() int            { return x.X.End() }

func (x *Unop) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(string(x.Op))
	if token.IsKeyword(string(x.Op)) {
		out.WriteString(" ")
	}
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Binop is an operator expression with left and right operands, such as
// "min + 1" or "a <= b".
type Binop struct {
	X     Expr           // left operand
	OpPos token.Location // position of the operator
	Op    token.Type     // operator, e.g. PLUS, CONCAT, EQ
	Y     Expr           // right operand
}

func (x *Binop) exprNode() {}

func (x *Binop) Pos() token.Location { return x.X.Pos() }
func (x *Binop) End() int            { return x.Y.End() }

func (x *Binop) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" ")
	out.WriteString(string(x.Op))
	out.WriteString(" ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// Cast is an expression node for a dynamic-to-static conversion written
// "value as type".
type Cast struct {
	X     Expr           // value being converted
	AsPos token.Location // position of "as"
	Type  Type           // target type
}

func (x *Cast) exprNode() {}

func (x *Cast) Pos() token.Location { return x.X.Pos() }
func (x *Cast) End() int            { return x.Type.End() }

func (x *Cast) String() string {
	return "(" + x.X.String() + " as " + x.Type.String() + ")"
}

// Lambda is an expression node for an anonymous function literal.
type Lambda struct {
	FuncPos  token.Location // position of "function"
	Params   []*Decl        // parameter declarations
	RetTypes []Type         // declared return types; nil when omitted
	Body     []Stmt         // function body
	EndOff   int            // offset just past the closing "end"
}

func (x *Lambda) exprNode() {}

func (x *Lambda) Pos() token.Location { return x.FuncPos }
func (x *Lambda) End() int            { return x.EndOff }

func (x *Lambda) String() string {
	var out bytes.Buffer
	out.WriteString("function(")
	out.WriteString(declListString(x.Params))
	out.WriteString(")")
	if len(x.RetTypes) > 0 {
		out.WriteString(": ")
		out.WriteString(typeListString(x.RetTypes))
	}
	for _, s := range x.Body {
		out.WriteString("\n")
		out.WriteString(s.String())
	}
	out.WriteString("\nend")
	return out.String()
}

// InitList is an expression node for a brace-enclosed initializer list, such
// as "{}" or "{x = 1.0, y = 2.0}".
type InitList struct {
	Lbrace token.Location // position of "{"
	Fields []Field        // initializer entries in source order
	Rbrace token.Location // position of "}"
}

func (x *InitList) exprNode() {}

func (x *InitList) Pos() token.Location { return x.Lbrace }
func (x *InitList) End() int            { return x.Rbrace.Offset + 1 }

func (x *InitList) String() string {
	items := make([]string, 0, len(x.Fields))
	for _, f := range x.Fields {
		items = append(items, f.String())
	}
	return "{" + strings.Join(items, ", ") + "}"
}

// FieldRec is a named initializer entry, as in "x = 1.0".
type FieldRec struct {
	NamePos token.Location // position of the field name
	Name    string         // field name
	Value   Expr           // field value
}

func (f *FieldRec) fieldNode() {}

func (f *FieldRec) Pos() token.Location { return f.NamePos }
func (f *FieldRec) End() int            { return f.Value.End() }

func (f *FieldRec) String() string { return f.Name + " = " + f.Value.String() }

// FieldList is a positional initializer entry.
type FieldList struct {
	Value Expr // entry value
}

func (f *FieldList) fieldNode() {}

func (f *FieldList) Pos() token.Location { return f.Value.Pos() }
func (f *FieldList) End() int            { return f.Value.End() }

func (f *FieldList) String() string { return f.Value.String() }

// CallFunc is an expression node for a function call. When the sole argument
// is a string or initializer literal the parentheses may be absent from the
// source, in which case Lparen and Rparen are invalid.
type CallFunc struct {
	Fun    Expr           // function expression
	Lparen token.Location // position of "(", if present
	Args   []Expr         // call arguments
	Rparen token.Location // position of ")", if present
}

func (x *CallFunc) exprNode() {}

func (x *CallFunc) Pos() token.Location { return x.Fun.Pos() }

func (x *CallFunc) End() int {
	if x.Rparen.IsValid() {
		return x.Rparen.Offset + 1
	}
	return x.Args[len(x.Args)-1].End()
}

func (x *CallFunc) String() string {
	return x.Fun.String() + "(" + exprListString(x.Args) + ")"
}

// CallMethod is an expression node for a method call written with colon
// syntax, as in "queue:push(item)". The receiver is passed implicitly.
type CallMethod struct {
	X         Expr           // receiver expression
	Method    string         // method name
	MethodPos token.Location // position of the method name
	Args      []Expr         // call arguments, excluding the receiver
	Lparen    token.Location // position of "(", if present
	Rparen    token.Location // position of ")", if present
}

func (x *CallMethod) exprNode() {}

func (x *CallMethod) Pos() token.Location { return x.X.Pos() }

func (x *CallMethod) End() int {
	if x.Rparen.IsValid() {
		return x.Rparen.Offset + 1
	}
	return x.Args[len(x.Args)-1].End()
}

func (x *CallMethod) String() string {
	return x.X.String() + ":" + x.Method + "(" + exprListString(x.Args) + ")"
}

func exprListString(exprs []Expr) string {
	items := make([]string, 0, len(exprs))
	for _, e := range exprs {
		items = append(items, e.String())
	}
	return strings.Join(items, ", ")
}
