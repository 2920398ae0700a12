package ast

import (
	"strings"

	"github.com/runa-lang/runa/token"
)

// NilType is the type node for the nil type.
type NilType struct {
	NilPos token.Location // position of "nil"
}

func (t *NilType) typeNode() {}

func (t *NilType) Pos() token.Location { return t.NilPos }
func (t *NilType) End() int            { return t.NilPos.Offset + len("nil") }

func (t *NilType) String() string { return "nil" }

// NameType is a type node that refers to a type by name, either one of the
// primitive types or a declared record or alias.
type NameType struct {
	NamePos token.Location // position of the name
	Name    string         // type name
}

func (t *NameType) typeNode() {}

func (t *NameType) Pos() token.Location { return t.NamePos }
func (t *NameType) End() int            { return t.NamePos.Offset + len(t.Name) }

func (t *NameType) String() string { return t.Name }

// ArrayType is a type node for a homogeneous array type, written "{elem}".
type ArrayType struct {
	Lbrace token.Location // position of "{"
	Elem   Type           // element type
	Rbrace token.Location // position of "}"
}

func (t *ArrayType) typeNode() {}

func (t *ArrayType) Pos() token.Location { return t.Lbrace }
func (t *ArrayType) End() int            { return t.Rbrace.Offset + 1 }

func (t *ArrayType) String() string { return "{" + t.Elem.String() + "}" }

// TableType is a type node for a structural table type with named fields,
// written "{x: float, y: float}".
type TableType struct {
	Lbrace token.Location // position of "{"
	Fields []*RecordField // field types in source order
	Rbrace token.Location // position of "}"
}

func (t *TableType) typeNode() {}

func (t *TableType) Pos() token.Location { return t.Lbrace }
func (t *TableType) End() int            { return t.Rbrace.Offset + 1 }

func (t *TableType) String() string {
	items := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		items = append(items, f.String())
	}
	return "{" + strings.Join(items, ", ") + "}"
}

// FuncType is a type node for a function type, written "(int, int) -> int".
// A single unparenthesized argument type is allowed, as in "int -> int".
type FuncType struct {
	StartLoc token.Location // position of "(" or of the sole argument type
	ArgTypes []Type         // argument types
	RetTypes []Type         // result types
	EndOff   int            // offset just past the last result type
}

func (t *FuncType) typeNode() {}

func (t *FuncType) Pos() token.Location { return t.StartLoc }
func (t *FuncType) End() int            { return t.EndOff }

func (t *FuncType) String() string {
	out := "(" + typeListString(t.ArgTypes) + ") -> "
	if len(t.RetTypes) == 1 {
		return out + t.RetTypes[0].String()
	}
	return out + "(" + typeListString(t.RetTypes) + ")"
}

// Decl is a declared name with an optional type annotation. It appears in
// local statements, parameter lists, and loop headers.
type Decl struct {
	NamePos token.Location // position of the name
	Name    string         // declared name
	Type    Type           // annotation; nil when omitted
}

func (d *Decl) Pos() token.Location { return d.NamePos }

func (d *Decl) End() int {
	if d.Type != nil {
		return d.Type.End()
	}
	return d.NamePos.Offset + len(d.Name)
}

func (d *Decl) String() string {
	if d.Type != nil {
		return d.Name + ": " + d.Type.String()
	}
	return d.Name
}

// RecordField is one typed field of a record declaration or table type.
// Unlike Decl the annotation is mandatory.
type RecordField struct {
	NamePos token.Location // position of the field name
	Name    string         // field name
	Type    Type           // field type
}

func (f *RecordField) Pos() token.Location { return f.NamePos }
func (f *RecordField) End() int            { return f.Type.End() }

func (f *RecordField) String() string { return f.Name + ": " + f.Type.String() }

func declListString(decls []*Decl) string {
	items := make([]string, 0, len(decls))
	for _, d := range decls {
		items = append(items, d.String())
	}
	return strings.Join(items, ", ")
}

func typeListString(types []Type) string {
	items := make([]string, 0, len(types))
	for _, t := range types {
		items = append(items, t.String())
	}
	return strings.Join(items, ", ")
}
