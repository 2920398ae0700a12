package ast

import (
	"bytes"

	"github.com/runa-lang/runa/token"
)

// Typealias is a toplevel node that binds a name to a type, as in
// "typealias point = {x: float, y: float}".
type Typealias struct {
	TypealiasPos token.Location // position of "typealias"
	Name         string         // alias name
	NamePos      token.Location // position of the alias name
	Alias        Type           // aliased type
}

func (t *Typealias) toplevelNode() {}

func (t *Typealias) Pos() token.Location { return t.TypealiasPos }
func (t *Typealias) End() int            { return t.Alias.End() }

func (t *Typealias) String() string {
	return "typealias " + t.Name + " = " + t.Alias.String()
}

// Record is a toplevel node that declares a nominal record type with a fixed
// set of typed fields.
type Record struct {
	RecordPos token.Location // position of "record"
	Name      string         // record name
	NamePos   token.Location // position of the record name
	Fields    []*RecordField // field declarations in source order
	EndOff    int            // offset just past the closing "end"
}

func (t *Record) toplevelNode() {}

func (t *Record) Pos() token.Location { return t.RecordPos }
func (t *Record) End() int            { return t.EndOff }

func (t *Record) String() string {
	var out bytes.Buffer
	out.WriteString("record ")
	out.WriteString(t.Name)
	for _, f := range t.Fields {
		out.WriteString("\n")
		out.WriteString(f.String())
	}
	out.WriteString("\nend")
	return out.String()
}

// Stats is a toplevel node holding a maximal run of statements between other
// toplevel items. The list is never empty.
type Stats struct {
	List []Stmt
}

func (t *Stats) toplevelNode() {}

func (t *Stats) Pos() token.Location { return t.List[0].Pos() }
func (t *Stats) End() int            { return t.List[len(t.List)-1].End() }

func (t *Stats) String() string {
	var out bytes.Buffer
	for i, s := range t.List {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(s.String())
	}
	return out.String()
}
