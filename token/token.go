// Package token defines the lexical tokens of the Runa language and the
// source locations attached to them.
package token

import "fmt"

// Type describes the type of a token as a string.
type Type string

// Location points to a particular byte in a source file. Line and Column are
// 1-based; Offset is the 0-based byte offset from the start of the file.
// Within one file, two Locations are ordered by Offset.
type Location struct {
	File   string
	Line   int
	Column int
	Offset int
}

// String renders the location as "file:line:column".
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid reports whether the location refers to a real source position.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// Token represents one token read from the input source code. Literal holds
// the decoded value for STRING tokens and the raw source text otherwise.
// EndOff is the byte offset one past the last byte of the token, so the
// token's source text is input[Start.Offset:EndOff]. Tokens are immutable
// once produced.
type Token struct {
	Type    Type
	Literal string
	Start   Location
	EndOff  int
}

// Token types
const (
	// Special
	EOF     = "EOF"
	ILLEGAL = "ILLEGAL"
	COMMENT = "COMMENT"

	// Literals and names
	NAME   = "NAME"
	INT    = "INT"
	FLOAT  = "FLOAT"
	STRING = "STRING"

	// Operators and punctuation
	PLUS     = "+"
	MINUS    = "-"
	STAR     = "*"
	SLASH    = "/"
	DSLASH   = "//"
	PERCENT  = "%"
	CARET    = "^"
	HASH     = "#"
	AMP      = "&"
	TILDE    = "~"
	PIPE     = "|"
	LSHIFT   = "<<"
	RSHIFT   = ">>"
	EQ       = "=="
	NE       = "~="
	LE       = "<="
	GE       = ">="
	LT       = "<"
	GT       = ">"
	ASSIGN   = "="
	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"
	SEMI     = ";"
	COLON    = ":"
	COMMA    = ","
	DOT      = "."
	CONCAT   = ".."
	ELLIPSIS = "..."
	ARROW    = "->"

	// Keywords
	AND       = "and"
	AS        = "as"
	BREAK     = "break"
	DO        = "do"
	ELSE      = "else"
	ELSEIF    = "elseif"
	END       = "end"
	FALSE     = "false"
	FOR       = "for"
	FUNCTION  = "function"
	IF        = "if"
	IN        = "in"
	LOCAL     = "local"
	NIL       = "nil"
	NOT       = "not"
	OR        = "or"
	RECORD    = "record"
	REPEAT    = "repeat"
	RETURN    = "return"
	THEN      = "then"
	TRUE      = "true"
	TYPEALIAS = "typealias"
	UNTIL     = "until"
	WHILE     = "while"
)

// Reserved keywords
var keywords = map[string]Type{
	"and":       AND,
	"as":        AS,
	"break":     BREAK,
	"do":        DO,
	"else":      ELSE,
	"elseif":    ELSEIF,
	"end":       END,
	"false":     FALSE,
	"for":       FOR,
	"function":  FUNCTION,
	"if":        IF,
	"in":        IN,
	"local":     LOCAL,
	"nil":       NIL,
	"not":       NOT,
	"or":        OR,
	"record":    RECORD,
	"repeat":    REPEAT,
	"return":    RETURN,
	"then":      THEN,
	"true":      TRUE,
	"typealias": TYPEALIAS,
	"until":     UNTIL,
	"while":     WHILE,
}

// LookupName returns the keyword type for the given identifier text, or NAME
// if the text is not a reserved word.
func LookupName(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return NAME
}

// IsKeyword reports whether the given text is a reserved word.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}
