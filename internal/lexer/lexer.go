// Package lexer turns Runa source text into tokens.
//
// The lexer deals only in byte offsets and asks the owning source.File for
// line/column locations, so every consumer resolves positions through the
// same newline index. Comments are ordinary tokens here; the parser decides
// what to do with them.
package lexer

import (
	"strings"

	"github.com/runa-lang/runa/diag"
	"github.com/runa-lang/runa/source"
	"github.com/runa-lang/runa/token"
)

// Lexer scans one source file. Create one with New and call Next until it
// returns an EOF token. After an error, Next must not be called again.
type Lexer struct {
	file  *source.File
	input string
	pos   int
}

// New creates a Lexer reading the given file.
func New(file *source.File) *Lexer {
	return &Lexer{file: file, input: file.Text()}
}

// Next returns the next token, or a *diag.Error describing a lexical
// problem. At end of input it returns an EOF token every time.
func (l *Lexer) Next() (token.Token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.input) {
		return l.token(token.EOF, "", start), nil
	}

	c := l.input[l.pos]
	switch {
	case isNameStart(c):
		return l.name(), nil
	case isDigit(c):
		return l.number()
	}

	switch c {
	case '"', '\'':
		return l.shortString()
	case '-':
		if l.peekAt(l.pos+1) == '-' {
			return l.comment()
		}
		if l.peekAt(l.pos+1) == '>' {
			l.pos += 2
			return l.token(token.ARROW, "->", start), nil
		}
		l.pos++
		return l.token(token.MINUS, "-", start), nil
	case '[':
		if next := l.peekAt(l.pos + 1); next == '[' || next == '=' {
			return l.longString(start)
		}
		l.pos++
		return l.token(token.LBRACKET, "[", start), nil
	case '.':
		if isDigit(l.peekAt(l.pos + 1)) {
			return l.number()
		}
		if l.peekAt(l.pos+1) == '.' {
			if l.peekAt(l.pos+2) == '.' {
				l.pos += 3
				return l.token(token.ELLIPSIS, "...", start), nil
			}
			l.pos += 2
			return l.token(token.CONCAT, "..", start), nil
		}
		l.pos++
		return l.token(token.DOT, ".", start), nil
	case '=':
		if l.peekAt(l.pos+1) == '=' {
			l.pos += 2
			return l.token(token.EQ, "==", start), nil
		}
		l.pos++
		return l.token(token.ASSIGN, "=", start), nil
	case '~':
		if l.peekAt(l.pos+1) == '=' {
			l.pos += 2
			return l.token(token.NE, "~=", start), nil
		}
		l.pos++
		return l.token(token.TILDE, "~", start), nil
	case '<':
		switch l.peekAt(l.pos + 1) {
		case '<':
			l.pos += 2
			return l.token(token.LSHIFT, "<<", start), nil
		case '=':
			l.pos += 2
			return l.token(token.LE, "<=", start), nil
		}
		l.pos++
		return l.token(token.LT, "<", start), nil
	case '>':
		switch l.peekAt(l.pos + 1) {
		case '>':
			l.pos += 2
			return l.token(token.RSHIFT, ">>", start), nil
		case '=':
			l.pos += 2
			return l.token(token.GE, ">=", start), nil
		}
		l.pos++
		return l.token(token.GT, ">", start), nil
	case '/':
		if l.peekAt(l.pos+1) == '/' {
			l.pos += 2
			return l.token(token.DSLASH, "//", start), nil
		}
		l.pos++
		return l.token(token.SLASH, "/", start), nil
	case '+':
		l.pos++
		return l.token(token.PLUS, "+", start), nil
	case '*':
		l.pos++
		return l.token(token.STAR, "*", start), nil
	case '%':
		l.pos++
		return l.token(token.PERCENT, "%", start), nil
	case '^':
		l.pos++
		return l.token(token.CARET, "^", start), nil
	case '#':
		l.pos++
		return l.token(token.HASH, "#", start), nil
	case '&':
		l.pos++
		return l.token(token.AMP, "&", start), nil
	case '|':
		l.pos++
		return l.token(token.PIPE, "|", start), nil
	case '(':
		l.pos++
		return l.token(token.LPAREN, "(", start), nil
	case ')':
		l.pos++
		return l.token(token.RPAREN, ")", start), nil
	case '{':
		l.pos++
		return l.token(token.LBRACE, "{", start), nil
	case '}':
		l.pos++
		return l.token(token.RBRACE, "}", start), nil
	case ']':
		l.pos++
		return l.token(token.RBRACKET, "]", start), nil
	case ';':
		l.pos++
		return l.token(token.SEMI, ";", start), nil
	case ':':
		l.pos++
		return l.token(token.COLON, ":", start), nil
	case ',':
		l.pos++
		return l.token(token.COMMA, ",", start), nil
	}
	return token.Token{}, l.errorf(start, "unexpected symbol near '%c'", c)
}

func (l *Lexer) token(typ token.Type, literal string, start int) token.Token {
	return token.Token{
		Type:    typ,
		Literal: literal,
		Start:   l.file.Position(start),
		EndOff:  l.pos,
	}
}

func (l *Lexer) errorf(offset int, format string, args ...any) error {
	return diag.Errorf(l.file.Position(offset), format, args...)
}

// peekAt returns the byte at the given offset, or 0 past end of input.
func (l *Lexer) peekAt(offset int) byte {
	if offset >= len(l.input) {
		return 0
	}
	return l.input[offset]
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			l.pos++
		default:
			return
		}
	}
}

func (l *Lexer) name() token.Token {
	start := l.pos
	for l.pos < len(l.input) && isNameChar(l.input[l.pos]) {
		l.pos++
	}
	text := l.input[start:l.pos]
	return l.token(token.LookupName(text), text, start)
}

func (l *Lexer) number() (token.Token, error) {
	start := l.pos
	isFloat := false

	if l.input[l.pos] == '0' && (l.peekAt(l.pos+1) == 'x' || l.peekAt(l.pos+1) == 'X') {
		l.pos += 2
		digits := l.takeWhile(isHexDigit)
		if l.peekAt(l.pos) == '.' {
			isFloat = true
			l.pos++
			digits += l.takeWhile(isHexDigit)
		}
		if digits == 0 {
			return token.Token{}, l.errorf(start, "malformed number near '%s'", l.input[start:l.pos])
		}
		if c := l.peekAt(l.pos); c == 'p' || c == 'P' {
			isFloat = true
			l.pos++
			if c := l.peekAt(l.pos); c == '+' || c == '-' {
				l.pos++
			}
			if l.takeWhile(isDigit) == 0 {
				return token.Token{}, l.errorf(start, "malformed number near '%s'", l.input[start:l.pos])
			}
		}
	} else {
		l.takeWhile(isDigit)
		if l.peekAt(l.pos) == '.' && l.peekAt(l.pos+1) != '.' {
			isFloat = true
			l.pos++
			l.takeWhile(isDigit)
		}
		if c := l.peekAt(l.pos); c == 'e' || c == 'E' {
			isFloat = true
			l.pos++
			if c := l.peekAt(l.pos); c == '+' || c == '-' {
				l.pos++
			}
			if l.takeWhile(isDigit) == 0 {
				return token.Token{}, l.errorf(start, "malformed number near '%s'", l.input[start:l.pos])
			}
		}
	}

	// A trailing name character means the number never ended, as in "3a".
	if l.pos < len(l.input) && isNameChar(l.input[l.pos]) {
		l.takeWhile(isNameChar)
		return token.Token{}, l.errorf(start, "malformed number near '%s'", l.input[start:l.pos])
	}

	typ := token.Type(token.INT)
	if isFloat {
		typ = token.FLOAT
	}
	return l.token(typ, l.input[start:l.pos], start), nil
}

// takeWhile advances over bytes matching pred and reports how many.
func (l *Lexer) takeWhile(pred func(byte) bool) int {
	n := 0
	for l.pos < len(l.input) && pred(l.input[l.pos]) {
		l.pos++
		n++
	}
	return n
}

func (l *Lexer) comment() (token.Token, error) {
	start := l.pos
	l.pos += 2 // the "--"
	if l.longBracketAhead() {
		if _, err := l.longBracket(start, "comment"); err != nil {
			return token.Token{}, err
		}
		return l.token(token.COMMENT, l.input[start:l.pos], start), nil
	}
	// Anything else after "--", a stray "[=" included, is a line comment.
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
	return l.token(token.COMMENT, l.input[start:l.pos], start), nil
}

// longBracketAhead reports whether a well formed long-bracket opener, "[["
// or "[==...[", starts at the current position.
func (l *Lexer) longBracketAhead() bool {
	if l.peekAt(l.pos) != '[' {
		return false
	}
	i := l.pos + 1
	for l.peekAt(i) == '=' {
		i++
	}
	return l.peekAt(i) == '['
}

func (l *Lexer) longString(start int) (token.Token, error) {
	value, err := l.longBracket(start, "string")
	if err != nil {
		return token.Token{}, err
	}
	return l.token(token.STRING, value, start), nil
}

// longBracket reads a long-bracket body "[==[ ... ]==]" starting at the
// opening '[' and returns the enclosed text. A newline directly after the
// opening bracket is not part of the value. what is "string" or "comment",
// for error messages.
func (l *Lexer) longBracket(errAt int, what string) (string, error) {
	l.pos++ // the '['
	level := l.takeWhile(func(c byte) bool { return c == '=' })
	if l.peekAt(l.pos) != '[' {
		return "", l.errorf(errAt, "invalid long %s delimiter near '%s'", what, l.input[errAt:l.pos])
	}
	l.pos++

	if l.peekAt(l.pos) == '\r' {
		l.pos++
		if l.peekAt(l.pos) == '\n' {
			l.pos++
		}
	} else if l.peekAt(l.pos) == '\n' {
		l.pos++
	}

	closing := "]" + strings.Repeat("=", level) + "]"
	end := strings.Index(l.input[l.pos:], closing)
	if end < 0 {
		l.pos = len(l.input)
		return "", l.errorf(errAt, "unfinished long %s", what)
	}
	value := l.input[l.pos : l.pos+end]
	l.pos += end + len(closing)
	return value, nil
}

func (l *Lexer) shortString() (token.Token, error) {
	start := l.pos
	quote := l.input[l.pos]
	l.pos++
	var out []byte
	for {
		if l.pos >= len(l.input) {
			return token.Token{}, l.errorf(start, "unfinished string")
		}
		c := l.input[l.pos]
		switch c {
		case quote:
			l.pos++
			return l.token(token.STRING, string(out), start), nil
		case '\n', '\r':
			return token.Token{}, l.errorf(start, "unfinished string")
		case '\\':
			decoded, err := l.escape()
			if err != nil {
				return token.Token{}, err
			}
			out = append(out, decoded...)
		default:
			out = append(out, c)
			l.pos++
		}
	}
}

// escape decodes one backslash escape, with l.pos on the backslash.
func (l *Lexer) escape() ([]byte, error) {
	escStart := l.pos
	l.pos++
	if l.pos >= len(l.input) {
		return nil, l.errorf(escStart, "unfinished string")
	}
	c := l.input[l.pos]
	l.pos++
	switch c {
	case 'a':
		return []byte{'\a'}, nil
	case 'b':
		return []byte{'\b'}, nil
	case 'f':
		return []byte{'\f'}, nil
	case 'n':
		return []byte{'\n'}, nil
	case 'r':
		return []byte{'\r'}, nil
	case 't':
		return []byte{'\t'}, nil
	case 'v':
		return []byte{'\v'}, nil
	case '\\', '"', '\'':
		return []byte{c}, nil
	case '\n', '\r':
		// A backslash before a real line break continues the string and
		// contributes a newline.
		if next := l.peekAt(l.pos); (next == '\n' || next == '\r') && next != c {
			l.pos++
		}
		return []byte{'\n'}, nil
	case 'x':
		hi := l.peekAt(l.pos)
		lo := l.peekAt(l.pos + 1)
		if !isHexDigit(hi) || !isHexDigit(lo) {
			return nil, l.errorf(escStart, "hexadecimal digit expected")
		}
		l.pos += 2
		return []byte{hexValue(hi)<<4 | hexValue(lo)}, nil
	case 'z':
		for l.pos < len(l.input) {
			switch l.input[l.pos] {
			case ' ', '\t', '\r', '\n', '\v', '\f':
				l.pos++
				continue
			}
			break
		}
		return nil, nil
	case 'u':
		return l.unicodeEscape(escStart)
	}
	if isDigit(c) {
		value := int(c - '0')
		for n := 0; n < 2 && isDigit(l.peekAt(l.pos)); n++ {
			value = value*10 + int(l.input[l.pos]-'0')
			l.pos++
		}
		if value > 255 {
			return nil, l.errorf(escStart, "decimal escape too large")
		}
		return []byte{byte(value)}, nil
	}
	return nil, l.errorf(escStart, "invalid escape sequence '\\%c'", c)
}

func (l *Lexer) unicodeEscape(escStart int) ([]byte, error) {
	if l.peekAt(l.pos) != '{' {
		return nil, l.errorf(escStart, "missing '{' in \\u{xxxx}")
	}
	l.pos++
	if !isHexDigit(l.peekAt(l.pos)) {
		return nil, l.errorf(escStart, "hexadecimal digit expected")
	}
	var value uint32
	for isHexDigit(l.peekAt(l.pos)) {
		if value > 0x7FFFFFFF>>4 {
			return nil, l.errorf(escStart, "UTF-8 value too large")
		}
		value = value<<4 | uint32(hexValue(l.input[l.pos]))
		l.pos++
	}
	if l.peekAt(l.pos) != '}' {
		return nil, l.errorf(escStart, "missing '}' in \\u{xxxx}")
	}
	l.pos++
	return appendUTF8(nil, value), nil
}

// appendUTF8 encodes a code point of up to 31 bits, using the extended
// encoding with up to six bytes for values beyond the Unicode range.
func appendUTF8(buf []byte, x uint32) []byte {
	if x < 0x80 {
		return append(buf, byte(x))
	}
	var tail [6]byte
	n := 0
	mfb := uint32(0x3f) // maximum value that fits in the first byte
	for {
		tail[n] = byte(0x80 | (x & 0x3f))
		n++
		x >>= 6
		mfb >>= 1
		if x <= mfb {
			break
		}
	}
	buf = append(buf, byte((^mfb<<1)|x))
	for i := n - 1; i >= 0; i-- {
		buf = append(buf, tail[i])
	}
	return buf
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c <= '9':
		return c - '0'
	case c <= 'F':
		return c - 'A' + 10
	default:
		return c - 'a' + 10
	}
}
