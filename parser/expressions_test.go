package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runa-lang/runa/ast"
)

// parseExpr parses a single expression by planting it in a local
// initializer inside the module frame.
func parseExpr(t testing.TB, src string) ast.Expr {
	t.Helper()
	program := parseModule(t, "local v = "+src)
	local := firstStats(t, program).List[0].(*ast.Local)
	require.Len(t, local.Exprs, 1)
	return local.Exprs[0]
}

// The normalized String rendering parenthesizes every operator application,
// which makes it a direct readout of how the parse grouped things.
func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 + 2 + 3", "((1 + 2) + 3)"},
		{"a .. b .. c", "(a .. (b .. c))"},
		{"2 ^ 3 ^ 2", "(2 ^ (3 ^ 2))"},
		{"-2 ^ 2", "(-(2 ^ 2))"},
		{"- -x", "(-(-x))"},
		{"not a == b", "((not a) == b)"},
		{"#t + 1", "((#t) + 1)"},
		{"~x >> 1", "((~x) >> 1)"},
		{"a < b and b < c or d", "(((a < b) and (b < c)) or d)"},
		{"a or b and c", "(a or (b and c))"},
		{"a | b ~ c & d", "(a | (b ~ (c & d)))"},
		{"1 << 2 + 3", "(1 << (2 + 3))"},
		{"a .. b + c", "(a .. (b + c))"},
		{"a + b .. c", "((a + b) .. c)"},
		{"x % 2 == 0", "((x % 2) == 0)"},
		{"a // b / c", "((a // b) / c)"},
		{"a ~= b ~ c", "(a ~= (b ~ c))"},
		{"-x * y", "((-x) * y)"},
		{"-(x * y)", "(-((x * y)))"},
	}
	for _, tt := range tests {
		if got := parseExpr(t, tt.input).String(); got != tt.want {
			t.Errorf("parse(%q) grouped as %s, want %s", tt.input, got, tt.want)
		}
	}
}

// A cast binds tighter than any binary operator but looser than suffixes.
func TestCastBinding(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x as int", "(x as int)"},
		{"x + y as int", "(x + (y as int))"},
		{"x as int + y", "((x as int) + y)"},
		{"-x as int", "(-(x as int))"},
		{"2 ^ n as int", "(2 ^ (n as int))"},
		{"x as int as float", "((x as int) as float)"},
		{"t[i] as {int}", "(t[i] as {int})"},
		{"f(x) as point", "(f(x) as point)"},
	}
	for _, tt := range tests {
		if got := parseExpr(t, tt.input).String(); got != tt.want {
			t.Errorf("parse(%q) grouped as %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestSuffixedExpressions(t *testing.T) {
	dot := parseExpr(t, "a.b.c")
	outer, ok := dot.(*ast.Dot)
	require.True(t, ok)
	require.Equal(t, "c", outer.Sel)
	inner, ok := outer.X.(*ast.Dot)
	require.True(t, ok)
	require.Equal(t, "b", inner.Sel)
	require.Equal(t, "a", inner.X.(*ast.Name).Name)

	idx := parseExpr(t, "t[i + 1]").(*ast.Bracket)
	require.Equal(t, "t", idx.X.(*ast.Name).Name)
	require.Equal(t, "(i + 1)", idx.Index.String())

	chain := parseExpr(t, "f(x)(y)").(*ast.CallFunc)
	require.IsType(t, &ast.CallFunc{}, chain.Fun)

	mixed := parseExpr(t, "rows[1].cells[2]").(*ast.Bracket)
	require.IsType(t, &ast.Dot{}, mixed.X)
}

func TestMethodCall(t *testing.T) {
	call := parseExpr(t, "queue:push(item)").(*ast.CallMethod)
	require.Equal(t, "push", call.Method)
	require.Equal(t, "queue", call.X.(*ast.Name).Name)
	require.Len(t, call.Args, 1)
	require.True(t, call.Lparen.IsValid())
	require.Equal(t, "queue:push(item)", call.String())
}

func TestParenlessCalls(t *testing.T) {
	str := parseExpr(t, `print "hello"`).(*ast.CallFunc)
	require.False(t, str.Lparen.IsValid())
	require.Len(t, str.Args, 1)
	require.Equal(t, "hello", str.Args[0].(*ast.String).Value)

	init := parseExpr(t, "new {x = 1}").(*ast.CallFunc)
	require.False(t, init.Lparen.IsValid())
	require.IsType(t, &ast.InitList{}, init.Args[0])

	method := parseExpr(t, `buf:write "x"`).(*ast.CallMethod)
	require.False(t, method.Lparen.IsValid())
	require.Len(t, method.Args, 1)
}

// Parentheses stay in the tree: in Lua they truncate multiple values, so
// "(f(x))" is not the same expression as "f(x)".
func TestParenKept(t *testing.T) {
	paren := parseExpr(t, "(f(x))").(*ast.Paren)
	require.IsType(t, &ast.CallFunc{}, paren.X)
}

func TestInitListFields(t *testing.T) {
	empty := parseExpr(t, "{}").(*ast.InitList)
	require.Empty(t, empty.Fields)

	positional := parseExpr(t, "{1, 2, 3}").(*ast.InitList)
	require.Len(t, positional.Fields, 3)
	for _, f := range positional.Fields {
		require.IsType(t, &ast.FieldList{}, f)
	}

	named := parseExpr(t, "{x = 1.0, y = 2.0}").(*ast.InitList)
	require.Len(t, named.Fields, 2)
	rec := named.Fields[0].(*ast.FieldRec)
	require.Equal(t, "x", rec.Name)
	require.Equal(t, "1.0", rec.Value.String())

	mixed := parseExpr(t, "{1, x = 2; 3,}").(*ast.InitList)
	require.Len(t, mixed.Fields, 3)
	require.IsType(t, &ast.FieldList{}, mixed.Fields[0])
	require.IsType(t, &ast.FieldRec{}, mixed.Fields[1])
	require.IsType(t, &ast.FieldList{}, mixed.Fields[2])

	nested := parseExpr(t, "{pos = {x = 1}}").(*ast.InitList)
	inner := nested.Fields[0].(*ast.FieldRec).Value.(*ast.InitList)
	require.Len(t, inner.Fields, 1)

	// A name on its own is positional; only "name =" opens a named entry.
	bare := parseExpr(t, "{x}").(*ast.InitList)
	require.IsType(t, &ast.FieldList{}, bare.Fields[0])
}

func TestIntegerValues(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"42", 42},
		{"0x10", 16},
		{"0XFF", 255},
		{"9223372036854775807", math.MaxInt64},
		{"0x7FFFFFFFFFFFFFFF", math.MaxInt64},
		{"0xFFFFFFFFFFFFFFFF", -1},
		{"0x8000000000000000", math.MinInt64},
		{"0x10000000000000000", 0},
	}
	for _, tt := range tests {
		n, ok := parseExpr(t, tt.input).(*ast.Int)
		if !ok {
			t.Errorf("parse(%q): not an integer literal", tt.input)
			continue
		}
		if n.Value != tt.want {
			t.Errorf("parse(%q) = %d, want %d", tt.input, n.Value, tt.want)
		}
		if n.Literal != tt.input {
			t.Errorf("parse(%q): literal text %q lost", tt.input, n.Literal)
		}
	}
}

// A decimal integer too large for int64 degrades to a float, matching Lua.
func TestIntegerOverflowBecomesFloat(t *testing.T) {
	f, ok := parseExpr(t, "9223372036854775808").(*ast.Float)
	require.True(t, ok)
	require.Equal(t, 9.223372036854776e18, f.Value)
}

func TestFloatValues(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"3.5", 3.5},
		{"0.0", 0},
		{".5", 0.5},
		{"3.", 3},
		{"1e2", 100},
		{"1.5E-1", 0.15},
		{"0x1.8p3", 12},
		{"0x1.8", 1.5},
		{"0xAp0", 10},
	}
	for _, tt := range tests {
		f, ok := parseExpr(t, tt.input).(*ast.Float)
		if !ok {
			t.Errorf("parse(%q): not a float literal", tt.input)
			continue
		}
		if f.Value != tt.want {
			t.Errorf("parse(%q) = %g, want %g", tt.input, f.Value, tt.want)
		}
	}
}

func TestStringValues(t *testing.T) {
	s := parseExpr(t, `"a\tb\n"`).(*ast.String)
	require.Equal(t, "a\tb\n", s.Value)

	long := parseExpr(t, "[[raw \\n text]]").(*ast.String)
	require.Equal(t, `raw \n text`, long.Value)
}

func TestLambda(t *testing.T) {
	fn := parseExpr(t, "function(x: int): int\nreturn x * 2\nend").(*ast.Lambda)
	require.Len(t, fn.Params, 1)
	require.Equal(t, "x", fn.Params[0].Name)
	require.Len(t, fn.RetTypes, 1)
	require.Len(t, fn.Body, 1)
	require.Equal(t, "function(x: int): int\nreturn (x * 2)\nend", fn.String())

	bare := parseExpr(t, "function() end").(*ast.Lambda)
	require.Empty(t, bare.Params)
	require.Nil(t, bare.RetTypes)
	require.Empty(t, bare.Body)
}

func TestLiteralExpressions(t *testing.T) {
	require.IsType(t, &ast.Nil{}, parseExpr(t, "nil"))
	require.Equal(t, true, parseExpr(t, "true").(*ast.Bool).Value)
	require.Equal(t, false, parseExpr(t, "false").(*ast.Bool).Value)
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "missing operand",
			input: "local m = {}\nlocal v = 1 +\nreturn m",
			want:  "while parsing expression",
		},
		{
			name:  "missing expression",
			input: "local m = {}\nlocal v =\nreturn m",
			want:  "while parsing expression",
		},
		{
			name:  "unclosed call",
			input: "local m = {}\nlocal v = f(1\nreturn m",
			want:  `expected ")"`,
		},
		{
			name:  "unclosed index",
			input: "local m = {}\nlocal v = t[1\nreturn m",
			want:  `expected "]"`,
		},
		{
			name:  "unclosed initializer",
			input: "local m = {}\nlocal v = {1, 2\nreturn m",
			want:  `expected "}"`,
		},
		{
			name:  "method without arguments",
			input: "local m = {}\nlocal v = obj:push\nreturn m",
			want:  "while parsing call arguments",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseErrors(t, tt.input)
			require.Contains(t, errs[0].Msg, tt.want)
		})
	}
}

func TestExpressionBounds(t *testing.T) {
	// Offsets are relative to the full wrapped input, whose first line
	// "local m = {}\n" is 13 bytes; the initializer begins at column 11
	// of line 2.
	x := parseExpr(t, "items[i]")
	require.Equal(t, 13+10, x.Pos().Offset)
	require.Equal(t, 13+18, x.End())

	call := parseExpr(t, "f(x, y)")
	require.Equal(t, 13+17, call.End())
}
