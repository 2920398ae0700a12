package parser

import "github.com/runa-lang/runa/token"

// Binding powers for binary operators. Each operator carries a left and a
// right power; right-associative operators bind weaker on the right so that
// the recursive parse claims the rest of the chain.
type priority struct {
	left  int
	right int
}

const unaryPriority = 12

// Precedences for each binary operator
var binaryPriority = map[token.Type]priority{
	token.OR:      {1, 1},
	token.AND:     {2, 2},
	token.LT:      {3, 3},
	token.GT:      {3, 3},
	token.LE:      {3, 3},
	token.GE:      {3, 3},
	token.NE:      {3, 3},
	token.EQ:      {3, 3},
	token.PIPE:    {4, 4},
	token.TILDE:   {5, 5},
	token.AMP:     {6, 6},
	token.LSHIFT:  {7, 7},
	token.RSHIFT:  {7, 7},
	token.CONCAT:  {9, 8},
	token.PLUS:    {10, 10},
	token.MINUS:   {10, 10},
	token.STAR:    {11, 11},
	token.SLASH:   {11, 11},
	token.DSLASH:  {11, 11},
	token.PERCENT: {11, 11},
	token.CARET:   {14, 13},
}

// Unary operator set. The minus sign lands here only when it appears in
// prefix position.
var unaryOps = map[token.Type]bool{
	token.NOT:   true,
	token.MINUS: true,
	token.HASH:  true,
	token.TILDE: true,
}
