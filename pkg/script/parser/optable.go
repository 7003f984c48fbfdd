package parser

import (
	"github.com/basm-script/bscp/pkg/script/value"
)

// Fixity is the shape of an operator: where its spellings sit relative to
// its operands.
type Fixity uint8

const (
	Prefix    Fixity = iota // <op> <expr>
	Suffix                  // <expr> <op>
	Circumfix               // <op0> <expr> <op1>
	Binary                  // <expr> <op> <expr>
	Ternary                 // <expr> <op0> <expr> <op1> <expr>
)

type Assoc uint8

const (
	Left Assoc = iota
	Right
)

// Action computes an operator's result. ctx is the object the expression
// is evaluated in; operands arrive in source order.
type Action func(ctx *value.Value, operands ...*value.Value) (*value.Value, error)

// Operator is one entry of the operator table. A lower priority binds
// tighter.
type Operator struct {
	Priority int
	Fixity   Fixity
	Assoc    Assoc
	Spelling []string
	Action   Action
}

func (op *Operator) open() string { return op.Spelling[0] }

func (op *Operator) close() string { return op.Spelling[len(op.Spelling)-1] }

func (op *Operator) arity() int {
	switch op.Fixity {
	case Prefix, Suffix:
		return 1
	case Ternary:
		return 3
	default:
		return 2
	}
}

// bindsBefore reports whether op, already on the stack, must be applied
// before next is pushed.
func (op *Operator) bindsBefore(next *Operator) bool {
	if next.Assoc == Right {
		return op.Priority < next.Priority
	}
	return op.Priority <= next.Priority
}

func unary(fn func(ctx, a *value.Value) (*value.Value, error)) Action {
	return func(ctx *value.Value, v ...*value.Value) (*value.Value, error) {
		return fn(ctx, v[0])
	}
}

func binary(fn func(ctx, a, b *value.Value) (*value.Value, error)) Action {
	return func(ctx *value.Value, v ...*value.Value) (*value.Value, error) {
		return fn(ctx, v[0], v[1])
	}
}

func ternary(fn func(ctx, a, b, c *value.Value) (*value.Value, error)) Action {
	return func(ctx *value.Value, v ...*value.Value) (*value.Value, error) {
		return fn(ctx, v[0], v[1], v[2])
	}
}

const (
	objectPriority    = 0
	accessPriority    = 1
	assignPriority    = 14
	separatorPriority = 15
	loosest           = separatorPriority
)

// operators is the operator table. Entries sharing a spelling are told apart
// by the position the spelling appears in: operand position selects the
// prefix and grouping forms, operator position the others.
var operators = []*Operator{
	{0, Circumfix, Left, []string{"{", "}"}, nil}, // object literal, built by the block rule
	{0, Circumfix, Left, []string{"(", ")"}, nil}, // grouping

	{1, Prefix, Right, []string{"."}, unary(value.Scope)},
	{1, Suffix, Left, []string{"++"}, unary(value.PostInc)},
	{1, Suffix, Left, []string{"--"}, unary(value.PostDec)},
	{1, Circumfix, Left, []string{"(", ")"}, value.Call},
	{1, Circumfix, Left, []string{"[", "]"}, binary(value.Index)},
	{1, Binary, Left, []string{"."}, binary(value.Member)},

	{2, Prefix, Right, []string{"++"}, unary(value.PreInc)},
	{2, Prefix, Right, []string{"--"}, unary(value.PreDec)},
	{2, Prefix, Right, []string{"+"}, unary(value.Pos)},
	{2, Prefix, Right, []string{"-"}, unary(value.Neg)},
	{2, Prefix, Right, []string{"!"}, unary(value.Not)},
	{2, Prefix, Right, []string{"~"}, unary(value.BitNot)},
	{2, Prefix, Right, []string{"&"}, unary(value.Ref)},
	{2, Prefix, Right, []string{"*"}, unary(value.Deref)},

	{3, Binary, Left, []string{"*"}, binary(value.Mul)},
	{3, Binary, Left, []string{"/"}, binary(value.Div)},
	{3, Binary, Left, []string{"%"}, binary(value.Rem)},

	{4, Binary, Left, []string{"+"}, binary(value.Add)},
	{4, Binary, Left, []string{"-"}, binary(value.Sub)},

	{5, Binary, Left, []string{"<<"}, binary(value.Shl)},
	{5, Binary, Left, []string{">>"}, binary(value.Shr)},

	{6, Binary, Left, []string{"<"}, binary(value.Less)},
	{6, Binary, Left, []string{"<="}, binary(value.LessEq)},
	{6, Binary, Left, []string{">"}, binary(value.Greater)},
	{6, Binary, Left, []string{">="}, binary(value.GreaterEq)},
	{7, Binary, Left, []string{"=="}, binary(value.Equal)},
	{7, Binary, Left, []string{"!="}, binary(value.NotEqual)},

	{8, Binary, Left, []string{"&"}, binary(value.BitAnd)},
	{9, Binary, Left, []string{"^"}, binary(value.BitXor)},
	{10, Binary, Left, []string{"|"}, binary(value.BitOr)},

	{11, Binary, Left, []string{"&&"}, binary(value.And)},
	{12, Binary, Left, []string{"||"}, binary(value.Or)},

	{13, Ternary, Right, []string{"?", ":"}, ternary(value.Select)},

	{14, Binary, Right, []string{"="}, binary(value.Assign)},
	{14, Binary, Right, []string{"+="}, binary(value.Compound(value.Add))},
	{14, Binary, Right, []string{"-="}, binary(value.Compound(value.Sub))},
	{14, Binary, Right, []string{"*="}, binary(value.Compound(value.Mul))},
	{14, Binary, Right, []string{"/="}, binary(value.Compound(value.Div))},
	{14, Binary, Right, []string{"%="}, binary(value.Compound(value.Rem))},
	{14, Binary, Right, []string{"<<="}, binary(value.Compound(value.Shl))},
	{14, Binary, Right, []string{">>="}, binary(value.Compound(value.Shr))},
	{14, Binary, Right, []string{"&="}, binary(value.Compound(value.BitAnd))},
	{14, Binary, Right, []string{"^="}, binary(value.Compound(value.BitXor))},
	{14, Binary, Right, []string{"|="}, binary(value.Compound(value.BitOr))},

	{15, Binary, Left, []string{","}, binary(value.Separate)},
	{15, Suffix, Left, []string{","}, unary(value.Discard)},
	{15, Binary, Left, []string{";"}, binary(value.Separate)},
	{15, Suffix, Left, []string{";"}, unary(value.Discard)},
}

var (
	// operand position: prefix operators and grouping
	prefixOps = map[string]*Operator{}
	groupOps  = map[string]*Operator{}
	// operator position: binary, ternary, call and index
	infixOps  = map[string]*Operator{}
	suffixOps = map[string]*Operator{}
	// ternary operators by their second spelling
	ternaryOps = map[string]*Operator{}

	objectOp *Operator
)

func init() {
	for _, op := range operators {
		switch op.Fixity {
		case Prefix:
			prefixOps[op.open()] = op
		case Suffix:
			suffixOps[op.open()] = op
		case Binary:
			infixOps[op.open()] = op
		case Ternary:
			infixOps[op.open()] = op
			ternaryOps[op.close()] = op
		case Circumfix:
			switch {
			case op.open() == "{":
				objectOp = op
			case op.Action == nil:
				groupOps[op.open()] = op
			default:
				infixOps[op.open()] = op
			}
		}
	}
}

// Operators returns a copy of the operator table in priority order.
func Operators() []Operator {
	ops := make([]Operator, len(operators))
	for i, op := range operators {
		ops[i] = *op
	}
	return ops
}
