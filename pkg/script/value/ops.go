package value

import (
	"math"
)

const two64 = 18446744073709551616.0

// toUnsigned truncates n toward zero and reinterprets it as a machine word.
// Negative values wrap as two's complement; values outside 64 bits wrap
// modulo 2^64. NaN converts to zero.
func toUnsigned(n float64) uint64 {
	t := math.Trunc(n)
	switch {
	case math.IsNaN(t) || math.IsInf(t, 0):
		return 0
	case t >= 0 && t < two64:
		return uint64(t)
	case t < 0 && t >= math.MinInt64:
		return uint64(int64(t))
	}
	t = math.Mod(t, two64)
	if t < 0 {
		t += two64
	}
	if t >= two64 {
		return 0
	}
	return uint64(t)
}

func arith(fn func(a, b float64) float64) func(ctx, a, b *Value) (*Value, error) {
	return func(ctx, a, b *Value) (*Value, error) {
		if err := expectNumber(a); err != nil {
			return nil, err
		}
		if err := expectNumber(b); err != nil {
			return nil, err
		}
		return NewNumber(ctx, fn(a.num, b.num)), nil
	}
}

func bitwise(fn func(a, b uint64) uint64) func(ctx, a, b *Value) (*Value, error) {
	return arith(func(a, b float64) float64 {
		return float64(fn(toUnsigned(a), toUnsigned(b)))
	})
}

func boolean(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func compare(fn func(a, b float64) bool) func(ctx, a, b *Value) (*Value, error) {
	return arith(func(a, b float64) float64 { return boolean(fn(a, b)) })
}

var (
	Mul = arith(func(a, b float64) float64 { return a * b })
	Div = arith(func(a, b float64) float64 { return a / b })
	Rem = arith(math.Remainder)
	Add = arith(func(a, b float64) float64 { return a + b })
	Sub = arith(func(a, b float64) float64 { return a - b })

	Shl    = bitwise(func(a, b uint64) uint64 { return a << b })
	Shr    = bitwise(func(a, b uint64) uint64 { return a >> b })
	BitAnd = bitwise(func(a, b uint64) uint64 { return a & b })
	BitXor = bitwise(func(a, b uint64) uint64 { return a ^ b })
	BitOr  = bitwise(func(a, b uint64) uint64 { return a | b })

	Less      = compare(func(a, b float64) bool { return a < b })
	LessEq    = compare(func(a, b float64) bool { return a <= b })
	Greater   = compare(func(a, b float64) bool { return a > b })
	GreaterEq = compare(func(a, b float64) bool { return a >= b })
	Equal     = compare(func(a, b float64) bool { return a == b })
	NotEqual  = compare(func(a, b float64) bool { return a != b })
)

// And and Or evaluate the truthiness of two already evaluated operands.
func And(ctx, a, b *Value) (*Value, error) {
	return NewNumber(ctx, boolean(a.Truthy() && b.Truthy())), nil
}

func Or(ctx, a, b *Value) (*Value, error) {
	return NewNumber(ctx, boolean(a.Truthy() || b.Truthy())), nil
}

func Not(ctx, a *Value) (*Value, error) {
	return NewNumber(ctx, boolean(!a.Truthy())), nil
}

func Pos(ctx, a *Value) (*Value, error) {
	if err := expectNumber(a); err != nil {
		return nil, err
	}
	return NewNumber(ctx, a.num), nil
}

func Neg(ctx, a *Value) (*Value, error) {
	if err := expectNumber(a); err != nil {
		return nil, err
	}
	return NewNumber(ctx, -a.num), nil
}

func BitNot(ctx, a *Value) (*Value, error) {
	if err := expectNumber(a); err != nil {
		return nil, err
	}
	return NewNumber(ctx, -math.Trunc(a.num)-1), nil
}

// PreInc and PreDec mutate a in place and return it.
func PreInc(ctx, a *Value) (*Value, error) { return step(a, 1) }
func PreDec(ctx, a *Value) (*Value, error) { return step(a, -1) }

// PostInc and PostDec return a new number holding the previous value.
func PostInc(ctx, a *Value) (*Value, error) { return stepAfter(ctx, a, 1) }
func PostDec(ctx, a *Value) (*Value, error) { return stepAfter(ctx, a, -1) }

func step(a *Value, d float64) (*Value, error) {
	if err := expectNumber(a); err != nil {
		return nil, err
	}
	a.num += d
	return a, nil
}

func stepAfter(ctx, a *Value, d float64) (*Value, error) {
	if err := expectNumber(a); err != nil {
		return nil, err
	}
	old := NewNumber(ctx, a.num)
	a.num += d
	return old, nil
}

// Ref returns the object a came from.
func Ref(ctx, a *Value) (*Value, error) {
	return a.owner, nil
}

// Deref returns the first field of a in key order, or a fresh null.
func Deref(ctx, a *Value) (*Value, error) {
	if err := expectObject(a); err != nil {
		return nil, err
	}
	if v, ok := a.First(); ok {
		return v, nil
	}
	return NewNull(a), nil
}

// Select picks one of two already evaluated branches.
func Select(ctx, cond, t, f *Value) (*Value, error) {
	if cond.Truthy() {
		return t, nil
	}
	return f, nil
}
