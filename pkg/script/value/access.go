package value

import (
	"fmt"
)

// AccessNumber reads the field keyed by the integer part of idx. A missing
// key is an error when strict is set, otherwise it yields a fresh null that
// an assignment can install under that key.
func AccessNumber(obj, idx *Value, strict bool) (*Value, error) {
	if err := expectObject(obj); err != nil {
		return nil, err
	}
	if err := expectNumber(idx); err != nil {
		return nil, err
	}
	key := IndexKey(idx.num)
	if v, ok := obj.Lookup(key); ok {
		return v, nil
	}
	if strict {
		return nil, fmt.Errorf("%w: no element %s", ErrOutOfRange, key)
	}
	return NewSymbol(obj, key), nil
}

// AccessName reads the field called key, or a fresh null when missing.
func AccessName(obj *Value, key string) (*Value, error) {
	if err := expectObject(obj); err != nil {
		return nil, err
	}
	if v, ok := obj.Lookup(key); ok {
		return v, nil
	}
	return NewSymbol(obj, key), nil
}

// Member implements obj.name and obj.N.
func Member(ctx, obj, rhs *Value) (*Value, error) {
	if rhs.kind == Number {
		return AccessNumber(obj, rhs, false)
	}
	if rhs.name == "" {
		return nil, fmt.Errorf("%w: expecting a member name, got %s", ErrTypeMismatch, rhs.kind)
	}
	return AccessName(obj, rhs.name)
}

// Scope implements the prefix form .name, a member of the current object.
func Scope(ctx, rhs *Value) (*Value, error) {
	return Member(ctx, ctx, rhs)
}

// Index implements obj[N] and obj["name"].
func Index(ctx, obj, rhs *Value) (*Value, error) {
	switch rhs.kind {
	case Number:
		return AccessNumber(obj, rhs, true)
	case Object:
		key, err := rhs.Text()
		if err != nil {
			return nil, err
		}
		return AccessName(obj, key)
	default:
		return nil, fmt.Errorf("%w: expecting an object or a numeric index, got %s", ErrTypeMismatch, rhs.kind)
	}
}

// Call is the call operator. No value kind is callable.
func Call(ctx *Value, args ...*Value) (*Value, error) {
	return nil, fmt.Errorf("%w: %s value is not callable", ErrTypeMismatch, args[0].kind)
}

// Assign stores val where target came from: field target.name of
// target.owner.
func Assign(ctx, target, val *Value) (*Value, error) {
	obj := target.owner
	if obj == nil || obj.kind != Object || target.name == "" || target.owner == target {
		return nil, fmt.Errorf("%w: %s value is not assignable", ErrTypeMismatch, target.kind)
	}
	return obj.Set(target.name, val), nil
}

// Compound builds an assignment operator such as += from its arithmetic
// operator.
func Compound(op func(ctx, a, b *Value) (*Value, error)) func(ctx, a, b *Value) (*Value, error) {
	return func(ctx, target, val *Value) (*Value, error) {
		r, err := op(ctx, target, val)
		if err != nil {
			return nil, err
		}
		return Assign(ctx, target, r)
	}
}

// Separate is the binary form of , and ; which only sequences its operands.
func Separate(ctx, a, b *Value) (*Value, error) {
	return b, nil
}

// Discard is the suffix form of , and ;.
func Discard(ctx, a *Value) (*Value, error) {
	return a, nil
}
