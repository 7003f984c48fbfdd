// Package value implements the runtime data model of the script engine:
// a tagged value that is either null, a number, or an object whose fields
// are kept in key-sorted order.
package value

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/emirpasic/gods/maps/treemap"
)

var (
	ErrTypeMismatch = errors.New("type mismatch")
	ErrOutOfRange   = errors.New("out of range")
)

type Kind uint8

const (
	Null Kind = iota
	Number
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Number:
		return "number"
	case Object:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Field is a named slot of an object.
type Field struct {
	Value     *Value
	Temporary bool
}

// Value is a runtime value. An object exclusively owns the values stored in
// its fields; owner is a back-reference to the object currently storing the
// value and is never nil (the outermost object owns itself).
type Value struct {
	kind   Kind
	num    float64
	fields *treemap.Map // string -> *Field

	name  string
	owner *Value
}

func NewNull(owner *Value) *Value {
	return &Value{kind: Null, owner: owner}
}

func NewNumber(owner *Value, n float64) *Value {
	return &Value{kind: Number, num: n, owner: owner}
}

func NewObject(owner *Value) *Value {
	return &Value{kind: Object, fields: treemap.NewWithStringComparator(), owner: owner}
}

// NewRoot creates the outermost object, which is its own owner.
func NewRoot() *Value {
	v := NewObject(nil)
	v.owner = v
	return v
}

// NewSymbol creates an unattached null that only carries a name. It is the
// operand produced by a member name such as the b in a.b.
func NewSymbol(owner *Value, name string) *Value {
	v := NewNull(owner)
	v.name = name
	return v
}

// FromBytes materializes a byte string as an object with one number field
// per byte, keyed by position.
func FromBytes(owner *Value, b []byte) *Value {
	obj := NewObject(owner)
	for i, c := range b {
		key := strconv.Itoa(i)
		n := NewNumber(obj, float64(c))
		n.name = key
		obj.fields.Put(key, &Field{Value: n})
	}
	return obj
}

func (v *Value) Kind() Kind { return v.kind }
func (v *Value) Name() string { return v.name }
func (v *Value) Owner() *Value { return v.owner }
func (v *Value) IsNull() bool { return v.kind == Null }
func (v *Value) IsNumber() bool { return v.kind == Number }
func (v *Value) IsObject() bool { return v.kind == Object }
func (v *Value) IsRoot() bool { return v.owner == v }
func (v *Value) Float() float64 { return v.num }

func (v *Value) SetFloat(n float64) {
	if v.kind == Number {
		v.num = n
	}
}

func (v *Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case Object:
		return fmt.Sprintf("object(%d fields)", v.fields.Size())
	default:
		return "null"
	}
}

// Truthy reports a number as true when nonzero and any other value as true
// unless it is null.
func (v *Value) Truthy() bool {
	switch v.kind {
	case Number:
		return v.num != 0
	case Null:
		return false
	default:
		return true
	}
}

// attached reports whether v is currently stored in its owner's fields.
func (v *Value) attached() bool {
	if v.owner == nil || v.owner == v || v.owner.kind != Object {
		return false
	}
	f, ok := v.owner.field(v.name)
	return ok && f.Value == v
}

// encloses reports whether obj is v itself or one of v's owners.
func (v *Value) encloses(obj *Value) bool {
	for p := obj; p != nil; p = p.owner {
		if p == v {
			return true
		}
		if p.owner == p {
			break
		}
	}
	return false
}

// Clone returns a deep copy of v owned by owner.
func (v *Value) Clone(owner *Value) *Value {
	c := &Value{kind: v.kind, num: v.num, name: v.name, owner: owner}
	if v.kind == Object {
		c.fields = treemap.NewWithStringComparator()
		it := v.fields.Iterator()
		for it.Next() {
			f := it.Value().(*Field)
			c.fields.Put(it.Key(), &Field{Value: f.Value.Clone(c), Temporary: f.Temporary})
		}
	}
	return c
}

func expectNumber(v *Value) error {
	if v.kind != Number {
		return fmt.Errorf("%w: expecting a numeric value, got %s", ErrTypeMismatch, v.kind)
	}
	return nil
}

func expectObject(v *Value) error {
	if v.kind != Object {
		return fmt.Errorf("%w: expecting an object, got %s", ErrTypeMismatch, v.kind)
	}
	return nil
}
