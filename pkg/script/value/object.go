package value

import (
	"fmt"
	"math"
	"strconv"
)

func (v *Value) field(key string) (*Field, bool) {
	if v.kind != Object {
		return nil, false
	}
	f, ok := v.fields.Get(key)
	if !ok {
		return nil, false
	}
	return f.(*Field), true
}

// Field returns the slot stored under key.
func (v *Value) Field(key string) (*Field, bool) {
	return v.field(key)
}

// Lookup returns the value stored under key and renames it to key.
func (v *Value) Lookup(key string) (*Value, bool) {
	f, ok := v.field(key)
	if !ok {
		return nil, false
	}
	f.Value.name = key
	return f.Value, true
}

// Resolve looks a word up in the scope of v: the fields of v first, then
// the temporary bindings of the objects enclosing v. An unknown word yields
// an unattached null named after it, so a later assignment creates the
// field on v.
func (v *Value) Resolve(name string) *Value {
	if r, ok := v.Lookup(name); ok {
		return r
	}
	for p := v.owner; p != nil && p != v; p = p.owner {
		if f, ok := p.field(name); ok && f.Temporary {
			f.Value.name = name
			return f.Value
		}
		if p.owner == p {
			break
		}
	}
	return NewSymbol(v, name)
}

func (v *Value) Len() int {
	if v.kind != Object {
		return 0
	}
	return v.fields.Size()
}

// Keys returns the field keys in sorted order.
func (v *Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, 0, v.fields.Size())
	for _, k := range v.fields.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

// Each visits the fields in key order until fn returns false.
func (v *Value) Each(fn func(key string, f *Field) bool) {
	if v.kind != Object {
		return
	}
	it := v.fields.Iterator()
	for it.Next() {
		if !fn(it.Key().(string), it.Value().(*Field)) {
			return
		}
	}
}

// First returns the value of the first field in key order.
func (v *Value) First() (*Value, bool) {
	if v.kind != Object || v.fields.Empty() {
		return nil, false
	}
	_, f := v.fields.Min()
	return f.(*Field).Value, true
}

func (v *Value) Remove(key string) {
	if v.kind == Object {
		v.fields.Remove(key)
	}
}

// Set installs val under key, replacing the previous occupant. Setting null
// on a missing key is a no-op, setting null on a present key keeps the key.
// A value that is still stored elsewhere, or that encloses v, is copied so
// ownership stays a tree.
func (v *Value) Set(key string, val *Value) *Value {
	return v.install(key, val, false, false)
}

// SetTemporary installs val under key as a temporary binding, replacing the
// previous occupant even when val is null.
func (v *Value) SetTemporary(key string, val *Value) *Value {
	return v.install(key, val, true, true)
}

// Put installs val under key, creating the field even when val is null.
func (v *Value) Put(key string, val *Value) *Value {
	return v.install(key, val, false, true)
}

func (v *Value) install(key string, val *Value, temporary, force bool) *Value {
	if f, ok := v.field(key); ok && f.Value == val {
		f.Temporary = f.Temporary || temporary
		return val
	}
	if val.attached() || val.encloses(v) {
		val = val.Clone(v)
	}
	if f, ok := v.field(key); ok {
		// the previous occupant is dropped; nothing else owns it
		f.Value = val
		f.Temporary = f.Temporary || temporary
	} else if val.kind != Null || force {
		v.fields.Put(key, &Field{Value: val, Temporary: temporary})
	}
	val.name, val.owner = key, v
	return val
}

// StripTemporaries removes every field still marked temporary.
func (v *Value) StripTemporaries() {
	if v.kind != Object {
		return
	}
	var keys []string
	v.Each(func(key string, f *Field) bool {
		if f.Temporary {
			keys = append(keys, key)
		}
		return true
	})
	for _, k := range keys {
		v.fields.Remove(k)
	}
}

// IndexKey converts a numeric index to a field key: the integer part of n.
func IndexKey(n float64) string {
	t := math.Trunc(n)
	if t == 0 {
		t = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(t, 'f', -1, 64)
}

// Text reads consecutive integer-keyed number fields of a string object as
// character codes until a zero byte or a missing index.
func (v *Value) Text() (string, error) {
	if err := expectObject(v); err != nil {
		return "", err
	}
	var b []byte
	for i := 0; ; i++ {
		f, ok := v.field(strconv.Itoa(i))
		if !ok {
			break
		}
		if f.Value.kind != Number {
			return "", fmt.Errorf("%w: invalid string constant at index %d", ErrTypeMismatch, i)
		}
		c := byte(toUnsigned(f.Value.num))
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b), nil
}
