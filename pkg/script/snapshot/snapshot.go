// Package snapshot exports evaluated value trees to CBOR, YAML, Go values
// and a one-line display form, and rebuilds trees from CBOR.
package snapshot

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/basm-script/bscp/pkg/script/value"
	"github.com/fxamacker/cbor/v2"
	"github.com/goinggo/mapstructure"
	"gopkg.in/yaml.v3"
)

var ErrUnsupported = errors.New("unsupported native value")

var encMode cbor.EncMode

func init() {
	var err error
	if encMode, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
		panic(err)
	}
}

// IsString reports whether v is a non-empty object holding byte codes
// 1..255 under the keys 0..n-1, the shape string literals decode to.
func IsString(v *value.Value) bool {
	n := v.Len()
	if !v.IsObject() || n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		f, ok := v.Field(strconv.Itoa(i))
		if !ok || !f.Value.IsNumber() {
			return false
		}
		if c := f.Value.Float(); c < 1 || c > 255 || c != math.Trunc(c) {
			return false
		}
	}
	return true
}

// isText reports whether s is valid UTF-8 made of printable characters and
// white space.
func isText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// ToNative converts v to nil, float64, string, []byte or
// map[string]interface{}. String-shaped objects become Go strings when they
// are valid UTF-8 and byte slices otherwise.
func ToNative(v *value.Value) interface{} {
	switch v.Kind() {
	case value.Number:
		return v.Float()
	case value.Object:
		if IsString(v) {
			s, _ := v.Text()
			if utf8.ValidString(s) {
				return s
			}
			return []byte(s)
		}
		m := make(map[string]interface{}, v.Len())
		v.Each(func(key string, f *value.Field) bool {
			m[key] = ToNative(f.Value)
			return true
		})
		return m
	default:
		return nil
	}
}

// FromNative builds a value tree owned by owner from decoded data.
func FromNative(owner *value.Value, x interface{}) (*value.Value, error) {
	switch t := x.(type) {
	case nil:
		return value.NewNull(owner), nil
	case bool:
		if t {
			return value.NewNumber(owner, 1), nil
		}
		return value.NewNumber(owner, 0), nil
	case float64:
		return value.NewNumber(owner, t), nil
	case float32:
		return value.NewNumber(owner, float64(t)), nil
	case int:
		return value.NewNumber(owner, float64(t)), nil
	case int64:
		return value.NewNumber(owner, float64(t)), nil
	case uint64:
		return value.NewNumber(owner, float64(t)), nil
	case string:
		return value.FromBytes(owner, []byte(t)), nil
	case []byte:
		return value.FromBytes(owner, t), nil
	case []interface{}:
		obj := value.NewObject(owner)
		for i, e := range t {
			if err := put(obj, strconv.Itoa(i), e); err != nil {
				return nil, err
			}
		}
		return obj, nil
	case map[string]interface{}:
		obj := value.NewObject(owner)
		for k, e := range t {
			if err := put(obj, k, e); err != nil {
				return nil, err
			}
		}
		return obj, nil
	case map[interface{}]interface{}:
		obj := value.NewObject(owner)
		for k, e := range t {
			if err := put(obj, fmt.Sprint(k), e); err != nil {
				return nil, err
			}
		}
		return obj, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, x)
}

func put(obj *value.Value, key string, x interface{}) error {
	v, err := FromNative(obj, x)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	obj.Put(key, v)
	return nil
}

// EncodeCBOR encodes v in canonical CBOR, map keys sorted.
func EncodeCBOR(v *value.Value) ([]byte, error) {
	return encMode.Marshal(ToNative(v))
}

// DecodeCBOR rebuilds a value tree owned by owner.
func DecodeCBOR(owner *value.Value, data []byte) (*value.Value, error) {
	var x interface{}
	if err := cbor.Unmarshal(data, &x); err != nil {
		return nil, err
	}
	return FromNative(owner, x)
}

func EncodeYAML(v *value.Value) ([]byte, error) {
	return yaml.Marshal(ToNative(v))
}

// Bind decodes the object v into the struct pointed to by out. Struct
// fields are matched through their mapstructure tags.
func Bind(v *value.Value, out interface{}) error {
	m, ok := ToNative(v).(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: cannot bind %s", value.ErrTypeMismatch, v.Kind())
	}
	return mapstructure.Decode(m, out)
}

// Format renders v on one line: null, numbers, quoted strings and
// {key: value, ...} objects. Only printable text is quoted; other
// string-shaped objects are shown field by field.
func Format(v *value.Value) string {
	var sb strings.Builder
	format(&sb, v)
	return sb.String()
}

func printable(v *value.Value) bool {
	s, err := v.Text()
	return err == nil && isText(s)
}

func format(sb *strings.Builder, v *value.Value) {
	switch {
	case v.IsNumber():
		sb.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case IsString(v) && printable(v):
		s, _ := v.Text()
		sb.WriteString(strconv.Quote(s))
	case v.IsObject():
		sb.WriteByte('{')
		first := true
		v.Each(func(key string, f *value.Field) bool {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(key)
			sb.WriteString(": ")
			format(sb, f.Value)
			return true
		})
		sb.WriteByte('}')
	default:
		sb.WriteString("null")
	}
}

