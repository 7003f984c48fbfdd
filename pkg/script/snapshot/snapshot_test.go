package snapshot

import (
	"errors"
	"testing"

	"github.com/basm-script/bscp/pkg/script/parser"
	"github.com/basm-script/bscp/pkg/script/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func program(t *testing.T, src string) *value.Value {
	t.Helper()
	in := parser.New()
	_, err := in.Eval(src)
	require.NoError(t, err)
	return in.Root()
}

func TestFormat(t *testing.T) {
	assert := assert.New(t)

	root := program(t, `p = { x = 1.5, name = "bob", pos = { y = -2 } }
z = 10
`)
	assert.Equal(`{p: {name: "bob", pos: {y: -2}, x: 1.5}, z: 10}`, Format(root))
	assert.Equal("null", Format(value.NewNull(root)))
	assert.Equal("{}", Format(value.NewObject(root)))
}

func TestFormatBytes(t *testing.T) {
	assert := assert.New(t)

	root := program(t, `z = { }
z.0 = 5
s = "\xff\xfe"
w = "tab\there"`)
	assert.Equal(`{s: {0: 255, 1: 254}, w: "tab\there", z: {0: 5}}`, Format(root))
}

func TestIsString(t *testing.T) {
	assert := assert.New(t)
	root := value.NewRoot()

	assert.True(IsString(value.FromBytes(root, []byte("hi"))))
	assert.False(IsString(value.FromBytes(root, []byte("a\x00"))))
	assert.False(IsString(value.NewObject(root)))
	assert.False(IsString(value.NewNumber(root, 65)))

	obj := value.NewObject(root)
	obj.Set("0", value.NewNumber(obj, 65.5))
	assert.False(IsString(obj))
}

func TestToNative(t *testing.T) {
	root := program(t, `o = { a = 1, s = "x", n = { } }`)
	o, _ := root.Field("o")
	assert.Equal(t, map[string]interface{}{
		"a": 1.0,
		"s": "x",
		"n": map[string]interface{}{},
	}, ToNative(o.Value))
}

func TestCBOR(t *testing.T) {
	assert := assert.New(t)

	root := program(t, `o = { b = 2, a = { c = "hey" }, z = 0.25 }
o.nil = 1
o.nil = nothing`)

	data, err := EncodeCBOR(root)
	require.NoError(t, err)

	again, err := EncodeCBOR(root)
	require.NoError(t, err)
	assert.Equal(data, again)

	dst := value.NewRoot()
	v, err := DecodeCBOR(dst, data)
	require.NoError(t, err)
	assert.Equal(Format(root), Format(v))

	f, ok := v.Field("o")
	require.True(t, ok)
	n, ok := f.Value.Field("nil")
	require.True(t, ok)
	assert.True(n.Value.IsNull())

	_, err = DecodeCBOR(dst, []byte{0xff, 0x00})
	assert.Error(err)
}

func TestCBORInvalidUTF8(t *testing.T) {
	assert := assert.New(t)

	root := program(t, `s = "\xff\xfe"
u = "h\u00e9"`)
	s, _ := root.Field("s")
	assert.Equal([]byte{0xff, 0xfe}, ToNative(s.Value))

	data, err := EncodeCBOR(root)
	require.NoError(t, err)
	v, err := DecodeCBOR(value.NewRoot(), data)
	require.NoError(t, err)
	assert.Equal(Format(root), Format(v))

	f, ok := v.Field("s")
	require.True(t, ok)
	text, err := f.Value.Text()
	require.NoError(t, err)
	assert.Equal("\xff\xfe", text)
}

func TestFromNative(t *testing.T) {
	assert := assert.New(t)
	root := value.NewRoot()

	v, err := FromNative(root, map[interface{}]interface{}{
		"list": []interface{}{uint64(1), int64(-2), true},
		7:      float32(0.5),
	})
	require.NoError(t, err)
	assert.Equal(`{7: 0.5, list: {0: 1, 1: -2, 2: 1}}`, Format(v))

	_, err = FromNative(root, map[string]interface{}{"c": make(chan int)})
	assert.True(errors.Is(err, ErrUnsupported))
}

func TestYAML(t *testing.T) {
	assert := assert.New(t)

	root := program(t, `p = { x = 1, tag = "t" }`)
	data, err := EncodeYAML(root)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(s, "p:\n")
	assert.Contains(s, "x: 1\n")
	assert.Contains(s, "tag: t\n")
}

func TestBind(t *testing.T) {
	assert := assert.New(t)

	var cfg struct {
		Name  string  `mapstructure:"name"`
		Ratio float64 `mapstructure:"ratio"`
		Inner struct {
			Depth float64 `mapstructure:"depth"`
		} `mapstructure:"inner"`
	}
	root := program(t, `name = "svc"
ratio = 3 / 4
inner = { depth = 2 }`)
	require.NoError(t, Bind(root, &cfg))
	assert.Equal("svc", cfg.Name)
	assert.Equal(0.75, cfg.Ratio)
	assert.Equal(2.0, cfg.Inner.Depth)

	err := Bind(value.NewNumber(root, 1), &cfg)
	assert.True(errors.Is(err, value.ErrTypeMismatch))
}
