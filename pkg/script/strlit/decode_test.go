package strlit

import (
	"errors"
	"math"
	"testing"

	"github.com/basm-script/bscp/pkg/script/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnquote(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		raw  string
		want string
	}{
		{`"A"`, "A"},
		{`"\x41"`, "A"},
		{`"\101"`, "A"},
		{`'single'`, "single"},
		{`""`, ""},
		{`"\'\"\?\\"`, `'"?\`},
		{`"\a\b\f\n\r\t\v"`, "\a\b\f\n\r\t\v"},
		{`"\x4142"`, "B"},
		{`"\x7"`, "\x07"},
		{`"\0"`, "\x00"},
		{`"\1011"`, "A1"},
		{`"é"`, "é"},
		{`"\U0001F600"`, "\U0001F600"},
		{`"a\tb"`, "a\tb"},
	}
	for _, tt := range tests {
		b, err := Unquote(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(tt.want, string(b), tt.raw)
	}
}

func TestUnquoteErrors(t *testing.T) {
	for _, raw := range []string{
		`"abc`,
		`"abc'`,
		`x`,
		`"\x"`,
		`"\xg"`,
		`"\u12"`,
		`"\u12G4"`,
		`"\UFFFFFFFF"`,
		`"\uD800"`,
		`"\q"`,
		`"\8"`,
		`"trailing\"`,
	} {
		_, err := Unquote(raw)
		assert.True(t, errors.Is(err, ErrLiteral), raw)
	}
}

func TestParseNumber(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		raw  string
		want float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.25", 3.25},
		{"1e3", 1000},
		{"2.5E-1", 0.25},
		{"0x1F", 31},
		{"0XfF", 255},
	}
	for _, tt := range tests {
		n, err := ParseNumber(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(tt.want, n, tt.raw)
	}

	n, err := ParseNumber("1e400")
	require.NoError(t, err)
	assert.True(math.IsInf(n, 1))

	_, err = ParseNumber("0x")
	assert.True(errors.Is(err, ErrLiteral))
}

func TestDecoderCache(t *testing.T) {
	assert := assert.New(t)

	d := NewDecoder(2)
	root := value.NewRoot()

	a, err := d.Object(root, `"A"`)
	require.NoError(t, err)
	assert.Equal([]string{"0"}, a.Keys())
	f, _ := a.Field("0")
	assert.Equal(65.0, f.Value.Float())

	b, err := d.Object(root, `"A"`)
	require.NoError(t, err)
	assert.NotSame(a, b)
	assert.Equal(1, d.Len())

	d.Bytes(`"B"`)
	d.Bytes(`"C"`)
	assert.Equal(2, d.Len())

	_, err = d.Bytes(`"\q"`)
	assert.True(errors.Is(err, ErrLiteral))
}
