package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(src string) []Token {
	return New(strings.NewReader(src)).All()
}

func TestTokens(t *testing.T) {
	assert := assert.New(t)

	ts := lex(`x_1 = 0x1f + 2.5e3 * "a\"b" # comment
y`)
	want := []Token{
		{Word, "x_1", 1},
		{Punctuation, "=", 1},
		{Number, "0x1f", 1},
		{Punctuation, "+", 1},
		{Number, "2.5e3", 1},
		{Punctuation, "*", 1},
		{String, `"a\"b"`, 1},
		{EOL, "\n", 1},
		{Word, "y", 2},
		{EOF, "", 2},
	}
	assert.Equal(want, ts)
}

func TestPunctuators(t *testing.T) {
	assert := assert.New(t)

	var raws []string
	for _, tok := range lex("a<<=b>>c++ --d&&e||!f!=g.h[0]{}?:,;") {
		if tok.Kind == Punctuation {
			raws = append(raws, tok.Raw)
		}
	}
	assert.Equal([]string{"<<=", ">>", "++", "--", "&&", "||", "!", "!=", ".", "[", "]", "{", "}", "?", ":", ",", ";"}, raws)
}

func TestNumbers(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		src  string
		want []string
	}{
		{"12", []string{"12"}},
		{"1.5", []string{"1.5"}},
		{"1e+2", []string{"1e+2"}},
		{"0XAB", []string{"0XAB"}},
		{"1.x", []string{"1", ".", "x"}},
		{"3e", []string{"3", "e"}},
		{"7e-q", []string{"7", "e", "-", "q"}},
		{"a.0", []string{"a", ".", "0"}},
	}
	for _, tt := range tests {
		var raws []string
		for _, tok := range lex(tt.src) {
			if tok.Kind != EOF {
				raws = append(raws, tok.Raw)
			}
		}
		assert.Equal(tt.want, raws, tt.src)
	}
}

func TestBlankLines(t *testing.T) {
	assert := assert.New(t)

	ts := lex("a\n\n  # only a comment\r\n\nb\n")
	require.Len(t, ts, 5)
	assert.Equal(Token{EOL, "\n", 1}, ts[1])
	assert.Equal(Token{Word, "b", 5}, ts[2])
	assert.Equal(EOL, ts[3].Kind)
	assert.Equal(Token{EOF, "", 6}, ts[4])
}

func TestLiterals(t *testing.T) {
	assert := assert.New(t)

	ts := lex(`'it''s' "\\" "x\n`)
	assert.Equal(Token{String, `'it'`, 1}, ts[0])
	assert.Equal(Token{String, `'s'`, 1}, ts[1])
	assert.Equal(Token{String, `"\\"`, 1}, ts[2])

	l := New(strings.NewReader("\"open\n"))
	tok := l.Next()
	assert.Equal(Unknown, tok.Kind)
	assert.True(errors.Is(l.Err(), ErrToken))
	assert.Equal(EOL, l.Next().Kind)
}

func TestUnknownByte(t *testing.T) {
	l := New(strings.NewReader("a \x01 b"))
	ts := l.All()
	assert.Equal(t, Token{Unknown, "\x01", 1}, ts[1])
	assert.True(t, errors.Is(l.Err(), ErrToken))
}

func TestBalance(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, Balance("a = 1"))
	assert.Equal(1, Balance("a = {"))
	assert.Equal(0, Balance("f(x[1"))
	assert.Equal(2, Balance("a = { b = ({"))
	assert.Equal(0, Balance("{ s = \"{\" }"))
	assert.Equal(-1, Balance("}"))
}

func TestLongInput(t *testing.T) {
	src := strings.Repeat("abc ", BUFFSIZE)
	ts := lex(src)
	assert.Len(t, ts, BUFFSIZE+1)
	for _, tok := range ts[:BUFFSIZE] {
		assert.Equal(t, "abc", tok.Raw)
	}
}
