// Package strlit decodes the literal constants of a script: escaped string
// literals and numeric literals.
package strlit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var ErrLiteral = errors.New("invalid literal")

// Unquote strips the surrounding quotes of a raw string token and decodes
// the escapes between them.
func Unquote(raw string) ([]byte, error) {
	if len(raw) < 2 || raw[0] != raw[len(raw)-1] || (raw[0] != '"' && raw[0] != '\'') {
		return nil, fmt.Errorf("%w: unterminated string %s", ErrLiteral, raw)
	}
	return Decode(raw[1 : len(raw)-1])
}

// Decode converts escaped source text into raw bytes.
//
//	\' \" \? \\           the character itself
//	\a \b \f \n \r \t \v  control codes
//	\xH...                one or more hex digits, one byte
//	\uHHHH \UHHHHHHHH     a code point, UTF-8 encoded
//	\N \NN \NNN           octal, one byte
func Decode(s string) ([]byte, error) {
	dest := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		esc := strings.IndexByte(s[i:], '\\')
		if esc < 0 {
			dest = append(dest, s[i:]...)
			break
		}
		dest = append(dest, s[i:i+esc]...)
		i += esc + 1
		if i >= len(s) {
			return nil, fmt.Errorf("%w: incomplete escape sequence", ErrLiteral)
		}

		var err error
		switch c := s[i]; c {
		case '\'', '"', '?', '\\':
			dest = append(dest, c)
			i++
		case 'a':
			dest, i = append(dest, '\a'), i+1
		case 'b':
			dest, i = append(dest, '\b'), i+1
		case 'f':
			dest, i = append(dest, '\f'), i+1
		case 'n':
			dest, i = append(dest, '\n'), i+1
		case 'r':
			dest, i = append(dest, '\r'), i+1
		case 't':
			dest, i = append(dest, '\t'), i+1
		case 'v':
			dest, i = append(dest, '\v'), i+1
		case 'x':
			dest, i, err = decodeHex(dest, s, i+1)
		case 'u':
			dest, i, err = decodeRune(dest, s, i+1, 4)
		case 'U':
			dest, i, err = decodeRune(dest, s, i+1, 8)
		default:
			dest, i, err = decodeOctal(dest, s, i)
		}
		if err != nil {
			return nil, err
		}
	}
	return dest, nil
}

func decodeHex(dest []byte, s string, i int) ([]byte, int, error) {
	var n uint64
	start := i
	for ; i < len(s) && isXdigit(s[i]); i++ {
		n = n<<4 | uint64(unhex(s[i]))
	}
	if i == start {
		return nil, i, fmt.Errorf("%w: \\x used with no following hex digits", ErrLiteral)
	}
	return append(dest, byte(n)), i, nil
}

func decodeRune(dest []byte, s string, i, digits int) ([]byte, int, error) {
	if len(s)-i < digits {
		return nil, i, fmt.Errorf("%w: expecting %d hex digits", ErrLiteral, digits)
	}
	var n uint32
	for j := 0; j < digits; j++ {
		c := s[i+j]
		if !isXdigit(c) {
			return nil, i, fmt.Errorf("%w: invalid hex digit %q", ErrLiteral, c)
		}
		n = n<<4 | uint32(unhex(c))
	}
	if n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
		return nil, i, fmt.Errorf("%w: invalid code point U+%X", ErrLiteral, n)
	}
	return utf8.AppendRune(dest, rune(n)), i + digits, nil
}

func decodeOctal(dest []byte, s string, i int) ([]byte, int, error) {
	if !isOdigit(s[i]) {
		return nil, i, fmt.Errorf("%w: unknown escape sequence \\%c", ErrLiteral, s[i])
	}
	var n int
	for j := 0; j < 3 && i < len(s) && isOdigit(s[i]); j, i = j+1, i+1 {
		n = n<<3 | int(s[i]-'0')
	}
	return append(dest, byte(n)), i, nil
}

func isXdigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isOdigit(c byte) bool {
	return '0' <= c && c <= '7'
}

func unhex(c byte) byte {
	switch {
	case c <= '9':
		return c - '0'
	case c >= 'a':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// ParseNumber converts a numeric literal. Decimal and hexadecimal floats are
// accepted as well as 0x prefixed integers.
func ParseNumber(raw string) (float64, error) {
	n, err := strconv.ParseFloat(raw, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return n, nil
	}
	if u, uerr := strconv.ParseUint(raw, 0, 64); uerr == nil {
		return float64(u), nil
	}
	return 0, fmt.Errorf("%w: invalid numeric constant %s", ErrLiteral, raw)
}
