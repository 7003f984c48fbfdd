// Package lexer turns script source into a pull-based stream of tokens.
package lexer

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrToken = errors.New("malformed token")

func New(fd io.Reader) *Lexer {
	return &Lexer{
		fd:   fd,
		line: 1,
		buffer: &lexBuffer{
			buffer: make([]byte, BUFFSIZE),
		},
		rollBuffer: &lexRollBuffer{
			buffer: make([]int, ROLLSIZE),
		},
	}
}

// Err returns the first read error or malformed-token error seen.
func (l *Lexer) Err() error {
	return l.err
}

func (wr *lexRollBuffer) putc(c int) int {
	for i := ROLLSIZE - 1; i > 0; i-- {
		wr.buffer[i] = wr.buffer[i-1]
	}
	wr.buffer[0] = c
	return c
}

// getc returns a pushed back character, or ret when there is none.
func (wr *lexRollBuffer) getc() int {
	if wr.cnt > 0 {
		wr.cnt--
		return wr.buffer[wr.cnt]
	}
	return ret
}

func (wr *lexRollBuffer) ungetc() {
	if wr.cnt < ROLLSIZE {
		wr.cnt++
	}
}

func (l *Lexer) getc() int {
	if c := l.rollBuffer.getc(); c != ret {
		return c
	}
	if l.buffer.pos == l.buffer.lim {
		n, err := l.fd.Read(l.buffer.buffer)
		if err != nil && err != io.EOF && l.err == nil {
			l.err = err
		}
		if n == 0 {
			return l.rollBuffer.putc(eof)
		}
		l.buffer.pos, l.buffer.lim = 0, n
	}
	c := l.rollBuffer.putc(int(l.buffer.buffer[l.buffer.pos]))
	l.buffer.pos++
	return c
}

func (l *Lexer) ungetc() {
	l.rollBuffer.ungetc()
}

func (l *Lexer) token(kind Kind, raw string) Token {
	return Token{Kind: kind, Raw: raw, Line: l.line}
}

// Next returns the next token. At the end of input it keeps returning EOF.
func (l *Lexer) Next() Token {
	for {
		c := l.getc()
		switch {
		case isEOF(c):
			return l.token(EOF, "")
		case isSpace(c):
		case isComment(c):
			l.skipComment()
		case isNewline(c):
			t := l.token(EOL, "\n")
			l.line++
			l.skipNewline()
			return t
		case isAlpha(c):
			return l.getWord(c)
		case isDigit(c):
			return l.getDigit(c)
		case isQuotation(c):
			return l.getLiteral(c)
		case isPunct(c):
			return l.getPunct(c)
		default:
			l.fail("unexpected character %#x", c)
			return l.token(Unknown, string([]byte{byte(c)}))
		}
	}
}

func (l *Lexer) fail(format string, args ...interface{}) {
	if l.err == nil {
		l.err = fmt.Errorf("line %d: %w: %s", l.line, ErrToken, fmt.Sprintf(format, args...))
	}
}

func (l *Lexer) skipComment() {
	for {
		if c := l.getc(); isEOF(c) || isNewline(c) {
			l.ungetc()
			return
		}
	}
}

// Skip blank lines, and blank lines holding only spaces or comments.
func (l *Lexer) skipNewline() {
	for {
		c := l.getc()
		switch {
		case isNewline(c):
			l.line++
		case isSpace(c):
		case isComment(c):
			l.skipComment()
		default:
			l.ungetc()
			return
		}
	}
}

func (l *Lexer) getWord(a int) Token {
	word := []byte{byte(a)}
	for {
		if c := l.getc(); !isAlnum(c) {
			l.ungetc()
			return l.token(Word, string(word))
		} else {
			word = append(word, byte(c))
		}
	}
}

// getLiteral reads a quoted literal. Escapes are kept as written; only the
// character after a backslash is protected from ending the literal.
func (l *Lexer) getLiteral(a int) Token {
	s := []byte{byte(a)}
	for {
		c := l.getc()
		switch {
		case isEOF(c), isNewline(c):
			l.ungetc()
			l.fail("unterminated literal %s", s)
			return l.token(Unknown, string(s))
		case c == '\\':
			s = append(s, byte(c))
			if c = l.getc(); isEOF(c) || isNewline(c) {
				l.ungetc()
				continue
			}
			s = append(s, byte(c))
		case c == a:
			return l.token(String, string(append(s, byte(c))))
		default:
			s = append(s, byte(c))
		}
	}
}

// getDigit reads a decimal number with optional fraction and exponent, or
// a 0x hexadecimal integer.
func (l *Lexer) getDigit(a int) Token {
	word := []byte{byte(a)}
	c := l.getc()
	if a == '0' && (c == 'x' || c == 'X') {
		word = append(word, byte(c))
		for c = l.getc(); isXdigit(c); c = l.getc() {
			word = append(word, byte(c))
		}
		l.ungetc()
		return l.token(Number, string(word))
	}
	for ; isDigit(c); c = l.getc() {
		word = append(word, byte(c))
	}
	if c == '.' {
		if d := l.getc(); isDigit(d) {
			word = append(word, '.')
			for c = d; isDigit(c); c = l.getc() {
				word = append(word, byte(c))
			}
		} else {
			l.ungetc()
		}
	}
	if c == 'e' || c == 'E' {
		exp := []byte{byte(c)}
		d := l.getc()
		if d == '+' || d == '-' {
			exp = append(exp, byte(d))
			d = l.getc()
		}
		if isDigit(d) {
			for ; isDigit(d); d = l.getc() {
				exp = append(exp, byte(d))
			}
			word = append(word, exp...)
			c = d
		} else {
			// not an exponent; give back what was read after the digits
			for i := 0; i < len(exp); i++ {
				l.ungetc()
			}
		}
	}
	l.ungetc()
	return l.token(Number, string(word))
}

// getPunct reads the longest operator spelling starting with a.
func (l *Lexer) getPunct(a int) Token {
	s := string(rune(a))
	for {
		c := l.getc()
		if isEOF(c) || !punctuators[s+string(rune(c))] {
			l.ungetc()
			return l.token(Punctuation, s)
		}
		s += string(rune(c))
	}
}

// All collects the tokens up to and including EOF.
func (l *Lexer) All() []Token {
	var ts []Token
	for {
		t := l.Next()
		ts = append(ts, t)
		if t.Kind == EOF {
			return ts
		}
	}
}

// Balance reports how many '{' in src are still open. Object literals are
// the only construct that spans lines, so a front end uses it to tell
// whether more input lines are needed.
func Balance(src string) int {
	n := 0
	for _, t := range New(strings.NewReader(src)).All() {
		if t.Kind != Punctuation {
			continue
		}
		switch t.Raw {
		case "{":
			n++
		case "}":
			n--
		}
	}
	return n
}
