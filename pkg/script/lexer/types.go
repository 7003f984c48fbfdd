package lexer

import (
	"io"
	"strconv"
)

const (
	eof = -1
	ret = -2
)

const (
	ROLLSIZE = 4
	BUFFSIZE = 1024
)

type Kind int

const (
	Word Kind = iota
	Number
	String
	Punctuation
	EOL
	EOF
	Unknown
)

var kindNames = [...]string{
	Word:        "word",
	Number:      "number",
	String:      "string",
	Punctuation: "punctuation",
	EOL:         "eol",
	EOF:         "eof",
	Unknown:     "unknown",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Token is one lexical unit. Raw is the source text of the token; string
// tokens keep their quotes and escapes.
type Token struct {
	Kind Kind
	Raw  string
	Line int
}

func (t Token) Is(kind Kind, raw string) bool {
	return t.Kind == kind && t.Raw == raw
}

// IsPunct reports whether t is the punctuation spelled raw.
func (t Token) IsPunct(raw string) bool {
	return t.Is(Punctuation, raw)
}

func (t Token) String() string {
	switch t.Kind {
	case EOL:
		return "end of line"
	case EOF:
		return "end of file"
	}
	return t.Raw
}

// punctuators are the multi-character operator spellings. Every prefix of
// an entry is itself an entry or a single character.
var punctuators = map[string]bool{
	"++": true, "--": true, "&&": true, "||": true,
	"==": true, "!=": true, "<=": true, ">=": true,
	"<<": true, ">>": true, "<<=": true, ">>=": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "^=": true, "|=": true,
}

// Lexer splits a script into tokens.
type Lexer struct {
	err        error
	fd         io.Reader
	line       int
	rollBuffer *lexRollBuffer
	buffer     *lexBuffer
}

type lexRollBuffer struct {
	cnt    int // characters pushed back, at most ROLLSIZE
	buffer []int
}

type lexBuffer struct {
	pos    int
	lim    int
	buffer []byte
}
