// Package parser evaluates scripts in a single pass: parsing an expression
// is evaluating it, driven by a declarative operator table.
package parser

import (
	"io"

	"github.com/basm-script/bscp/pkg/script/lexer"
	"github.com/basm-script/bscp/pkg/script/strlit"
	"github.com/basm-script/bscp/pkg/script/value"
	"go.uber.org/zap"
)

// Parser holds the token state of one parse. Nested blocks and
// parenthesized expressions re-enter the same Parser.
type Parser struct {
	lex   *lexer.Lexer
	tok   lexer.Token
	ahead []lexer.Token
	depth int // open object literals

	strs *strlit.Decoder
	log  *zap.Logger
}

type Option func(*Parser)

func WithDecoder(d *strlit.Decoder) Option {
	return func(p *Parser) { p.strs = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// NewParser reads tokens from r and positions on the first one.
func NewParser(r io.Reader, opts ...Option) *Parser {
	p := &Parser{lex: lexer.New(r)}
	for _, opt := range opts {
		opt(p)
	}
	if p.strs == nil {
		p.strs = strlit.NewDecoder(0)
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	p.advance()
	return p
}

// Token returns the current token.
func (p *Parser) Token() lexer.Token {
	return p.tok
}

func (p *Parser) advance() {
	if len(p.ahead) > 0 {
		p.tok, p.ahead = p.ahead[0], p.ahead[1:]
		return
	}
	p.tok = p.lex.Next()
}

// peek returns the token n positions after the current one.
func (p *Parser) peek(n int) lexer.Token {
	for len(p.ahead) < n {
		p.ahead = append(p.ahead, p.lex.Next())
	}
	return p.ahead[n-1]
}

func (p *Parser) isPunct(raw string) bool {
	return p.tok.IsPunct(raw)
}

// atStatementEnd reports whether the current token may end a statement.
func (p *Parser) atStatementEnd() bool {
	switch p.tok.Kind {
	case lexer.EOL, lexer.EOF:
		return true
	}
	return false
}

// Expression evaluates one expression in obj, stopping at the first token
// that cannot continue it.
func (p *Parser) Expression(obj *value.Value) (*value.Value, error) {
	return p.expr(obj, loosest)
}

// Object evaluates an object literal; the current token must be '{'.
func (p *Parser) Object(parent *value.Value) (*value.Value, error) {
	return p.object(parent)
}

// Skip discards tokens up to the end of the current statement, stepping
// over the rest of any object literal the failure happened in.
func (p *Parser) Skip() {
	for {
		switch {
		case p.tok.Kind == lexer.EOF:
			p.depth = 0
			return
		case p.tok.Kind == lexer.EOL && p.depth <= 0:
			p.depth = 0
			return
		case p.isPunct("{"):
			p.depth++
		case p.isPunct("}"):
			p.depth--
		}
		p.advance()
	}
}
