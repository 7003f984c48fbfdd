package parser

import (
	"github.com/basm-script/bscp/pkg/script/lexer"
	"github.com/basm-script/bscp/pkg/script/value"
)

// object builds { member* }. Members are separated by line ends, ';' or ','.
// Ordinary members are evaluated with the new object as context; a member
// of the form .name = expr binds name as a temporary of parent. Temporaries
// left on the new object are removed when the block closes.
func (p *Parser) object(parent *value.Value) (*value.Value, error) {
	open := p.tok
	if !p.isPunct(objectOp.open()) {
		return nil, syntaxError(open, "expecting '%s'", objectOp.open())
	}
	obj := value.NewObject(parent)
	p.depth++
	p.advance()

	for {
		switch {
		case p.isPunct(objectOp.close()):
			p.depth--
			p.advance()
			obj.StripTemporaries()
			return obj, nil

		case p.tok.Kind == lexer.EOF:
			return nil, syntaxError(open, "unmatched '%s'", open.Raw)

		case p.tok.Kind == lexer.EOL, p.isPunct(";"), p.isPunct(","):
			p.advance()

		case p.temporaryAhead():
			if err := p.temporary(parent, obj); err != nil {
				return nil, err
			}

		default:
			if _, err := p.expr(obj, assignPriority); err != nil {
				return nil, err
			}
			if err := p.memberEnd(); err != nil {
				return nil, err
			}
		}
	}
}

// temporaryAhead reports whether the next tokens are '.' name '='.
func (p *Parser) temporaryAhead() bool {
	return p.isPunct(".") && p.peek(1).Kind == lexer.Word && p.peek(2).IsPunct("=")
}

// temporary parses .name = expr inside the block being built in obj and
// binds the result on parent.
func (p *Parser) temporary(parent, obj *value.Value) error {
	p.advance()
	name := p.tok
	p.advance()
	p.advance()

	v, err := p.expr(obj, assignPriority)
	if err != nil {
		return err
	}
	parent.SetTemporary(name.Raw, v)
	return p.memberEnd()
}

func (p *Parser) memberEnd() error {
	switch {
	case p.atStatementEnd(), p.isPunct(";"), p.isPunct(","), p.isPunct(objectOp.close()):
		return nil
	}
	return syntaxError(p.tok, "unexpected token")
}
