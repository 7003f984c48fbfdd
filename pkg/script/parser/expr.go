package parser

import (
	"github.com/basm-script/bscp/pkg/script/lexer"
	"github.com/basm-script/bscp/pkg/script/strlit"
	"github.com/basm-script/bscp/pkg/script/value"
	"go.uber.org/zap"
)

type frame struct {
	op      *Operator
	tok     lexer.Token
	pending bool // opener or '?' still waiting for its closing spelling
}

// evaluation is the state of one expression: operands, operators, and the
// positions of the circumfix openers among the operators.
type evaluation struct {
	p         *Parser
	ctx       *value.Value
	limit     int
	operands  []*value.Value
	operators []frame
	openers   []int
}

// expr evaluates the expression starting at the current token in ctx.
// Operators looser than limit end the expression unless they appear inside
// a circumfix pair or a conditional.
func (p *Parser) expr(ctx *value.Value, limit int) (*value.Value, error) {
	e := &evaluation{p: p, ctx: ctx, limit: limit}
	start := p.tok

	expectOperand := true
	for {
		var (
			more bool
			err  error
		)
		if expectOperand {
			more, expectOperand, err = e.operand()
		} else {
			more, expectOperand, err = e.operator()
		}
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	for i := len(e.operators) - 1; i >= 0; i-- {
		if f := e.operators[i]; f.pending {
			if f.op.Fixity == Ternary {
				return nil, syntaxError(f.tok, "missing ':' in conditional")
			}
			return nil, syntaxError(f.tok, "unmatched '%s'", f.tok.Raw)
		}
	}
	if len(e.operands) == 0 && len(e.operators) == 0 {
		return nil, syntaxError(p.tok, "empty expression")
	}
	if expectOperand {
		return nil, syntaxError(e.operators[len(e.operators)-1].tok, "dangling operator")
	}
	for len(e.operators) > 0 {
		if err := e.apply(e.pop()); err != nil {
			return nil, err
		}
	}
	if len(e.operands) != 1 {
		return nil, syntaxError(start, "malformed expression")
	}
	return e.operands[0], nil
}

// operand handles the current token where an operand is expected.
func (e *evaluation) operand() (more, expectOperand bool, err error) {
	p := e.p
	t := p.tok
	switch t.Kind {
	case lexer.Word:
		if e.memberNamePending() {
			e.push(value.NewSymbol(e.ctx, t.Raw))
		} else {
			e.push(e.ctx.Resolve(t.Raw))
		}
		p.advance()
		return true, false, nil

	case lexer.Number:
		n, err := strlit.ParseNumber(t.Raw)
		if err != nil {
			return false, false, wrap(t, err)
		}
		e.push(value.NewNumber(e.ctx, n))
		p.advance()
		return true, false, nil

	case lexer.String:
		v, err := p.strs.Object(e.ctx, t.Raw)
		if err != nil {
			return false, false, wrap(t, err)
		}
		e.push(v)
		p.advance()
		return true, false, nil

	case lexer.Punctuation:
		if t.Raw == objectOp.open() {
			v, err := p.object(e.ctx)
			if err != nil {
				return false, false, err
			}
			e.push(v)
			return true, false, nil
		}
		if op, ok := prefixOps[t.Raw]; ok {
			e.operators = append(e.operators, frame{op: op, tok: t})
			p.advance()
			return true, true, nil
		}
		if op, ok := groupOps[t.Raw]; ok {
			e.openers = append(e.openers, len(e.operators))
			e.operators = append(e.operators, frame{op: op, tok: t, pending: true})
			p.advance()
			return true, true, nil
		}
		if e.closesEmpty(t) {
			f := e.pop()
			e.openers = e.openers[:len(e.openers)-1]
			if f.op.Action == nil || f.op.close() != ")" {
				return false, false, syntaxError(t, "empty expression")
			}
			if err := e.applyN(f, 1); err != nil {
				return false, false, err
			}
			p.advance()
			return true, false, nil
		}
	}

	if e.settleSuffix() {
		return true, false, nil
	}
	return false, true, nil
}

// operator handles the current token where an operator is expected.
func (e *evaluation) operator() (more, expectOperand bool, err error) {
	p := e.p
	t := p.tok
	if t.Kind != lexer.Punctuation {
		return false, false, nil
	}

	if n := len(e.openers); n > 0 && t.Raw == e.operators[e.openers[n-1]].op.close() {
		if err := e.close(); err != nil {
			return false, false, err
		}
		p.advance()
		return true, false, nil
	}

	if _, ok := ternaryOps[t.Raw]; ok {
		idx := e.pendingTernary()
		if idx < 0 {
			return false, false, nil
		}
		for len(e.operators)-1 > idx {
			if err := e.apply(e.pop()); err != nil {
				return false, false, err
			}
		}
		e.operators[idx].pending = false
		p.advance()
		return true, true, nil
	}

	if op, ok := infixOps[t.Raw]; ok {
		if op.Priority > e.limit && !e.nested() {
			return false, false, nil
		}
		if err := e.reduce(op); err != nil {
			return false, false, err
		}
		f := frame{op: op, tok: t}
		switch op.Fixity {
		case Circumfix:
			f.pending = true
			e.openers = append(e.openers, len(e.operators))
		case Ternary:
			f.pending = true
		}
		e.operators = append(e.operators, f)
		p.advance()
		return true, true, nil
	}

	if op, ok := suffixOps[t.Raw]; ok {
		if op.Priority > e.limit && !e.nested() {
			return false, false, nil
		}
		if err := e.reduce(op); err != nil {
			return false, false, err
		}
		if err := e.apply(frame{op: op, tok: t}); err != nil {
			return false, false, err
		}
		p.advance()
		return true, false, nil
	}

	return false, false, nil
}

func (e *evaluation) push(v *value.Value) {
	e.operands = append(e.operands, v)
}

func (e *evaluation) pop() frame {
	f := e.operators[len(e.operators)-1]
	e.operators = e.operators[:len(e.operators)-1]
	return f
}

func (e *evaluation) top() (frame, bool) {
	if len(e.operators) == 0 {
		return frame{}, false
	}
	return e.operators[len(e.operators)-1], true
}

// nested reports whether an opener or a conditional is still open.
func (e *evaluation) nested() bool {
	for _, f := range e.operators {
		if f.pending {
			return true
		}
	}
	return false
}

// memberNamePending reports whether the operand being read names a member,
// as the b in a.b or .b does.
func (e *evaluation) memberNamePending() bool {
	f, ok := e.top()
	return ok && !f.pending && f.op.open() == "." && f.op.Fixity != Circumfix
}

// pendingTernary returns the index of the '?' a ':' belongs to, or -1 when
// the innermost open frame is not a conditional.
func (e *evaluation) pendingTernary() int {
	for i := len(e.operators) - 1; i >= 0; i-- {
		if f := e.operators[i]; f.pending {
			if f.op.Fixity == Ternary {
				return i
			}
			return -1
		}
	}
	return -1
}

// closesEmpty reports whether t closes an opener with nothing inside.
func (e *evaluation) closesEmpty(t lexer.Token) bool {
	n := len(e.openers)
	return n > 0 && e.openers[n-1] == len(e.operators)-1 && t.Raw == e.operators[e.openers[n-1]].op.close()
}

// settleSuffix turns a trailing separator such as the ';' in "a = 1;" into
// its suffix form when no operand follows it.
func (e *evaluation) settleSuffix() bool {
	f, ok := e.top()
	if !ok || f.pending || f.op.Fixity != Binary {
		return false
	}
	op, ok := suffixOps[f.op.open()]
	if !ok || len(e.operands) == 0 {
		return false
	}
	e.pop()
	e.operators = append(e.operators, frame{op: op, tok: f.tok})
	return true
}

// reduce applies every operator on the stack that binds before next.
func (e *evaluation) reduce(next *Operator) error {
	for {
		f, ok := e.top()
		if !ok || f.pending || !f.op.bindsBefore(next) {
			return nil
		}
		e.pop()
		if err := e.apply(f); err != nil {
			return err
		}
	}
}

// close applies everything inside the innermost opener, then the opener's
// own action when it has one.
func (e *evaluation) close() error {
	idx := e.openers[len(e.openers)-1]
	for len(e.operators)-1 > idx {
		f := e.pop()
		if f.pending {
			return syntaxError(f.tok, "missing ':' in conditional")
		}
		if err := e.apply(f); err != nil {
			return err
		}
	}
	e.openers = e.openers[:len(e.openers)-1]
	opener := e.pop()
	if opener.op.Action == nil {
		return nil
	}
	return e.apply(opener)
}

func (e *evaluation) apply(f frame) error {
	return e.applyN(f, f.op.arity())
}

func (e *evaluation) applyN(f frame, n int) error {
	if len(e.operands) < n {
		return syntaxError(f.tok, "not enough operands for '%s'", f.tok.Raw)
	}
	args := make([]*value.Value, n)
	copy(args, e.operands[len(e.operands)-n:])
	e.operands = e.operands[:len(e.operands)-n]

	if ce := e.p.log.Check(zap.DebugLevel, "reduce"); ce != nil {
		ce.Write(zap.String("op", f.tok.Raw), zap.Int("priority", f.op.Priority), zap.Int("line", f.tok.Line))
	}
	v, err := f.op.Action(e.ctx, args...)
	if err != nil {
		return wrap(f.tok, err)
	}
	e.push(v)
	return nil
}
