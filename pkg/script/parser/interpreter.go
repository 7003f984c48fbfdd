package parser

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/basm-script/bscp/pkg/script/lexer"
	"github.com/basm-script/bscp/pkg/script/strlit"
	"github.com/basm-script/bscp/pkg/script/value"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const logDirective = "log"

// Interpreter runs programs against one root object. A program is one
// expression per line; a line of the form  log "text"  writes the decoded
// text to the interpreter's output.
type Interpreter struct {
	root *value.Value
	strs *strlit.Decoder
	log  *zap.Logger
	out  io.Writer

	limiter *rate.Limiter
}

type InterpreterOption func(*Interpreter)

func WithOutput(w io.Writer) InterpreterOption {
	return func(in *Interpreter) { in.out = w }
}

func WithInterpreterLogger(l *zap.Logger) InterpreterOption {
	return func(in *Interpreter) { in.log = l }
}

// WithLiteralCache sets how many decoded string literals are kept.
func WithLiteralCache(size int) InterpreterOption {
	return func(in *Interpreter) { in.strs = strlit.NewDecoder(size) }
}

// WithRateLimit throttles execution to r statements per second with the
// given burst. A host running untrusted scripts uses it together with a
// context deadline.
func WithRateLimit(r rate.Limit, burst int) InterpreterOption {
	return func(in *Interpreter) { in.limiter = rate.NewLimiter(r, burst) }
}

func New(opts ...InterpreterOption) *Interpreter {
	in := &Interpreter{
		root: value.NewRoot(),
		log:  zap.NewNop(),
		out:  io.Discard,
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.strs == nil {
		in.strs = strlit.NewDecoder(0)
	}
	return in
}

// Root returns the outermost object.
func (in *Interpreter) Root() *value.Value {
	return in.root
}

// Eval runs src and returns the value of its last statement.
func (in *Interpreter) Eval(src string) (*value.Value, error) {
	return in.Exec(context.Background(), strings.NewReader(src))
}

// Exec runs the program read from r. A failed statement is reported and
// skipped; the returned error joins every failure. Temporaries bound on the
// root are dropped when the program ends.
func (in *Interpreter) Exec(ctx context.Context, r io.Reader) (*value.Value, error) {
	log := in.log.With(zap.String("run", uuid.Must(uuid.NewV4()).String()))
	p := NewParser(r, WithDecoder(in.strs), WithLogger(log))
	defer in.root.StripTemporaries()

	var (
		last *value.Value
		errs []error
	)
	for {
		for p.tok.Kind == lexer.EOL {
			p.advance()
		}
		if p.tok.Kind == lexer.EOF {
			break
		}
		if err := in.wait(ctx); err != nil {
			errs = append(errs, err)
			break
		}

		v, err := in.statement(p)
		if err != nil {
			log.Warn("statement failed", zap.Int("line", p.tok.Line), zap.Error(err))
			errs = append(errs, err)
			p.Skip()
			continue
		}
		last = v
	}
	if err := p.lex.Err(); err != nil {
		errs = append(errs, err)
	}
	if last == nil {
		last = value.NewNull(in.root)
	}
	return last, errors.Join(errs...)
}

func (in *Interpreter) wait(ctx context.Context) error {
	if in.limiter != nil {
		return in.limiter.Wait(ctx)
	}
	return ctx.Err()
}

func (in *Interpreter) statement(p *Parser) (*value.Value, error) {
	if p.tok.Is(lexer.Word, logDirective) && p.peek(1).Kind == lexer.String {
		return in.directive(p)
	}
	v, err := p.Expression(in.root)
	if err != nil {
		return nil, err
	}
	if !p.atStatementEnd() {
		return nil, syntaxError(p.tok, "unexpected token")
	}
	return v, nil
}

// directive handles  log "text".
func (in *Interpreter) directive(p *Parser) (*value.Value, error) {
	p.advance()
	t := p.tok
	msg, err := in.strs.Bytes(t.Raw)
	if err != nil {
		return nil, wrap(t, err)
	}
	p.advance()
	if !p.atStatementEnd() {
		return nil, syntaxError(p.tok, "expecting an end of line")
	}
	if _, err := in.out.Write(msg); err != nil {
		return nil, err
	}
	p.log.Info("log directive", zap.Int("line", t.Line), zap.Int("bytes", len(msg)))
	return value.FromBytes(in.root, msg), nil
}
