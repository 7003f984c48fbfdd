package parser

import (
	"errors"
	"fmt"

	"github.com/basm-script/bscp/pkg/script/lexer"
)

var ErrSyntax = errors.New("syntax error")

// Error reports a failed statement together with the token it failed at.
type Error struct {
	Token lexer.Token
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Token.Line, e.Err, e.Token)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func syntaxError(tok lexer.Token, format string, args ...interface{}) error {
	return &Error{Token: tok, Err: fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))}
}

// wrap attaches tok to err unless err already carries a token.
func wrap(tok lexer.Token, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Token: tok, Err: err}
}
