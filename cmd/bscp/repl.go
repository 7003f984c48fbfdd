package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/basm-script/bscp/pkg/script/lexer"
	"github.com/basm-script/bscp/pkg/script/parser"
	"github.com/basm-script/bscp/pkg/script/snapshot"
)

const (
	prompt     = "> "
	continued  = ". "
	replBuffer = 1 << 20
)

// repl evaluates one statement at a time. Input lines are joined while an
// object literal is still open. Errors are printed and the session goes on.
func repl(in *parser.Interpreter, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), replBuffer)

	var src strings.Builder
	fmt.Fprint(w, prompt)
	for sc.Scan() {
		src.WriteString(sc.Text())
		src.WriteByte('\n')
		if lexer.Balance(src.String()) > 0 {
			fmt.Fprint(w, continued)
			continue
		}

		v, err := in.Exec(context.Background(), strings.NewReader(src.String()))
		src.Reset()
		if err != nil {
			fmt.Fprintln(w, err)
		} else {
			fmt.Fprintln(w, snapshot.Format(v))
		}
		fmt.Fprint(w, prompt)
	}
	fmt.Fprintln(w)
	return sc.Err()
}
