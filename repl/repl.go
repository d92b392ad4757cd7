// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/luthersystems/scopelisp/pkg/eval"
	"github.com/luthersystems/scopelisp/pkg/reader"
	"github.com/luthersystems/scopelisp/pkg/sexp"
)

// RunRepl runs a simple repl.  Each complete expression is evaluated at top
// level, so scope is reclaimed between inputs.
func RunRepl(prompt string, configs ...eval.Config) error {
	in, err := eval.New(configs...)
	if err != nil {
		return err
	}

	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err != nil && err != readline.ErrInterrupt {
			break
		}
		if err == readline.ErrInterrupt {
			line = nil
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) != 0 {
			complete, err := evalLine(in, rl.Stdout(), line)
			if err != nil {
				errln(err)
				continue
			}
			if !complete {
				buf = line
				rl.SetPrompt(contPrompt)
			}
		}
	}
	if err != io.EOF {
		return err
	}
	errln("done")
	return nil
}

// evalLine evaluates the expressions in line and prints their values to w.
// evalLine returns false if line ends inside an unclosed list.
func evalLine(in *eval.Interp, w io.Writer, line []byte) (bool, error) {
	prog, err := in.Read("repl", strings.NewReader(string(line)))
	if reader.Incomplete(err) {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	err = in.RunEach(prog, func(v sexp.Value) error {
		_, err := in.Format(w, v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w)
		return err
	})
	return true, err
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
