package eval

import (
	"fmt"
	"io"

	"github.com/luthersystems/scopelisp/pkg/symbol"
)

// DefaultMaxDepth is the evaluation depth limit used when no WithMaxDepth
// option is given.  Depth counts nested expression evaluations, so deep
// non-iterative recursion (e.g. walking a long list) is bounded by it.
const DefaultMaxDepth = 10000

// Config is a function that configures an Interp before its global frame is
// populated.
type Config func(in *Interp) error

// WithMaxDepth returns a Config that makes evaluation fail with
// ErrStackExhausted once expressions nest more than n deep.  A value of n
// less than 1 removes the limit, leaving the Go stack as the only bound.
func WithMaxDepth(n int) Config {
	return func(in *Interp) error {
		in.maxDepth = n
		return nil
	}
}

// WithStderr returns a Config that makes the interpreter write diagnostic
// output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(in *Interp) error {
		in.stderr = w
		return nil
	}
}

// WithTrace returns a Config that enables a diagnostic line on stderr for
// every scope reclamation.
func WithTrace(on bool) Config {
	return func(in *Interp) error {
		in.trace = on
		return nil
	}
}

// WithTable returns a Config that makes the interpreter intern atoms in
// table instead of a private copy of symbol.DefaultGlobalTable.  Tables may
// be shared between interpreters.
func WithTable(table symbol.Table) Config {
	return func(in *Interp) error {
		if table == nil {
			return fmt.Errorf("nil symbol table")
		}
		in.table = table
		return nil
	}
}

// WithArenaSize returns a Config that preallocates room for n cells.
func WithArenaSize(n int) Config {
	return func(in *Interp) error {
		if n < 0 {
			return fmt.Errorf("negative arena size: %d", n)
		}
		in.arenaSize = n
		return nil
	}
}
