// Package evaltest runs sequences of expressions against fresh interpreters
// and compares their printed results.
package evaltest

import (
	"errors"
	"strings"
	"testing"

	"github.com/luthersystems/scopelisp/pkg/eval"
)

// TestSequence is a sequence of expressions which are evaluated sequentially
// by one eval.Interp.  Each expression is read and evaluated as a top-level
// form, so scope is reclaimed between expressions.
type TestSequence []struct {
	Expr   string // an expression
	Result string // the printed result, ignored when Err is set
	Err    error  // an error the evaluation must match with errors.Is
}

// TestSuite is a set of named TestSequences.
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on an isolated eval.Interp
// created with configs.
func RunTestSuite(t *testing.T, tests TestSuite, configs ...eval.Config) {
	t.Helper()
	for i, test := range tests {
		in, err := eval.New(configs...)
		if err != nil {
			t.Fatalf("test %d %q: %v", i, test.Name, err)
		}
		for j, expr := range test.TestSequence {
			prog, err := in.Read(test.Name, strings.NewReader(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			n, _ := in.Heap().Len(prog)
			if n != 1 {
				t.Errorf("test %d %q: expr %d: expected one expression (got %d)", i, test.Name, j, n)
				continue
			}
			v, err := in.Run(prog)
			if expr.Err != nil {
				if !errors.Is(err, expr.Err) {
					t.Errorf("test %d %q: expr %d: expected error %v (got %v)", i, test.Name, j, expr.Err, err)
				}
				continue
			}
			if err != nil {
				t.Errorf("test %d %q: expr %d: %v", i, test.Name, j, err)
				continue
			}
			result := in.FormatString(v)
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}
