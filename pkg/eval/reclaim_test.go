package eval_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/scopelisp/pkg/environ"
	"github.com/luthersystems/scopelisp/pkg/eval"
	"github.com/luthersystems/scopelisp/pkg/sexp"
)

func TestReleaseScopeFreesGarbage(t *testing.T) {
	in, err := eval.New()
	require.NoError(t, err)
	assert.Equal(t, 0, in.Heap().Live())

	v, err := in.EvalString("test", "(head '(a b c))")
	require.NoError(t, err)
	assert.Equal(t, "a", in.FormatString(v))
	assert.Equal(t, 0, in.Heap().Live())
	assert.Equal(t, 1, in.Chain().Len())

	v, err = in.EvalString("test", "((lambda (x) (cons x x)) 'a)")
	require.NoError(t, err)
	// only the result survives
	assert.Equal(t, "(a . a)", in.FormatString(v))
	assert.Equal(t, 1, in.Heap().Live())
	assert.Equal(t, 1, in.Chain().Len())

	_, err = in.EvalString("test", "'b")
	require.NoError(t, err)
	assert.Equal(t, 0, in.Heap().Live())
}

func TestReleaseScopeKeepsBindings(t *testing.T) {
	in, err := eval.New()
	require.NoError(t, err)

	_, err = in.EvalString("test", "(label x '(a (b c)))")
	require.NoError(t, err)
	x, ok := in.Root().Get(in.Table().Intern("x"))
	require.True(t, ok)
	h, ok := sexp.GetHandle(x)
	require.True(t, ok)
	assert.Equal(t, 4, in.Heap().Live())

	_, err = in.EvalString("test", `
		(list 'garbage (cons 'more 'garbage))
		((lambda (y) (cons y y)) '(d e f))
	`)
	require.NoError(t, err)
	assert.True(t, in.Heap().Valid(h))
	assert.Equal(t, "(a (b c))", in.FormatString(x))

	live := in.MarkReachable(in.Root())
	assert.Len(t, live, 4)
	assert.True(t, live.Has(h))
}

func TestReleaseScopeProgramRest(t *testing.T) {
	in, err := eval.New()
	require.NoError(t, err)

	// Each form is reclaimed before the next runs.
	v, err := in.EvalString("test", `
		(label f (lambda (x) (list x x)))
		(list 'a 'b 'c)
		(f '(d))
	`)
	require.NoError(t, err)
	assert.Equal(t, "((d) (d))", in.FormatString(v))
}

func TestReleaseScopeCursor(t *testing.T) {
	in, err := eval.New()
	require.NoError(t, err)

	cur := in.Mark()
	a, b := in.Atom("a"), in.Atom("b")
	kept := in.List(a, b)
	in.List(b, a, b)
	stats, err := in.ReleaseScope(cur, kept)
	require.NoError(t, err)
	assert.Equal(t, eval.ReclaimStats{Frames: 0, Freed: 3, Live: 2}, stats)
	assert.Equal(t, "(a b)", in.FormatString(kept))

	stats, err = in.ReleaseScope(cur)
	require.NoError(t, err)
	assert.Equal(t, eval.ReclaimStats{Frames: 0, Freed: 2, Live: 0}, stats)
}

func TestReleaseScopeFrames(t *testing.T) {
	in, err := eval.New()
	require.NoError(t, err)

	prog, err := in.Read("test", bytes.NewBufferString(`
		(defun f (x) (g x))
		(defun g (y) (cons y y))
	`))
	require.NoError(t, err)
	_, err = in.Run(prog)
	require.NoError(t, err)

	cur := in.Mark()
	call := in.List(in.Atom("f"), in.List(in.Atom("quote"), in.Atom("a")))
	v, err := in.Eval(in.Root(), call)
	require.NoError(t, err)
	assert.Equal(t, 3, in.Chain().Len())

	stats, err := in.ReleaseScope(cur, v)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Frames)
	assert.Equal(t, cur.Height(), in.Chain().Len())
	assert.Equal(t, "(a . a)", in.FormatString(v))
}

func TestReleaseScopeStaleCursor(t *testing.T) {
	in, err := eval.New()
	require.NoError(t, err)

	outer := in.Mark()
	in.Chain().Extend(in.Root(), environ.NewBindings(0))
	inner := in.Mark()
	_, err = in.ReleaseScope(outer)
	require.NoError(t, err)
	_, err = in.ReleaseScope(inner)
	assert.Error(t, err)
}

func TestReleaseScopeTrace(t *testing.T) {
	var buf bytes.Buffer
	in, err := eval.New(eval.WithTrace(true), eval.WithStderr(&buf))
	require.NoError(t, err)

	_, err = in.EvalString("test", "((lambda (x) x) '(a))")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "reclaim: frames=1 freed=")
}

func TestMalformedError(t *testing.T) {
	in, err := eval.New()
	require.NoError(t, err)

	_, err = in.EvalString("test", "((lambda (x y) x) 'a)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, eval.ErrMalformed))
	var merr *eval.MalformedError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "lambda", merr.Form)
	var arity *environ.ArityError
	require.True(t, errors.As(err, &arity))
	assert.Equal(t, 2, arity.Params)
	assert.Equal(t, 1, arity.Args)

	// the interpreter is usable after an error
	v, err := in.EvalString("test", "(head '(a))")
	require.NoError(t, err)
	assert.Equal(t, "a", in.FormatString(v))
	assert.Equal(t, 0, in.Heap().Live())
}

func TestConfig(t *testing.T) {
	_, err := eval.New(eval.WithTable(nil))
	assert.Error(t, err)
	_, err = eval.New(eval.WithArenaSize(-1))
	assert.Error(t, err)
}
