package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/scopelisp/pkg/eval"
	"github.com/luthersystems/scopelisp/pkg/sexp"
)

// treeBuilder constructs expressions directly in an interpreter's arena.
type treeBuilder struct {
	in *eval.Interp
}

func (b treeBuilder) atom(s string) sexp.Value {
	return b.in.Atom(s)
}

func (b treeBuilder) list(v ...sexp.Value) sexp.Value {
	return b.in.List(v...)
}

func (b treeBuilder) quote(v sexp.Value) sexp.Value {
	return b.list(b.atom("quote"), v)
}

func (b treeBuilder) call(fn string, args ...sexp.Value) sexp.Value {
	return b.list(append([]sexp.Value{b.atom(fn)}, args...)...)
}

func (b treeBuilder) lambda(params []string, body sexp.Value) sexp.Value {
	ps := make([]sexp.Value, len(params))
	for i := range params {
		ps[i] = b.atom(params[i])
	}
	return b.list(b.atom("lambda"), b.list(ps...), body)
}

func newTreeBuilder(t *testing.T, configs ...eval.Config) treeBuilder {
	in, err := eval.New(configs...)
	require.NoError(t, err)
	return treeBuilder{in}
}

func (b treeBuilder) evalTop(t *testing.T, expr sexp.Value) string {
	t.Helper()
	v, err := b.in.EvalTop(expr)
	require.NoError(t, err)
	return b.in.FormatString(v)
}

func TestEvalTree(t *testing.T) {
	b := newTreeBuilder(t)
	a, bb := b.atom("a"), b.atom("b")

	assert.Equal(t, "(a b)", b.evalTop(t, b.quote(b.list(a, bb))))
	assert.Equal(t, "t", b.evalTop(t, b.call("eq", b.quote(a), b.quote(a))))
	assert.Equal(t, "()", b.evalTop(t, b.call("eq", b.quote(a), b.quote(bb))))
	assert.Equal(t, "()", b.evalTop(t, b.call("eq",
		b.call("cons", b.quote(a), sexp.Nil()),
		b.call("cons", b.quote(a), sexp.Nil()))))
	assert.Equal(t, "t", b.evalTop(t, b.call("atom?", b.quote(a))))
	assert.Equal(t, "()", b.evalTop(t, b.call("atom?", b.quote(b.list(a)))))
	assert.Equal(t, "t", b.evalTop(t, b.call("atom?", sexp.Nil())))
	assert.Equal(t, "()", b.evalTop(t, b.atom("unbound")))

	pair := b.list(
		b.lambda([]string{"x", "y"}, b.call("cons", b.atom("x"), b.atom("y"))),
		b.quote(a),
		b.quote(bb))
	assert.Equal(t, "(a . b)", b.evalTop(t, pair))

	short := b.list(b.lambda([]string{"x", "y"}, b.atom("x")), b.quote(a))
	_, err := b.in.EvalTop(short)
	assert.ErrorIs(t, err, eval.ErrMalformed)
	assert.Equal(t, 1, b.in.Chain().Len())
}

func TestEvalTreeLexicalCapture(t *testing.T) {
	b := newTreeBuilder(t)

	assert.Equal(t, "()", b.evalTop(t, b.call("label", b.atom("x"), b.quote(b.atom("outer")))))
	assert.Equal(t, "()", b.evalTop(t, b.call("defun", b.atom("get"), sexp.Nil(), b.atom("x"))))
	inner := b.list(b.lambda([]string{"x"}, b.call("get")), b.quote(b.atom("inner")))
	assert.Equal(t, "outer", b.evalTop(t, inner))
}

func TestEvalTreeClosureSurvivesRelease(t *testing.T) {
	b := newTreeBuilder(t)

	mk := b.lambda([]string{"l"}, b.lambda([]string{"r"}, b.call("cons", b.atom("l"), b.atom("r"))))
	assert.Equal(t, "()", b.evalTop(t, b.call("label", b.atom("mk"), mk)))
	pq := b.list(b.atom("p"), b.atom("q"))
	assert.Equal(t, "()", b.evalTop(t, b.call("label", b.atom("k"), b.call("mk", b.quote(pq)))))
	live := b.in.Heap().Live()

	// unreachable work is reclaimed and the captured list is untouched
	assert.Equal(t, "(x y)", b.evalTop(t, b.call("list", b.quote(b.atom("x")), b.quote(b.atom("y")))))
	assert.Equal(t, "()", b.evalTop(t, b.atom("nothing")))
	assert.Equal(t, live, b.in.Heap().Live())

	assert.Equal(t, "((p q) . r)", b.evalTop(t, b.call("k", b.quote(b.atom("r")))))
	assert.Equal(t, "(p q)", b.in.FormatString(pq))
}

func TestEvalTreeDepth(t *testing.T) {
	b := newTreeBuilder(t, eval.WithMaxDepth(20000))

	loop := b.call("defun", b.atom("loop"), b.list(b.atom("x")), b.call("loop", b.atom("x")))
	assert.Equal(t, "()", b.evalTop(t, loop))
	_, err := b.in.EvalTop(b.call("loop", b.quote(b.atom("a"))))
	assert.ErrorIs(t, err, eval.ErrStackExhausted)
	assert.Equal(t, 1, b.in.Chain().Len())

	assert.Equal(t, "a", b.evalTop(t, b.call("head", b.quote(b.list(b.atom("a"))))))
}
