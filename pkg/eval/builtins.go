package eval

import (
	"github.com/luthersystems/scopelisp/pkg/environ"
	"github.com/luthersystems/scopelisp/pkg/sexp"
	"github.com/luthersystems/scopelisp/pkg/symbol"
)

// builtinFunc implements a primitive.  Special operators receive their
// argument list unevaluated.  Ordinary builtins receive a freshly allocated
// list of evaluated arguments.
type builtinFunc func(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error)

type langBuiltin struct {
	name    string
	nargs   int
	fun     builtinFunc
	special bool
}

var langBuiltins = []*langBuiltin{
	{"head", 1, builtinHead, false},
	{"tail", 1, builtinTail, false},
	{"cons", 2, builtinCons, false},
	{"atom?", 1, builtinAtomP, false},
	{"eq", 2, builtinEq, false},
	{"list", 0, builtinList, false},
}

// langAliases binds additional names to existing primitives.
var langAliases = map[string]string{
	"car":  "head",
	"cdr":  "tail",
	"atom": "atom?",
	"eq?":  "eq",
}

// reservedNames are interned in every table before any program text.
var reservedNames = []string{"t", "lambda", "quote"}

func init() {
	symbol.InternAll(symbol.DefaultGlobalTable, globalNames()...)
}

// globalNames returns every atom bound in a fresh global frame along with the
// reserved atoms.
func globalNames() []string {
	names := append([]string(nil), reservedNames...)
	for _, fn := range langSpecialOps {
		names = append(names, fn.name)
	}
	for _, fn := range langBuiltins {
		names = append(names, fn.name)
	}
	for alias := range langAliases {
		names = append(names, alias)
	}
	return names
}

func builtinHead(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error) {
	return in.heap.Head(in.heap.Head(args)), nil
}

func builtinTail(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error) {
	return in.heap.Tail(in.heap.Head(args)), nil
}

func builtinCons(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error) {
	head := in.heap.Head(args)
	tail := in.heap.Head(in.heap.Tail(args))
	return in.Cons(head, tail), nil
}

func builtinAtomP(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error) {
	switch in.heap.Head(args).Type() {
	case sexp.TNil, sexp.TAtom:
		return in.True(), nil
	default:
		return sexp.Nil(), nil
	}
}

func builtinEq(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error) {
	a := in.heap.Head(args)
	b := in.heap.Head(in.heap.Tail(args))
	switch {
	case sexp.IsNil(a) && sexp.IsNil(b):
		return in.True(), nil
	case a.Type() == sexp.TAtom && b.Type() == sexp.TAtom:
		return in.truth(sexp.Identical(a, b)), nil
	default:
		return sexp.Nil(), nil
	}
}

// builtinList returns the evaluated argument list, which is already a new
// list.
func builtinList(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error) {
	return args, nil
}

func (in *Interp) truth(ok bool) sexp.Value {
	if ok {
		return in.True()
	}
	return sexp.Nil()
}
