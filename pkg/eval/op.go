package eval

import (
	"github.com/luthersystems/scopelisp/pkg/environ"
	"github.com/luthersystems/scopelisp/pkg/sexp"
)

var langSpecialOps = []*langBuiltin{
	{"quote", 1, opQuote, true},
	{"lambda", 2, opLambda, true},
	{"label", 2, opLabel, true},
	{"cond", 0, opCond, true},
	{"defun", 3, opDefun, true},
}

func opQuote(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error) {
	return in.heap.Head(args), nil
}

// opLambda returns (lambda params body) and records f as the frame captured
// by the new closure.
func opLambda(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error) {
	return in.makeClosure(f, args), nil
}

func opLabel(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error) {
	name, ok := sexp.GetAtom(in.heap.Head(args))
	if !ok {
		return sexp.Nil(), malformedf("label", "name is not an atom: %v", in.heap.Head(args).Type())
	}
	v, err := in.Eval(f, in.heap.Head(in.heap.Tail(args)))
	if err != nil {
		return sexp.Nil(), err
	}
	f.Put(name, v)
	return sexp.Nil(), nil
}

func opCond(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error) {
	it := in.heap.Iterate(args)
	for it.Next() {
		clause := it.Value()
		if !sexp.IsCell(clause) || !sexp.IsCell(in.heap.Tail(clause)) {
			return sexp.Nil(), malformedf("cond", "clause is not a (predicate expression) pair: %s", in.FormatString(clause))
		}
		test, err := in.Eval(f, in.heap.Head(clause))
		if err != nil {
			return sexp.Nil(), err
		}
		if !sexp.IsNil(test) {
			return in.Eval(f, in.heap.Head(in.heap.Tail(clause)))
		}
	}
	if it.Err() != nil {
		return sexp.Nil(), malformedErr("cond", it.Err())
	}
	return sexp.Nil(), nil
}

// opDefun binds name to a closure over f, like (label name (lambda params
// body)).
func opDefun(in *Interp, f *environ.Frame, args sexp.Value) (sexp.Value, error) {
	name, ok := sexp.GetAtom(in.heap.Head(args))
	if !ok {
		return sexp.Nil(), malformedf("defun", "name is not an atom: %v", in.heap.Head(args).Type())
	}
	f.Put(name, in.makeClosure(f, in.heap.Tail(args)))
	return sexp.Nil(), nil
}

func (in *Interp) makeClosure(f *environ.Frame, fn sexp.Value) sexp.Value {
	v := in.Cons(sexp.Atom(in.atoms.lambda), fn)
	h, _ := sexp.GetHandle(v)
	in.closures[h] = f
	return v
}
