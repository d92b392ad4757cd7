package eval

import (
	"errors"
	"fmt"

	"github.com/luthersystems/scopelisp/pkg/environ"
	"github.com/luthersystems/scopelisp/pkg/sexp"
)

// Eval evaluates v in frame f.  Atoms evaluate to their innermost binding or
// Nil when unbound.  Nil and primitives evaluate to themselves.  A cell is
// evaluated by evaluating its head and applying the result to the tail.
func (in *Interp) Eval(f *environ.Frame, v sexp.Value) (sexp.Value, error) {
	switch v.Type() {
	case sexp.TAtom:
		id, _ := sexp.GetAtom(v)
		val, _ := f.Get(id)
		return val, nil
	case sexp.TCell:
		return in.evalCell(f, v)
	default:
		return v, nil
	}
}

func (in *Interp) evalCell(f *environ.Frame, v sexp.Value) (sexp.Value, error) {
	err := in.enter()
	if err != nil {
		return sexp.Nil(), err
	}
	defer in.leave()

	head, err := in.Eval(f, in.heap.Head(v))
	if err != nil {
		return sexp.Nil(), err
	}
	args := in.heap.Tail(v)
	if id, ok := sexp.GetPrim(head); ok {
		fn, ok := in.builtin(id)
		if !ok {
			return sexp.Nil(), fmt.Errorf("unknown primitive: %d", id)
		}
		return in.callBuiltin(f, fn, args)
	}
	if in.isClosure(head) {
		return in.apply(f, head, args)
	}
	return sexp.Nil(), nil
}

func (in *Interp) callBuiltin(f *environ.Frame, fn *langBuiltin, args sexp.Value) (sexp.Value, error) {
	if !fn.special {
		var err error
		args, err = in.evalArgs(f, args, fn.name)
		if err != nil {
			return sexp.Nil(), err
		}
	}
	n, ok := in.heap.Len(args)
	if !ok {
		return sexp.Nil(), malformedf(fn.name, "argument list is not a list")
	}
	if n < fn.nargs {
		return sexp.Nil(), malformedf(fn.name, "expected %d arguments (got %d)", fn.nargs, n)
	}
	return fn.fun(in, f, args)
}

// evalArgs evaluates the elements of list args left to right in f and
// returns a new list of the results.
func (in *Interp) evalArgs(f *environ.Frame, args sexp.Value, form string) (sexp.Value, error) {
	var vals []sexp.Value
	it := in.heap.Iterate(args)
	for it.Next() {
		v, err := in.Eval(f, it.Value())
		if err != nil {
			return sexp.Nil(), err
		}
		vals = append(vals, v)
	}
	if it.Err() != nil {
		return sexp.Nil(), malformedErr(form, it.Err())
	}
	return in.List(vals...), nil
}

func (in *Interp) isClosure(v sexp.Value) bool {
	return sexp.IsCell(v) && sexp.IsAtom(in.heap.Head(v), in.atoms.lambda)
}

// apply calls closure fn with the unevaluated argument list args.  The
// arguments are evaluated in the caller's frame f and bound in a new frame
// whose parent is the frame fn captured.
func (in *Interp) apply(f *environ.Frame, fn sexp.Value, args sexp.Value) (sexp.Value, error) {
	params, body, err := in.closureParts(fn)
	if err != nil {
		return sexp.Nil(), err
	}
	vals, err := in.evalArgs(f, args, "lambda")
	if err != nil {
		return sexp.Nil(), err
	}
	bindings, err := environ.NewBindingsZipCons(in.heap, params, vals)
	if err != nil {
		var arity *environ.ArityError
		if errors.As(err, &arity) {
			return sexp.Nil(), &MalformedError{
				Form: "lambda",
				Msg:  fmt.Sprintf("%s: %v", in.FormatString(params), err),
				Err:  err,
			}
		}
		return sexp.Nil(), malformedErr("lambda", err)
	}
	frame := in.chain.Extend(in.captured(fn), bindings)
	return in.Eval(frame, body)
}

// closureParts destructures (lambda params body).  Forms following body are
// ignored.
func (in *Interp) closureParts(fn sexp.Value) (params, body sexp.Value, err error) {
	rest := in.heap.Tail(fn)
	if !sexp.IsCell(rest) {
		return sexp.Nil(), sexp.Nil(), malformedf("lambda", "missing parameter list")
	}
	params = in.heap.Head(rest)
	rest = in.heap.Tail(rest)
	if !sexp.IsCell(rest) {
		return sexp.Nil(), sexp.Nil(), malformedf("lambda", "missing body")
	}
	return params, in.heap.Head(rest), nil
}

// captured returns the frame closure fn was created in.  A closure built
// from data, e.g. with cons, is treated as a global function.
func (in *Interp) captured(fn sexp.Value) *environ.Frame {
	h, _ := sexp.GetHandle(fn)
	if f, ok := in.closures[h]; ok {
		return f
	}
	return in.Root()
}

func (in *Interp) enter() error {
	if in.maxDepth > 0 && in.depth >= in.maxDepth {
		return fmt.Errorf("%w: %d", ErrStackExhausted, in.maxDepth)
	}
	in.depth++
	return nil
}

func (in *Interp) leave() {
	in.depth--
}
