package environ

import (
	"fmt"

	"github.com/luthersystems/scopelisp/pkg/sexp"
	"github.com/luthersystems/scopelisp/pkg/symbol"
)

// Bindings is a set of variable bindings (e.g. function arguments).
type Bindings interface {
	// Len returns the number of variables bound
	Len() int
	// Get returns the value bound to the given atom.
	Get(symbol.ID) (sexp.Value, bool)
	// Put creates or updates a binding for the given atom with the given
	// value.
	Put(symbol.ID, sexp.Value)
	// Each calls fn for every binding in the order the bindings were
	// created.
	Each(fn func(symbol.ID, sexp.Value))
}

// NewBindings creates and initializes a new set of variable bindings that has
// initial capacity to hold n values.
func NewBindings(n int) Bindings {
	return newBindings(n)
}

type bindingPair struct {
	name  symbol.ID
	value sexp.Value
}

// bindings keeps pairs in insertion order with an index for lookup.
type bindings struct {
	pairs []bindingPair
	index map[symbol.ID]int
}

var _ Bindings = (*bindings)(nil)

func newBindings(n int) *bindings {
	return &bindings{
		pairs: make([]bindingPair, 0, n),
		index: make(map[symbol.ID]int, n),
	}
}

// ArityError is returned by NewBindingsZipCons when the variable and value
// lists have different lengths.
type ArityError struct {
	Params int
	Args   int
}

func (err *ArityError) Error() string {
	return fmt.Sprintf("expected %d arguments (got %d)", err.Params, err.Args)
}

// NewBindingsZipCons takes a list of variable names with a list of variable
// values and returns the corresponding bindings.  If vars and vals are not
// lists of equal length NewBindingsZipCons returns an *ArityError.  If a
// variable is not an atom or either list is improper an error is returned.
func NewBindingsZipCons(a *sexp.Arena, vars, vals sexp.Value) (Bindings, error) {
	nvars, ok := a.Len(vars)
	if !ok {
		return nil, fmt.Errorf("variable list: not a list")
	}
	nvals, ok := a.Len(vals)
	if !ok {
		return nil, fmt.Errorf("value list: not a list")
	}
	if nvars != nvals {
		return nil, &ArityError{Params: nvars, Args: nvals}
	}
	s := newBindings(nvars)
	itVars := a.Iterate(vars)
	itVals := a.Iterate(vals)
	for itVars.Next() && itVals.Next() {
		name, ok := sexp.GetAtom(itVars.Value())
		if !ok {
			return nil, fmt.Errorf("variable is not an atom: %v", itVars.Value().Type())
		}
		s.Put(name, itVals.Value())
	}
	return s, nil
}

// Len returns the number of atoms bound.
func (s *bindings) Len() int {
	return len(s.pairs)
}

// Get returns the value bound to variable.
func (s *bindings) Get(variable symbol.ID) (sexp.Value, bool) {
	i, ok := s.index[variable]
	if !ok {
		return sexp.Nil(), false
	}
	return s.pairs[i].value, true
}

// Put binds variable to v.  If variable was previously bound its entry will be
// updated.  Otherwise Put creates a new variable binding.
func (s *bindings) Put(variable symbol.ID, v sexp.Value) {
	i, ok := s.index[variable]
	if ok {
		s.pairs[i].value = v
		return
	}
	s.index[variable] = len(s.pairs)
	s.pairs = append(s.pairs, bindingPair{variable, v})
}

// Each implements Bindings.
func (s *bindings) Each(fn func(symbol.ID, sexp.Value)) {
	for _, p := range s.pairs {
		fn(p.name, p.value)
	}
}
