package environ

import (
	"testing"

	"github.com/luthersystems/scopelisp/pkg/sexp"
	"github.com/luthersystems/scopelisp/pkg/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindings(t *testing.T) {
	myvar := testTable.Intern("myvar")
	other := testTable.Intern("other")
	s := newBindings(0)
	assert.Equal(t, 0, s.Len())
	v, ok := s.Get(myvar)
	assert.False(t, ok)
	assert.True(t, sexp.IsNil(v))
	s.Put(myvar, sexp.Atom(other))
	assert.Equal(t, 1, s.Len())
	v, ok = s.Get(myvar)
	assert.True(t, ok)
	assert.True(t, sexp.IsAtom(v, other))
	s.Put(other, sexp.Nil())
	s.Put(myvar, sexp.Atom(myvar))
	assert.Equal(t, 2, s.Len())

	var names []symbol.ID
	s.Each(func(id symbol.ID, v sexp.Value) { names = append(names, id) })
	assert.Equal(t, []symbol.ID{myvar, other}, names)
}

func TestBindingsZipCons(t *testing.T) {
	a := sexp.NewArena(0)
	vara := sexp.Atom(testTable.Intern("a"))
	varb := sexp.Atom(testTable.Intern("b"))
	varc := sexp.Atom(testTable.Intern("c"))
	x := sexp.Atom(testTable.Intern("x"))
	vars := a.List(0, vara, varb, varc)

	_, err := NewBindingsZipCons(a, vars, sexp.Nil())
	var arity *ArityError
	if assert.ErrorAs(t, err, &arity) {
		assert.Equal(t, 3, arity.Params)
		assert.Equal(t, 0, arity.Args)
	}
	_, err = NewBindingsZipCons(a, sexp.Nil(), a.List(0, x))
	assert.ErrorAs(t, err, &arity)
	_, err = NewBindingsZipCons(a, vars, a.List(0, x, x, x, x))
	assert.ErrorAs(t, err, &arity)
	_, err = NewBindingsZipCons(a, a.Cons(vara, varb, 0), a.List(0, x))
	assert.Error(t, err)
	_, err = NewBindingsZipCons(a, a.List(0, a.List(0, vara)), a.List(0, x))
	assert.Error(t, err)

	s, err := NewBindingsZipCons(a, vars, a.List(0, x, vara, sexp.Nil()))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	v, ok := s.Get(testTable.Intern("a"))
	assert.True(t, ok)
	assert.Equal(t, x, v)
	v, ok = s.Get(testTable.Intern("b"))
	assert.True(t, ok)
	assert.Equal(t, vara, v)
	v, ok = s.Get(testTable.Intern("c"))
	assert.True(t, ok)
	assert.True(t, sexp.IsNil(v))

	s, err = NewBindingsZipCons(a, sexp.Nil(), sexp.Nil())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}
