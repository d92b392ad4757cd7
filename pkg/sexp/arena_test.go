package sexp

import (
	"testing"

	"github.com/luthersystems/scopelisp/pkg/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_Cons(t *testing.T) {
	a := NewArena(0)
	x := Atom(symbol.ID(1))
	c := a.Cons(x, Nil(), 3)
	require.True(t, IsCell(c))
	assert.True(t, Identical(x, a.Head(c)))
	assert.True(t, IsNil(a.Tail(c)))
	assert.True(t, IsNil(a.Head(x)))
	h, _ := GetHandle(c)
	gen, ok := a.Gen(h)
	assert.True(t, ok)
	assert.Equal(t, Gen(3), gen)
	assert.Equal(t, 1, a.Live())
}

func TestArena_Sweep(t *testing.T) {
	a := NewArena(0)
	x := Atom(symbol.ID(1))
	old := a.Cons(x, Nil(), 0)
	keep := a.Cons(x, Nil(), 2)
	drop := a.Cons(x, Nil(), 2)

	live := LiveSet{}
	hkeep, _ := GetHandle(keep)
	assert.True(t, live.Add(hkeep))
	assert.False(t, live.Add(hkeep))

	n := a.Sweep(live, 1)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, a.Live())

	hold, _ := GetHandle(old)
	hdrop, _ := GetHandle(drop)
	assert.True(t, a.Valid(hold), "older generations are not swept")
	assert.True(t, a.Valid(hkeep))
	assert.False(t, a.Valid(hdrop))
	assert.Panics(t, func() { a.Head(drop) })

	// the freed slot is reused under a new version
	fresh := a.Cons(x, Nil(), 2)
	hfresh, _ := GetHandle(fresh)
	assert.Equal(t, hdrop.index(), hfresh.index())
	assert.NotEqual(t, hdrop, hfresh)
	assert.False(t, a.Valid(hdrop))

	stats := a.Stats()
	assert.Equal(t, Stats{Live: 3, Allocated: 4, Freed: 1, Sweeps: 1}, stats)
}

func TestArena_List(t *testing.T) {
	a := NewArena(0)
	x, y := Atom(1), Atom(2)
	lis := a.List(0, x, y)
	n, ok := a.Len(lis)
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	s, ok := a.Slice(lis)
	assert.True(t, ok)
	assert.Equal(t, []Value{x, y}, s)

	pair := a.Cons(x, y, 0)
	n, ok = a.Len(pair)
	assert.False(t, ok)
	assert.Equal(t, 1, n)

	it := a.Iterate(pair)
	assert.True(t, it.Next())
	assert.Equal(t, x, it.Value())
	assert.False(t, it.Next())
	assert.Error(t, it.Err())
	assert.Equal(t, y, it.Rest())
}

func TestListBuilder(t *testing.T) {
	a := NewArena(1) // force growth while building
	b := a.NewListBuilder(5)
	assert.True(t, IsNil(b.List()))
	var expect []Value
	for i := 1; i <= 10; i++ {
		v := Atom(symbol.ID(i))
		expect = append(expect, v)
		b.Append(v)
	}
	s, ok := a.Slice(b.List())
	assert.True(t, ok)
	assert.Equal(t, expect, s)
}
