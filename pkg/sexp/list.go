package sexp

import "fmt"

// List allocates a proper list containing v in generation gen.
func (a *Arena) List(gen Gen, v ...Value) Value {
	lis := Nil()
	for i := len(v) - 1; i >= 0; i-- {
		lis = a.Cons(v[i], lis, gen)
	}
	return lis
}

// Len returns the length of list v.  Len returns false if v is not a proper
// list, in which case the returned length counts the cells visited.
func (a *Arena) Len(v Value) (int, bool) {
	n := 0
	for !IsNil(v) {
		c, ok := a.Cell(v)
		if !ok {
			return n, false
		}
		v = c.Tail
		n++
	}
	return n, true
}

// Slice collects the elements of list v.  Slice returns false if v is not a
// proper list.
func (a *Arena) Slice(v Value) ([]Value, bool) {
	var s []Value
	it := a.Iterate(v)
	for it.Next() {
		s = append(s, it.Value())
	}
	return s, it.Err() == nil
}

// ListBuilder appends values to the end of a list without reversing.
type ListBuilder struct {
	a     *Arena
	gen   Gen
	front Value
	back  Value
}

// NewListBuilder returns a ListBuilder that allocates cells from a in
// generation gen.
func (a *Arena) NewListBuilder(gen Gen) *ListBuilder {
	return &ListBuilder{a: a, gen: gen}
}

// List returns the list built so far.  If Append is called after List the
// value returned by List will be modified.
func (b *ListBuilder) List() Value {
	return b.front
}

// Append adds elements to the end of the list.
func (b *ListBuilder) Append(v ...Value) {
	for i := range v {
		cell := b.a.Cons(v[i], Nil(), b.gen)
		if IsNil(b.back) {
			b.front = cell
		} else {
			// Cons may grow the arena so cell pointers are never held across
			// allocations.
			b.a.MustCell(b.back).Tail = cell
		}
		b.back = cell
	}
}

// ListIterator iterates through the elements of a list.
type ListIterator struct {
	a    *Arena
	v    Value
	rest Value
	err  error
}

// Iterate returns a ListIterator over list v.
func (a *Arena) Iterate(v Value) *ListIterator {
	return &ListIterator{a: a, rest: v}
}

// Value returns the current element.  Value returns Nil if Next has not been
// called.
func (it *ListIterator) Value() Value {
	return it.v
}

// Rest returns the portion of the list that has not been iterated.
func (it *ListIterator) Rest() Value {
	return it.rest
}

// Next advances the iterator.  Next returns false when the list is exhausted
// or when a non-list tail is encountered, in which case Err is non-nil.
func (it *ListIterator) Next() bool {
	if IsNil(it.rest) || it.err != nil {
		return false
	}
	c, ok := it.a.Cell(it.rest)
	if !ok {
		it.err = fmt.Errorf("not a list: %v", it.rest.Type())
		return false
	}
	it.v = c.Head
	it.rest = c.Tail
	return true
}

// Err returns a non-nil error if iteration stopped on an improper tail.
func (it *ListIterator) Err() error {
	return it.err
}
