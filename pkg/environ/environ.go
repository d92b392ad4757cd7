// Package environ implements lexical environments: binding frames linked to
// their enclosing frame, and the Chain that owns every frame created by an
// interpreter.
package environ

import (
	"github.com/luthersystems/scopelisp/pkg/sexp"
	"github.com/luthersystems/scopelisp/pkg/symbol"
)

// Frame is one layer of variable bindings.  A Frame is in the scope of its
// parent's bindings.
type Frame struct {
	parent   *Frame
	bindings Bindings
	gen      sexp.Gen
	depth    int
}

func newFrame(parent *Frame, bindings Bindings, gen sexp.Gen) *Frame {
	if bindings == nil {
		bindings = NewBindings(0)
	}
	f := &Frame{
		parent:   parent,
		bindings: bindings,
		gen:      gen,
	}
	if parent != nil {
		f.depth = parent.depth + 1
	}
	return f
}

// Parent returns the enclosing frame, or nil for a root frame.
func (f *Frame) Parent() *Frame {
	return f.parent
}

// Root returns the outermost frame of the chain containing f.
func (f *Frame) Root() *Frame {
	for f.parent != nil {
		f = f.parent
	}
	return f
}

// Gen returns the generation in which f was created.
func (f *Frame) Gen() sexp.Gen {
	return f.gen
}

// Depth returns the number of ancestors of f.
func (f *Frame) Depth() int {
	return f.depth
}

// Len returns the number of local bindings in f.
func (f *Frame) Len() int {
	return f.bindings.Len()
}

// Get searches f and then its ancestors, innermost first, for a binding of
// id.  Get returns Nil and false if no frame binds id.
func (f *Frame) Get(id symbol.ID) (sexp.Value, bool) {
	for ; f != nil; f = f.parent {
		if v, ok := f.bindings.Get(id); ok {
			return v, true
		}
	}
	return sexp.Nil(), false
}

// GetLocal returns the binding of id in f, ignoring ancestors.
func (f *Frame) GetLocal(id symbol.ID) (sexp.Value, bool) {
	return f.bindings.Get(id)
}

// Put binds id to v in f.
func (f *Frame) Put(id symbol.ID, v sexp.Value) {
	f.bindings.Put(id, v)
}

// Each calls fn for every local binding of f.
func (f *Frame) Each(fn func(symbol.ID, sexp.Value)) {
	f.bindings.Each(fn)
}

// Encloses returns true if g is f or one of f's ancestors.
func (f *Frame) Encloses(g *Frame) bool {
	for ; f != nil; f = f.parent {
		if f == g {
			return true
		}
	}
	return false
}
