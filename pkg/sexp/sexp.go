// Package sexp defines the value model shared by the reader, the evaluator
// and the printer: atoms, cons cells, nil and primitive references.  Cons
// cells live in an Arena and values refer to them by handle.
package sexp

import (
	"fmt"

	"github.com/luthersystems/scopelisp/pkg/symbol"
)

func panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

// Type is the variant tag of a Value.
type Type uint8

const (
	// TNil is the absence of a value and the empty list.
	TNil Type = iota
	// TAtom is an interned symbol.
	// Schema:
	// 	data: symbol.ID
	TAtom
	// TCell is a reference to a cons cell in an Arena.
	// Schema:
	// 	data: Handle
	TCell
	// TPrim is a reference to a builtin special form or function.
	// Schema:
	// 	data: PrimID
	TPrim

	numTypes
)

func (t Type) String() string {
	names := [numTypes]string{
		TNil:  "nil",
		TAtom: "atom",
		TCell: "cell",
		TPrim: "primitive",
	}
	if t >= numTypes {
		return fmt.Sprintf("type(%d)", uint8(t))
	}
	return names[t]
}

// PrimID enumerates the builtin callables known to an evaluator.  The
// evaluator, not this package, assigns meaning to each id.
type PrimID uint32

// Value is the universal currency of the interpreter.  The zero Value is a
// valid Nil.
type Value struct {
	typ  Type
	data uint64
}

// Nil returns the Nil value.
func Nil() Value {
	return Value{}
}

// Atom returns an atom value for id.
func Atom(id symbol.ID) Value {
	return Value{typ: TAtom, data: uint64(id)}
}

// Prim returns a value referencing primitive id.
func Prim(id PrimID) Value {
	return Value{typ: TPrim, data: uint64(id)}
}

func cellValue(h Handle) Value {
	return Value{typ: TCell, data: uint64(h)}
}

// Type returns the variant tag of v.
func (v Value) Type() Type {
	return v.typ
}

// IsNil returns true if v is Nil.
func IsNil(v Value) bool {
	return v.typ == TNil
}

// IsCell returns true if v references a cons cell.
func IsCell(v Value) bool {
	return v.typ == TCell
}

// GetAtom returns the atom id held by v.  GetAtom returns false if v is not
// an atom.
func GetAtom(v Value) (symbol.ID, bool) {
	if v.typ != TAtom {
		return symbol.NoID, false
	}
	return symbol.ID(v.data), true
}

// IsAtom returns true if v is the atom id.
func IsAtom(v Value, id symbol.ID) bool {
	return v.typ == TAtom && symbol.ID(v.data) == id
}

// GetPrim returns the primitive id held by v.  GetPrim returns false if v is
// not a primitive reference.
func GetPrim(v Value) (PrimID, bool) {
	if v.typ != TPrim {
		return 0, false
	}
	return PrimID(v.data), true
}

// GetHandle returns the arena handle held by v.  GetHandle returns false if v
// is not a cell.
func GetHandle(v Value) (Handle, bool) {
	if v.typ != TCell {
		return 0, false
	}
	return Handle(v.data), true
}

// Identical reports whether v1 and v2 are the same value: same variant and
// same atom, cell handle or primitive.  Identical never inspects cell
// contents.
func Identical(v1, v2 Value) bool {
	return v1 == v2
}

// String returns a diagnostic description of v that does not require a
// symbol table or an arena.  Use Format for source representations.
func (v Value) String() string {
	switch v.typ {
	case TNil:
		return "()"
	case TAtom:
		return fmt.Sprintf("#<atom %d>", v.data)
	case TCell:
		return fmt.Sprintf("#<cell %s>", Handle(v.data))
	case TPrim:
		return fmt.Sprintf("#<primitive %d>", v.data)
	default:
		return fmt.Sprintf("#<%v>", v.typ)
	}
}
