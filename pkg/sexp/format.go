package sexp

import (
	"io"
	"strings"

	"github.com/luthersystems/scopelisp/pkg/internal/lfmt"
	"github.com/luthersystems/scopelisp/pkg/symbol"
)

// PrimNamer names primitive values for printing.  A symbol.Table passed to
// Format may also implement PrimNamer.
type PrimNamer interface {
	PrimName(id PrimID) (string, bool)
}

// Format writes a source representation of v to w, using table to translate
// atoms and a to dereference cells.  Improper pairs are written with dotted
// notation.  Primitives are written as #<primitive name> when table
// implements PrimNamer.
func Format(w io.Writer, v Value, table symbol.Table, a *Arena) (int, error) {
	fw := lfmt.NewWriter(w)
	f := &formatter{w: fw, table: symbol.ResolveUnknown("", table), a: a}
	if namer, ok := table.(PrimNamer); ok {
		f.namer = namer
	}
	f.format(v)
	return fw.Result()
}

// FormatString is like Format but returns the representation as a string.
func FormatString(v Value, table symbol.Table, a *Arena) string {
	var b strings.Builder
	Format(&b, v, table, a)
	return b.String()
}

type formatter struct {
	w     *lfmt.Writer
	table symbol.Table
	namer PrimNamer
	a     *Arena
}

func (f *formatter) format(v Value) {
	switch v.Type() {
	case TNil:
		f.w.WriteString("()")
	case TAtom:
		id, _ := GetAtom(v)
		s, _ := f.table.Symbol(id)
		f.w.WriteString(s)
	case TPrim:
		id, _ := GetPrim(v)
		if f.namer != nil {
			if name, ok := f.namer.PrimName(id); ok {
				f.w.Printf("#<primitive %s>", name)
				return
			}
		}
		f.w.Printf("#<primitive %d>", id)
	case TCell:
		f.formatCell(v)
	default:
		f.w.Printf("#<%v>", v.Type())
	}
}

func (f *formatter) formatCell(v Value) {
	f.w.WriteString("(")
	for {
		c := f.a.MustCell(v)
		f.format(c.Head)
		if f.w.Err() != nil {
			return
		}
		switch c.Tail.Type() {
		case TNil:
			f.w.WriteString(")")
			return
		case TCell:
			f.w.WriteString(" ")
			v = c.Tail
		default:
			f.w.WriteString(" . ")
			f.format(c.Tail)
			f.w.WriteString(")")
			return
		}
	}
}
