// Package eval implements the evaluator: atom lookup through the frame chain,
// special forms, primitives, closure application and the scope reclamation
// that frees cells once a top-level evaluation returns.
package eval

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/scopelisp/pkg/environ"
	"github.com/luthersystems/scopelisp/pkg/reader"
	"github.com/luthersystems/scopelisp/pkg/sexp"
	"github.com/luthersystems/scopelisp/pkg/symbol"
)

// Interp holds the state of one interpreter: the atom table, the cell arena,
// the frame chain and the closures created so far.  An Interp is not safe for
// concurrent use.  Independent runs should use independent Interps.
type Interp struct {
	table     symbol.Table
	heap      *sexp.Arena
	chain     *environ.Chain
	reader    *reader.Reader
	atoms     reservedAtoms
	prims     []*langBuiltin
	closures  map[sexp.Handle]*environ.Frame
	base      environ.Cursor
	depth     int
	maxDepth  int
	arenaSize int
	stderr    io.Writer
	trace     bool
}

type reservedAtoms struct {
	t      symbol.ID
	lambda symbol.ID
}

// New returns an Interp whose global frame binds every builtin.
func New(configs ...Config) (*Interp, error) {
	in := &Interp{
		maxDepth:  DefaultMaxDepth,
		arenaSize: 1 << 10,
		stderr:    os.Stderr,
	}
	for _, config := range configs {
		err := config(in)
		if err != nil {
			return nil, fmt.Errorf("interpreter config: %w", err)
		}
	}
	if in.table == nil {
		in.table = symbol.CopyGlobalTable()
	} else {
		symbol.InternAll(in.table, globalNames()...)
	}
	in.heap = sexp.NewArena(in.arenaSize)
	in.closures = make(map[sexp.Handle]*environ.Frame)
	in.reader = reader.New(in.table)
	in.atoms = reservedAtoms{
		t:      in.table.Intern("t"),
		lambda: in.table.Intern("lambda"),
	}
	in.chain = environ.NewChain(in.globals())
	// Everything allocated from here on belongs to a generation newer than
	// base and can be reclaimed by EvalTop.
	in.base = in.chain.Mark()
	return in, nil
}

func (in *Interp) globals() environ.Bindings {
	in.prims = make([]*langBuiltin, 0, len(langSpecialOps)+len(langBuiltins))
	in.prims = append(in.prims, langSpecialOps...)
	in.prims = append(in.prims, langBuiltins...)
	b := environ.NewBindings(len(in.prims) + len(langAliases) + 1)
	byName := make(map[string]sexp.Value, len(in.prims))
	for i, fn := range in.prims {
		v := sexp.Prim(sexp.PrimID(i))
		byName[fn.name] = v
		b.Put(in.table.Intern(fn.name), v)
	}
	for alias, name := range langAliases {
		b.Put(in.table.Intern(alias), byName[name])
	}
	b.Put(in.atoms.t, sexp.Atom(in.atoms.t))
	return b
}

func (in *Interp) builtin(id sexp.PrimID) (*langBuiltin, bool) {
	if int(id) >= len(in.prims) {
		return nil, false
	}
	return in.prims[id], true
}

// Table returns the interpreter's atom table.
func (in *Interp) Table() symbol.Table {
	return in.table
}

// Heap returns the arena holding the interpreter's cells.
func (in *Interp) Heap() *sexp.Arena {
	return in.heap
}

// Chain returns the interpreter's frame chain.
func (in *Interp) Chain() *environ.Chain {
	return in.chain
}

// Root returns the global frame.
func (in *Interp) Root() *environ.Frame {
	return in.chain.Root()
}

// Atom interns s and returns it as a value.
func (in *Interp) Atom(s string) sexp.Value {
	return sexp.Atom(in.table.Intern(s))
}

// True returns the truth sentinel returned by predicates.
func (in *Interp) True() sexp.Value {
	return sexp.Atom(in.atoms.t)
}

// Cons allocates a cell in the current generation.
func (in *Interp) Cons(head, tail sexp.Value) sexp.Value {
	return in.heap.Cons(head, tail, in.chain.Gen())
}

// List allocates a proper list in the current generation.
func (in *Interp) List(v ...sexp.Value) sexp.Value {
	return in.heap.List(in.chain.Gen(), v...)
}

// Read parses a program from r.  The program is a list of top-level
// expressions allocated in the current generation.
func (in *Interp) Read(name string, r io.Reader) (sexp.Value, error) {
	return in.reader.Read(name, r, in.heap, in.chain.Gen())
}

// EvalString reads text and runs it as a program.
func (in *Interp) EvalString(name, text string) (sexp.Value, error) {
	prog, err := in.reader.ReadString(name, text, in.heap, in.chain.Gen())
	if err != nil {
		return sexp.Nil(), err
	}
	return in.Run(prog)
}

// EvalTop evaluates expr in the global frame and then reclaims every frame
// and cell created since the interpreter was initialized that is no longer
// reachable from the global frame.  The returned value is kept alive until
// the next reclamation.
func (in *Interp) EvalTop(expr sexp.Value) (sexp.Value, error) {
	return in.evalTop(expr)
}

// Run evaluates each expression of the list prog in the global frame,
// reclaiming scope after each one.  The unevaluated remainder of prog is
// kept alive across reclamations.  Run stops at the first error and returns
// the value of the last expression otherwise.
func (in *Interp) Run(prog sexp.Value) (sexp.Value, error) {
	result := sexp.Nil()
	err := in.RunEach(prog, func(v sexp.Value) error {
		result = v
		return nil
	})
	if err != nil {
		return sexp.Nil(), err
	}
	return result, nil
}

// RunEach is like Run but calls fn with the value of each expression.  A
// value passed to fn is reclaimed after the following expression unless it
// is reachable from the global frame.  RunEach stops if fn returns an error.
func (in *Interp) RunEach(prog sexp.Value, fn func(sexp.Value) error) error {
	it := in.heap.Iterate(prog)
	for it.Next() {
		v, err := in.evalTop(it.Value(), it.Rest())
		if err != nil {
			return err
		}
		err = fn(v)
		if err != nil {
			return err
		}
	}
	if it.Err() != nil {
		return malformedErr("program", it.Err())
	}
	return nil
}

func (in *Interp) evalTop(expr sexp.Value, roots ...sexp.Value) (sexp.Value, error) {
	v, err := in.Eval(in.Root(), expr)
	if err != nil {
		_, rerr := in.ReleaseScope(in.base, roots...)
		if rerr != nil {
			return sexp.Nil(), fmt.Errorf("%w (scope release: %v)", err, rerr)
		}
		return sexp.Nil(), err
	}
	_, err = in.ReleaseScope(in.base, append(roots, v)...)
	if err != nil {
		return sexp.Nil(), err
	}
	return v, nil
}

// Format writes the source representation of v to w.
func (in *Interp) Format(w io.Writer, v sexp.Value) (int, error) {
	return sexp.Format(w, v, primTable{in.table, in}, in.heap)
}

// FormatString returns the source representation of v.
func (in *Interp) FormatString(v sexp.Value) string {
	var b strings.Builder
	in.Format(&b, v)
	return b.String()
}

// primTable lets the printer name primitives.
type primTable struct {
	symbol.Table
	in *Interp
}

var _ sexp.PrimNamer = primTable{}

func (t primTable) PrimName(id sexp.PrimID) (string, bool) {
	fn, ok := t.in.builtin(id)
	if !ok {
		return "", false
	}
	return fn.name, true
}

func (in *Interp) debugf(format string, v ...interface{}) {
	if !in.trace || in.stderr == nil {
		return
	}
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	fmt.Fprintf(in.stderr, format, v...)
}
