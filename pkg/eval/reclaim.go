package eval

import (
	"fmt"

	"github.com/luthersystems/scopelisp/pkg/environ"
	"github.com/luthersystems/scopelisp/pkg/sexp"
	"github.com/luthersystems/scopelisp/pkg/symbol"
)

// ReclaimStats reports the work done by ReleaseScope.
type ReclaimStats struct {
	// Frames is the number of frames discarded.
	Frames int
	// Freed is the number of cells swept.
	Freed int
	// Live is the number of cells still allocated.
	Live int
}

// Mark returns a cursor at the current position of the interpreter's frame
// chain, for use with ReleaseScope.
func (in *Interp) Mark() environ.Cursor {
	return in.chain.Mark()
}

// MarkReachable returns every cell reachable from the bindings of f.  The
// bindings of f's ancestors are not scanned.
func (in *Interp) MarkReachable(f *environ.Frame) sexp.LiveSet {
	m := in.newMarker(nil)
	m.frame(f)
	return m.live
}

// ReleaseScope frees every cell allocated after cur was taken that is not
// reachable from the cursor's frame, its ancestors, or roots, then discards
// every frame created after cur.  Cells reachable from a closure are kept
// along with the bindings of the frame the closure captured.
func (in *Interp) ReleaseScope(cur environ.Cursor, roots ...sexp.Value) (ReclaimStats, error) {
	if !in.chain.Holds(cur) {
		return ReclaimStats{}, fmt.Errorf("release scope: cursor is not part of the frame chain")
	}
	m := in.newMarker(cur.Frame)
	for f := cur.Frame; f != nil; f = f.Parent() {
		m.frame(f)
	}
	for _, v := range roots {
		m.value(v)
	}
	m.drain()
	var stats ReclaimStats
	stats.Freed = in.heap.Sweep(m.live, cur.Gen)
	n, err := in.chain.Release(cur)
	if err != nil {
		return stats, fmt.Errorf("release scope: %w", err)
	}
	stats.Frames = n
	for h := range in.closures {
		if !in.heap.Valid(h) {
			delete(in.closures, h)
		}
	}
	stats.Live = in.heap.Live()
	in.debugf("reclaim: frames=%d freed=%d live=%d", stats.Frames, stats.Freed, stats.Live)
	return stats, nil
}

// marker traces cells.  When bound is non-nil, reaching a closure also
// schedules the frames it captured, stopping at bound and its ancestors
// which are scanned separately.
type marker struct {
	in      *Interp
	bound   *environ.Frame
	live    sexp.LiveSet
	visited map[*environ.Frame]bool
	stack   []sexp.Value
}

func (in *Interp) newMarker(bound *environ.Frame) *marker {
	return &marker{
		in:      in,
		bound:   bound,
		live:    make(sexp.LiveSet),
		visited: make(map[*environ.Frame]bool),
	}
}

func (m *marker) frame(f *environ.Frame) {
	if m.visited[f] {
		return
	}
	m.visited[f] = true
	f.Each(func(_ symbol.ID, v sexp.Value) {
		m.value(v)
	})
	m.drain()
}

func (m *marker) value(v sexp.Value) {
	if sexp.IsCell(v) {
		m.stack = append(m.stack, v)
	}
}

func (m *marker) drain() {
	for len(m.stack) > 0 {
		v := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		h, _ := sexp.GetHandle(v)
		if !m.live.Add(h) {
			continue
		}
		c := m.in.heap.MustCell(v)
		m.value(c.Head)
		m.value(c.Tail)
		if m.bound != nil && sexp.IsAtom(c.Head, m.in.atoms.lambda) {
			if f, ok := m.in.closures[h]; ok {
				m.captured(f)
			}
		}
	}
}

// captured schedules f and its ancestors up to the first frame that
// encloses the bound.
func (m *marker) captured(f *environ.Frame) {
	for ; f != nil && !m.bound.Encloses(f); f = f.Parent() {
		if m.visited[f] {
			return
		}
		m.visited[f] = true
		f.Each(func(_ symbol.ID, v sexp.Value) {
			m.value(v)
		})
	}
}
