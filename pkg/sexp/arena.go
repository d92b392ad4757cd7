package sexp

import "fmt"

// Gen is an allocation generation.  Generations increase monotonically over
// the life of an interpreter; every cell remembers the generation it was
// allocated in.
type Gen uint32

// Handle references a cell slot in an Arena.  The low 32 bits are the slot
// index and the high 32 bits are the slot version, which changes each time
// the slot is freed.  A Handle therefore never aliases a cell allocated
// after its own cell was swept.
type Handle uint64

const handleIndexMask = 0x00000000FFFFFFFF

func makeHandle(index, version uint32) Handle {
	return Handle(uint64(version)<<32 | uint64(index))
}

func (h Handle) index() uint32 {
	return uint32(h & handleIndexMask)
}

func (h Handle) version() uint32 {
	return uint32(h >> 32)
}

func (h Handle) String() string {
	return fmt.Sprintf("%d.%d", h.index(), h.version())
}

// Cell is a two-slot pair building lists and improper pairs.
type Cell struct {
	Head Value
	Tail Value
}

type slot struct {
	cell    Cell
	gen     Gen
	version uint32
	used    bool
}

// LiveSet is a set of cells that must survive a Sweep.
type LiveSet map[Handle]struct{}

// Add inserts h into the set and returns false if h was already present.
func (s LiveSet) Add(h Handle) bool {
	if _, ok := s[h]; ok {
		return false
	}
	s[h] = struct{}{}
	return true
}

// Has returns true if h is in the set.
func (s LiveSet) Has(h Handle) bool {
	_, ok := s[h]
	return ok
}

// Stats summarizes the activity of an Arena.
type Stats struct {
	// Live is the number of cells currently allocated.
	Live int
	// Allocated is the total number of cells ever allocated.
	Allocated int
	// Freed is the total number of cells released by Sweep.
	Freed int
	// Sweeps is the number of calls to Sweep.
	Sweeps int
}

// Arena is an index-based cons cell allocator.  Cells are only released by
// Sweep.  An Arena is not safe for concurrent use.
type Arena struct {
	slots []slot
	free  []uint32
	stats Stats
}

// NewArena returns an empty Arena with room for n cells before growing.
func NewArena(n int) *Arena {
	return &Arena{
		slots: make([]slot, 0, n),
	}
}

// Cons allocates a new cell in generation gen and returns a value
// referencing it.
func (a *Arena) Cons(head, tail Value, gen Gen) Value {
	var i uint32
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		if uint64(len(a.slots)) > handleIndexMask {
			panic("arena exhausted")
		}
		i = uint32(len(a.slots))
		a.slots = append(a.slots, slot{version: 1})
	}
	s := &a.slots[i]
	s.cell = Cell{head, tail}
	s.gen = gen
	s.used = true
	a.stats.Live++
	a.stats.Allocated++
	return cellValue(makeHandle(i, s.version))
}

func (a *Arena) slot(h Handle) (*slot, bool) {
	i := h.index()
	if uint64(i) >= uint64(len(a.slots)) {
		return nil, false
	}
	s := &a.slots[i]
	if !s.used || s.version != h.version() {
		return nil, false
	}
	return s, true
}

// Valid returns true if h references a cell that has not been swept.
func (a *Arena) Valid(h Handle) bool {
	_, ok := a.slot(h)
	return ok
}

// Cell returns the cell referenced by v.  Cell returns false if v is not a
// cell.  Cell panics if v references a cell that has been swept; such a
// reference indicates a reclamation bug, not a user error.
func (a *Arena) Cell(v Value) (*Cell, bool) {
	h, ok := GetHandle(v)
	if !ok {
		return nil, false
	}
	s, ok := a.slot(h)
	if !ok {
		panicf("dangling cell reference: %v", h)
	}
	return &s.cell, true
}

// MustCell returns the cell referenced by v.
// MustCell panics if v is not a live cell.
func (a *Arena) MustCell(v Value) *Cell {
	c, ok := a.Cell(v)
	if !ok {
		panicf("not a cell: %v", v.Type())
	}
	return c
}

// Head returns the head of cell v.  Head returns Nil if v is not a cell.
func (a *Arena) Head(v Value) Value {
	c, ok := a.Cell(v)
	if !ok {
		return Nil()
	}
	return c.Head
}

// Tail returns the tail of cell v.  Tail returns Nil if v is not a cell.
func (a *Arena) Tail(v Value) Value {
	c, ok := a.Cell(v)
	if !ok {
		return Nil()
	}
	return c.Tail
}

// Gen returns the generation cell h was allocated in.
func (a *Arena) Gen(h Handle) (Gen, bool) {
	s, ok := a.slot(h)
	if !ok {
		return 0, false
	}
	return s.gen, true
}

// Live returns the number of cells currently allocated.
func (a *Arena) Live() int {
	return a.stats.Live
}

// Stats returns a snapshot of allocation counters.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Sweep frees every allocated cell whose generation is newer than gen and
// which is not present in live.  Cells allocated in gen or earlier are never
// freed by Sweep.  Sweep returns the number of cells freed.
func (a *Arena) Sweep(live LiveSet, gen Gen) int {
	a.stats.Sweeps++
	n := 0
	for i := range a.slots {
		s := &a.slots[i]
		if !s.used || s.gen <= gen {
			continue
		}
		if live.Has(makeHandle(uint32(i), s.version)) {
			continue
		}
		s.cell = Cell{}
		s.used = false
		s.version++
		if s.version == 0 {
			s.version = 1
		}
		a.free = append(a.free, uint32(i))
		n++
	}
	a.stats.Live -= n
	a.stats.Freed += n
	return n
}
