package symbol

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultGlobalTable holds the atoms every interpreter starts with.  Packages
// intern their fixed atoms (builtin names, reserved markers) into it during
// init so that CopyGlobalTable gives each interpreter the same IDs for them.
var DefaultGlobalTable Exporter = newTable()

// Table maps atom text to IDs and back.
type Table interface {
	// Len returns the number of atoms interned in the table.
	Len() int
	// Intern inserts s into the table if it is not present and returns its
	// ID.
	Intern(s string) ID
	// Peek retrieves the ID of s without interning it.  Peek returns true
	// iff s has been interned.
	Peek(s string) (ID, bool)
	// Symbol returns the text interned as id.
	Symbol(id ID) (string, bool)
}

// ResolveUnknown returns a Table whose Symbol method describes IDs unknown to
// t using format instead of failing.  All other methods proxy t.
func ResolveUnknown(format string, t Table) Table {
	if format == "" {
		format = defaultUnknownResolverFormat
	}
	return &unknownResolver{format, t}
}

const defaultUnknownResolverFormat = "#<ATOM %#x>"

type unknownResolver struct {
	format string
	Table
}

// Symbol overrides t.Table.Symbol.  Symbol always returns true.
func (t *unknownResolver) Symbol(id ID) (string, bool) {
	s, ok := t.Table.Symbol(id)
	if ok {
		return s, true
	}
	return fmt.Sprintf(t.format, uint32(id)), true
}

// Exporter is a table that can dump its contents.
type Exporter interface {
	Table
	// Export returns every row of the table sorted by text.  The rows can be
	// passed to NewTable to bootstrap a copy.
	Export() []TableRow
}

// BulkInterner is a table that can insert multiple atoms under one lock.
type BulkInterner interface {
	Table
	// InternAll performs a bulk Intern and returns IDs matching symbols.
	InternAll(symbols ...string) []ID
}

// InternAll interns every symbol in t and returns the IDs in order.
func InternAll(t Table, symbols ...string) []ID {
	switch t := t.(type) {
	case BulkInterner:
		return t.InternAll(symbols...)
	default:
		ids := make([]ID, 0, len(symbols))
		for _, s := range symbols {
			ids = append(ids, t.Intern(s))
		}
		return ids
	}
}

// NewTable returns a table seeded with rows.
func NewTable(rows ...TableRow) Exporter {
	return newTable(rows...)
}

// CopyGlobalTable is equivalent to NewTable(DefaultGlobalTable.Export()...)
func CopyGlobalTable() Exporter {
	return newTable(DefaultGlobalTable.Export()...)
}

type TableRow struct {
	Symbol string
	ID     ID
}

func sortTableRowBySymbol(r []TableRow) {
	sort.Slice(r, func(i, j int) bool { return r[i].Symbol < r[j].Symbol })
}

type table struct {
	sync sync.RWMutex
	g    IDGen
	i    map[ID]string
	s    map[string]ID
}

var (
	_ Table        = (*table)(nil)
	_ BulkInterner = (*table)(nil)
	_ Exporter     = (*table)(nil)
)

func newTable(r ...TableRow) *table {
	t := &table{
		i: make(map[ID]string, len(r)),
		s: make(map[string]ID, len(r)),
	}
	var last ID
	for i := range r {
		if r[i].ID == NoID {
			panic("table row has no id: " + r[i].Symbol)
		}
		t.i[r[i].ID] = r[i].Symbol
		t.s[r[i].Symbol] = r[i].ID
		if r[i].ID > last {
			last = r[i].ID
		}
	}
	t.g = NewIDGen(last)
	return t
}

// Len implements the Table interface
func (t *table) Len() int {
	t.sync.RLock()
	defer t.sync.RUnlock()
	return len(t.s)
}

// Export implements the Exporter interface
func (t *table) Export() []TableRow {
	t.sync.RLock()
	defer t.sync.RUnlock()
	r := make([]TableRow, 0, len(t.s))
	for sym, id := range t.s {
		r = append(r, TableRow{Symbol: sym, ID: id})
	}
	sortTableRowBySymbol(r)
	return r
}

// Intern implements the Table interface
func (t *table) Intern(s string) ID {
	t.sync.RLock()
	id, ok := t.s[s]
	t.sync.RUnlock()
	if ok {
		return id
	}
	t.sync.Lock()
	defer t.sync.Unlock()
	return t.intern(s)
}

// InternAll implements the BulkInterner interface
func (t *table) InternAll(s ...string) []ID {
	ids := make([]ID, 0, len(s))
	t.sync.Lock()
	defer t.sync.Unlock()
	for _, s := range s {
		ids = append(ids, t.intern(s))
	}
	return ids
}

// intern must be called with the write lock held.  The lookup is repeated
// because another writer may have won the race for s.
func (t *table) intern(s string) ID {
	if id, ok := t.s[s]; ok {
		return id
	}
	id := t.g.NewID()
	t.s[s] = id
	t.i[id] = s
	return id
}

// Peek implements the Table interface
func (t *table) Peek(s string) (ID, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	id, ok := t.s[s]
	return id, ok
}

// Symbol implements the Table interface
func (t *table) Symbol(id ID) (string, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	s, ok := t.i[id]
	return s, ok
}
