package symbol

import "sync/atomic"

// An ID is the interned handle of an atom.  Two IDs produced by the same
// Table are equal iff they were interned from equal text.
type ID uint32

// NoID is never returned by Intern.  It is the zero ID and marks the absence
// of a symbol.
const NoID ID = 0

// MaxID is the largest ID a Table will hand out.
const MaxID ID = 0xFFFFFFFF

// IDGen is a function that generates unique IDs.
type IDGen interface {
	// NewID returns an ID that the IDGen has not returned before.
	NewID() ID
}

// NewIDGen returns a basic IDGen that will generate sequential IDs starting
// at last+1.
func NewIDGen(last ID) IDGen {
	return &gen{lastid: uint32(last)}
}

type gen struct {
	lastid uint32
}

var _ IDGen = (*gen)(nil)

func (g *gen) NewID() ID {
	id := atomic.AddUint32(&g.lastid, 1)
	if id == 0 {
		panic("symbol ids exhausted")
	}
	return ID(id)
}
