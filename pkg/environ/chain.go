package environ

import (
	"fmt"

	"github.com/luthersystems/scopelisp/pkg/sexp"
)

// Chain owns the frames created by an interpreter and the generation counter
// used to tag cell allocations.  Chain replaces a process-wide "most recent
// frame" pointer: Top reports the most recent frame and Release discards
// every frame newer than a Cursor.  A Chain is not safe for concurrent use.
type Chain struct {
	root   *Frame
	frames []*Frame
	gen    sexp.Gen
}

// Cursor records a point in a Chain's history.  Frames created and cells
// allocated after the cursor was taken are newer than it.
type Cursor struct {
	// Frame is the frame that was most recent when the cursor was taken.
	Frame  *Frame
	height int
	// Gen is the last generation that is not newer than the cursor.
	Gen sexp.Gen
}

// Height returns the number of frames the chain held when the cursor was
// taken.
func (c Cursor) Height() int {
	return c.height
}

// NewChain returns a Chain containing a root frame populated with bindings.
// If bindings is nil the root frame is empty.
func NewChain(bindings Bindings) *Chain {
	root := newFrame(nil, bindings, 0)
	return &Chain{
		root:   root,
		frames: []*Frame{root},
	}
}

// Root returns the global frame.
func (c *Chain) Root() *Frame {
	return c.root
}

// Top returns the most recently created frame that has not been released.
func (c *Chain) Top() *Frame {
	return c.frames[len(c.frames)-1]
}

// Len returns the number of frames held by the chain, including the root.
func (c *Chain) Len() int {
	return len(c.frames)
}

// Gen returns the current generation.  Cells allocated now belong to it.
func (c *Chain) Gen() sexp.Gen {
	return c.gen
}

// Extend creates a frame whose parent is parent, records it as the most
// recent frame and starts a new generation for it.
func (c *Chain) Extend(parent *Frame, bindings Bindings) *Frame {
	if parent == nil {
		panic("environ: extend without parent frame")
	}
	f := newFrame(parent, bindings, c.next())
	c.frames = append(c.frames, f)
	return f
}

// Mark returns a cursor at the chain's current position and starts a new
// generation so that every cell allocated afterwards is newer than the
// cursor.
func (c *Chain) Mark() Cursor {
	cur := Cursor{
		Frame:  c.Top(),
		height: len(c.frames),
		Gen:    c.gen,
	}
	c.next()
	return cur
}

// Release discards every frame created after cur was taken and returns the
// number of frames discarded.  Release returns an error if cur does not
// belong to the chain or its frame was already released.
func (c *Chain) Release(cur Cursor) (int, error) {
	if !c.Holds(cur) {
		return 0, fmt.Errorf("cursor is not part of the chain")
	}
	n := len(c.frames) - cur.height
	for i := cur.height; i < len(c.frames); i++ {
		c.frames[i] = nil
	}
	c.frames = c.frames[:cur.height]
	return n, nil
}

// Holds returns true if the frame cur was taken at has not been released.
func (c *Chain) Holds(cur Cursor) bool {
	return cur.height >= 1 && cur.height <= len(c.frames) && c.frames[cur.height-1] == cur.Frame
}

// Newer returns true if f was created after cur was taken.
func (c *Chain) Newer(f *Frame, cur Cursor) bool {
	return f.gen > cur.Gen
}

func (c *Chain) next() sexp.Gen {
	c.gen++
	if c.gen == 0 {
		panic("environ: generation counter overflow")
	}
	return c.gen
}
