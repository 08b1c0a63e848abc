// Package drag turns a pointer-down, move*, up sequence into calls to a move
// handler chosen when the drag starts.
package drag

import "github.com/Gaurav-Gosain/deskos/internal/geometry"

// MoveFunc receives every pointer position between down and up.
type MoveFunc func(p geometry.Point)

// SetupFunc is called on pointer-down. Returning nil aborts the drag.
type SetupFunc func(down geometry.Point) MoveFunc

// Controller tracks at most one drag at a time. The zero value is ready to
// use.
type Controller struct {
	move    MoveFunc
	cleanup func()
	active  bool
}

// Start invokes setup and begins tracking if it returns a move handler.
// cleanup, if non-nil, runs exactly once when the drag ends. Starting while
// another drag is active ends the previous one first.
func (c *Controller) Start(down geometry.Point, setup SetupFunc, cleanup func()) bool {
	if c.active {
		c.End()
	}
	move := setup(down)
	if move == nil {
		return false
	}
	c.move = move
	c.cleanup = cleanup
	c.active = true
	return true
}

// Move forwards p to the active drag. It does nothing when no drag is active.
func (c *Controller) Move(p geometry.Point) {
	if !c.active {
		return
	}
	c.move(p)
}

// End stops tracking and runs the cleanup callback.
func (c *Controller) End() {
	if !c.active {
		return
	}
	cleanup := c.cleanup
	c.move = nil
	c.cleanup = nil
	c.active = false
	if cleanup != nil {
		cleanup()
	}
}

// Active reports whether a drag is in progress.
func (c *Controller) Active() bool {
	return c.active
}
