// Package geometry holds the position and size state of a single window and
// the constrained setters used by drags and layout transitions.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConstraints is returned when size constraints cannot be satisfied.
var ErrInvalidConstraints = errors.New("invalid window constraints")

// Unbounded is the effective maximum when a constraint has no upper bound.
const Unbounded = math.MaxInt32

// Point is a position on the desktop.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// IsZero reports whether the size is the collapsed {0,0} representation.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect is a position plus a size.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Pos returns the top-left corner.
func (r Rect) Pos() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle size.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Constraints bound the size of a window. They are fixed at creation.
// A zero MaxWidth or MaxHeight means unbounded.
type Constraints struct {
	MinWidth        int
	MinHeight       int
	MaxWidth        int
	MaxHeight       int
	KeepAspectRatio bool
}

// Validate checks that the constraints describe a non-empty size range.
func (c Constraints) Validate() error {
	if c.MinWidth < 1 || c.MinHeight < 1 {
		return fmt.Errorf("%w: minimum size %dx%d must be at least 1x1",
			ErrInvalidConstraints, c.MinWidth, c.MinHeight)
	}
	if c.MaxWidth < 0 || c.MaxHeight < 0 {
		return fmt.Errorf("%w: negative maximum size %dx%d",
			ErrInvalidConstraints, c.MaxWidth, c.MaxHeight)
	}
	if c.MinWidth > c.maxWidth() {
		return fmt.Errorf("%w: min width %d exceeds max width %d",
			ErrInvalidConstraints, c.MinWidth, c.MaxWidth)
	}
	if c.MinHeight > c.maxHeight() {
		return fmt.Errorf("%w: min height %d exceeds max height %d",
			ErrInvalidConstraints, c.MinHeight, c.MaxHeight)
	}
	return nil
}

// AspectRatio returns width/height of the minimum size.
func (c Constraints) AspectRatio() float64 {
	return float64(c.MinWidth) / float64(c.MinHeight)
}

func (c Constraints) maxWidth() int {
	if c.MaxWidth == 0 {
		return Unbounded
	}
	return c.MaxWidth
}

func (c Constraints) maxHeight() int {
	if c.MaxHeight == 0 {
		return Unbounded
	}
	return c.MaxHeight
}

func (c Constraints) clampWidth(w int) int {
	return clamp(w, c.MinWidth, c.maxWidth())
}

func (c Constraints) clampHeight(h int) int {
	return clamp(h, c.MinHeight, c.maxHeight())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
