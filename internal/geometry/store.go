package geometry

import "math"

// Store holds the current position and size of one window.
//
// Every setter returns the value it applied so callers can chain dependent
// decisions without reading the store back. Sizes produced by SetSize,
// SetMaxSize and Restore always satisfy the constraints; Collapse is the only
// way to reach the {0,0} minimized representation.
type Store struct {
	constraints Constraints
	screen      *Screen
	pos         Point
	size        Size
	onChange    func()
}

// NewStore validates the constraints and returns a store at the given
// initial rectangle. The initial size is clamped like SetSize.
func NewStore(c Constraints, screen *Screen, initial Rect) (*Store, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s := &Store{constraints: c, screen: screen}
	s.SetSize(initial.Width, initial.Height, false)
	s.SetPosition(initial.X, initial.Y, 0)
	return s, nil
}

// OnChange registers a callback invoked after every mutation.
func (s *Store) OnChange(fn func()) {
	s.onChange = fn
}

// Screen returns the desktop the store clamps against.
func (s *Store) Screen() *Screen { return s.screen }

// Position returns the top-left corner.
func (s *Store) Position() Point { return s.pos }

// Size returns the current size.
func (s *Store) Size() Size { return s.size }

// Rect returns position and size together.
func (s *Store) Rect() Rect {
	return Rect{X: s.pos.X, Y: s.pos.Y, Width: s.size.Width, Height: s.size.Height}
}

// Collapsed reports whether the window is in its minimized representation.
func (s *Store) Collapsed() bool {
	return s.size.IsZero()
}

// SetSize clamps the requested size to the constraints. With
// KeepAspectRatio, the dimension asking for the larger window drives and the
// other one is derived from the constraint ratio, unless force is set.
func (s *Store) SetSize(width, height int, force bool) Size {
	c := s.constraints
	var w, h int
	if c.KeepAspectRatio && !force {
		w, h = s.ratioSize(width, height)
	} else {
		w = c.clampWidth(width)
		h = c.clampHeight(height)
	}
	s.size = Size{Width: w, Height: h}
	s.changed()
	return s.size
}

func (s *Store) ratioSize(width, height int) (int, int) {
	c := s.constraints
	ratio := c.AspectRatio()
	if float64(width) >= float64(height)*ratio {
		w := c.clampWidth(width)
		h := c.clampHeight(int(math.Round(float64(w) / ratio)))
		// Height hit a bound; derive width back from it.
		return c.clampWidth(int(math.Round(float64(h) * ratio))), h
	}
	h := c.clampHeight(height)
	w := c.clampWidth(int(math.Round(float64(h) * ratio)))
	return w, c.clampHeight(int(math.Round(float64(w) / ratio)))
}

// SetPosition moves the window, keeping at least Screen.Margin of it on the
// desktop. A positive widthHint replaces the current width in the horizontal
// clamp, for moves that happen while the width is changing.
func (s *Store) SetPosition(x, y, widthHint int) Point {
	width := s.size.Width
	if widthHint > 0 {
		width = widthHint
	}
	margin := 0
	screenW, usableH := 0, 0
	if s.screen != nil {
		margin = s.screen.Margin
		screenW = s.screen.Width
		usableH = s.screen.Usable().Height
	}

	minX := min(0, margin-width)
	maxX := max(minX, screenW-margin)
	maxY := max(0, usableH-margin)

	s.pos = Point{X: clamp(x, minX, maxX), Y: clamp(y, 0, maxY)}
	s.changed()
	return s.pos
}

// SetMaxSize sizes the window to fill the usable desktop, still bounded by
// the constraints. The aspect ratio is ignored.
func (s *Store) SetMaxSize() Size {
	if s.screen == nil {
		return s.size
	}
	u := s.screen.Usable()
	return s.SetSize(u.Width, u.Height, true)
}

// Collapse sets the {0,0} minimized size. It must only be used to minimize.
func (s *Store) Collapse() {
	s.size = Size{}
	s.changed()
}

// Restore reapplies a previously saved rectangle. The size is forced so a
// saved maximized rect comes back exactly.
func (s *Store) Restore(r Rect) Rect {
	s.SetSize(r.Width, r.Height, true)
	s.SetPosition(r.X, r.Y, r.Width)
	return s.Rect()
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
