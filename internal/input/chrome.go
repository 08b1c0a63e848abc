package input

import "github.com/Gaurav-Gosain/deskos/internal/geometry"

// Region identifies the part of a window under the pointer.
type Region int

const (
	RegionNone Region = iota
	RegionContent
	RegionTitle
	RegionMinimize
	RegionMaximize
	RegionClose
	RegionResize
)

// String returns a string representation of the region.
func (r Region) String() string {
	switch r {
	case RegionContent:
		return "content"
	case RegionTitle:
		return "title"
	case RegionMinimize:
		return "minimize"
	case RegionMaximize:
		return "maximize"
	case RegionClose:
		return "close"
	case RegionResize:
		return "resize"
	default:
		return "none"
	}
}

// ButtonWidth is the width of a title bar button, brackets included.
const ButtonWidth = 3

// Button is a title bar button and the cells it occupies.
type Button struct {
	Region Region
	X      int
}

// Buttons returns the title bar buttons of a window, right to left:
// close, maximize (resizable windows only), minimize.
func Buttons(r geometry.Rect, resizable bool) []Button {
	right := r.X + r.Width - 1 // border column
	x := right - ButtonWidth
	buttons := []Button{{Region: RegionClose, X: x}}
	if resizable {
		x -= ButtonWidth
		buttons = append(buttons, Button{Region: RegionMaximize, X: x})
	}
	x -= ButtonWidth
	buttons = append(buttons, Button{Region: RegionMinimize, X: x})

	// Drop buttons that would overlap the left border on tiny windows.
	kept := buttons[:0]
	for _, b := range buttons {
		if b.X > r.X {
			kept = append(kept, b)
		}
	}
	return kept
}

// HitRegion returns the region of r under p.
func HitRegion(r geometry.Rect, resizable bool, p geometry.Point) Region {
	if !r.Contains(p) {
		return RegionNone
	}
	if p.Y == r.Y {
		for _, b := range Buttons(r, resizable) {
			if p.X >= b.X && p.X < b.X+ButtonWidth {
				return b.Region
			}
		}
		return RegionTitle
	}
	if resizable && p.X == r.X+r.Width-1 && p.Y == r.Y+r.Height-1 {
		return RegionResize
	}
	return RegionContent
}
