package window

import (
	"math"

	"github.com/Gaurav-Gosain/deskos/internal/drag"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
)

// MoveDrag is the setup handler for dragging the title bar.
//
// On a maximized window, moves are ignored until the pointer has travelled
// UnmaximizeThreshold below the press point. The window then restores to its
// normal size once, with the grab offset scaled so the pointer keeps its
// relative place along the title bar.
func (w *Window) MoveDrag(down geometry.Point) drag.MoveFunc {
	if w.Mode() == Minimized {
		return nil
	}

	pos := w.store.Position()
	size := w.store.Size()
	dx := pos.X - down.X
	dy := pos.Y - down.Y

	pending := false
	if saved := w.unmaximize; saved != nil && size.Width > 0 {
		grab := float64(down.X - pos.X)
		dx = -int(math.Round(grab * float64(saved.Width) / float64(size.Width)))
		pending = true
	}

	width := size.Width
	w.frozen = true

	return func(p geometry.Point) {
		if pending {
			if p.Y < down.Y+w.opts.UnmaximizeThreshold {
				return
			}
			width = w.toggleMaximize(true, w.opts.DragDuration).Width
			pending = false
		}
		w.store.SetPosition(p.X+dx, p.Y+dy, width)
	}
}

// ResizeDrag is the setup handler for dragging the resize handle. It aborts
// while maximized, minimized or when the window is not resizable.
func (w *Window) ResizeDrag(down geometry.Point) drag.MoveFunc {
	if !w.opts.Resizable || w.Mode() != Normal {
		return nil
	}

	initial := w.store.Size()
	w.frozen = true

	return func(p geometry.Point) {
		w.store.SetSize(
			initial.Width+p.X-down.X,
			initial.Height+p.Y-down.Y,
			false,
		)
	}
}

// EndDrag clears the frozen flag set by MoveDrag or ResizeDrag.
func (w *Window) EndDrag() {
	if !w.frozen {
		return
	}
	w.frozen = false
	w.notify()
}
