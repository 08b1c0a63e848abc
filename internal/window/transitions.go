package window

import (
	"time"

	"github.com/Gaurav-Gosain/deskos/internal/geometry"
)

// ToggleMaximize maximizes a normal window or restores a maximized one and
// returns the resulting size.
func (w *Window) ToggleMaximize() geometry.Size {
	return w.toggleMaximize(false, w.opts.Duration)
}

func (w *Window) toggleMaximize(keepPosition bool, d time.Duration) geometry.Size {
	if !w.opts.Resizable || w.Mode() == Minimized {
		return w.store.Size()
	}

	w.gate.Animate(d)

	if saved := w.unmaximize; saved != nil {
		if !keepPosition {
			w.store.SetPosition(saved.X, saved.Y, saved.Width)
		}
		w.unmaximize = nil
		return w.store.SetSize(saved.Width, saved.Height, true)
	}

	rect := w.store.Rect()
	w.unmaximize = &rect
	if !keepPosition {
		w.store.SetPosition(0, 0, rect.Width)
	}
	return w.store.SetMaxSize()
}

// SetVisible reacts to the registry visibility flag. Hiding collapses the
// window and remembers its geometry; showing restores it. Both are
// idempotent.
func (w *Window) SetVisible(visible bool) {
	if !visible {
		if w.unminimize != nil {
			return
		}
		w.gate.Animate(w.opts.Duration)
		rect := w.store.Rect()
		w.unminimize = &rect
		w.store.Collapse()
		w.store.SetPosition(0, w.opts.MinimizedTop, 0)
		return
	}

	saved := w.unminimize
	if saved == nil {
		return
	}
	w.gate.Animate(w.opts.Duration)
	w.unminimize = nil
	w.store.Restore(*saved)
	if w.unmaximize != nil {
		// The viewport may have changed while minimized.
		w.store.SetMaxSize()
	}
}

// Refit re-applies the maximized size after the viewport changed. It does
// not animate and does not change mode.
func (w *Window) Refit() {
	if w.Mode() == Maximized {
		w.store.SetMaxSize()
	}
}
