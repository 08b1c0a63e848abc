// Package window implements the layout state machine of a single window:
// maximize, minimize and their reversals, plus the move and resize drag
// handlers built on top of the geometry store.
package window

import (
	"time"

	"github.com/Gaurav-Gosain/deskos/internal/animation"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
)

// Mode is the layout mode of a window.
type Mode int

const (
	// Normal is the free-floating layout.
	Normal Mode = iota
	// Maximized fills the usable desktop.
	Maximized
	// Minimized is collapsed to zero size.
	Minimized
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Maximized:
		return "maximized"
	case Minimized:
		return "minimized"
	default:
		return "unknown"
	}
}

// Options tune transitions. Zero fields fall back to defaults.
type Options struct {
	// Duration is used for maximize/minimize and their reversals.
	Duration time.Duration
	// DragDuration is used when a drag pulls a window out of maximized.
	DragDuration time.Duration
	// UnmaximizeThreshold is how far the pointer must travel down before a
	// drag on a maximized window restores it.
	UnmaximizeThreshold int
	// Resizable enables maximize and resize drags.
	Resizable bool
	// MinimizedTop is the y position of the collapsed window.
	MinimizedTop int
}

// DefaultUnmaximizeThreshold is the drag distance, in desktop units, that
// pulls a maximized window back to its normal size.
const DefaultUnmaximizeThreshold = 10

func (o Options) withDefaults() Options {
	if o.Duration <= 0 {
		o.Duration = animation.DefaultDuration
	}
	if o.DragDuration <= 0 {
		o.DragDuration = animation.FastDuration
	}
	if o.UnmaximizeThreshold <= 0 {
		o.UnmaximizeThreshold = DefaultUnmaximizeThreshold
	}
	return o
}

// Window composes a geometry store and an animation gate.
//
// Minimized is derived from the collapsed size; Maximized from the presence
// of the saved pre-maximize rectangle. The two saved rectangles are kept
// apart: minimizing a maximized window saves the maximized rectangle and
// leaves the pre-maximize one untouched.
type Window struct {
	store *geometry.Store
	gate  *animation.Gate
	opts  Options

	unmaximize *geometry.Rect
	unminimize *geometry.Rect
	frozen     bool

	watchers  []*watcher
	nextWatch int
}

type watcher struct {
	id int
	fn func()
}

// New builds a window around an existing store.
func New(store *geometry.Store, sched animation.Scheduler, opts Options) *Window {
	w := &Window{
		store: store,
		gate:  animation.NewGate(sched),
		opts:  opts.withDefaults(),
	}
	store.OnChange(w.notify)
	w.gate.OnChange(w.notify)
	return w
}

// Store exposes the geometry store for direct drag mutation.
func (w *Window) Store() *geometry.Store { return w.store }

// Rect returns the current geometry.
func (w *Window) Rect() geometry.Rect { return w.store.Rect() }

// Animation returns the armed transition duration, if any.
func (w *Window) Animation() (time.Duration, bool) { return w.gate.Armed() }

// Resizable reports whether maximize and resize are allowed.
func (w *Window) Resizable() bool { return w.opts.Resizable }

// Frozen reports whether a drag is in progress on this window.
func (w *Window) Frozen() bool { return w.frozen }

// Mode returns the current layout mode.
func (w *Window) Mode() Mode {
	switch {
	case w.store.Collapsed():
		return Minimized
	case w.unmaximize != nil:
		return Maximized
	default:
		return Normal
	}
}

// SetOptions replaces the transition options. Used on config reload.
func (w *Window) SetOptions(opts Options) {
	w.opts = opts.withDefaults()
}

// Watch registers fn to run after every geometry or animation change.
func (w *Window) Watch(fn func()) (unwatch func()) {
	w.nextWatch++
	entry := &watcher{id: w.nextWatch, fn: fn}
	w.watchers = append(w.watchers, entry)
	return func() {
		for i, existing := range w.watchers {
			if existing.id == entry.id {
				w.watchers = append(w.watchers[:i], w.watchers[i+1:]...)
				return
			}
		}
	}
}

// Close stops the animation timer and drops all watchers.
func (w *Window) Close() {
	w.gate.Stop()
	w.watchers = nil
}

func (w *Window) notify() {
	for _, entry := range w.watchers {
		entry.fn()
	}
}
