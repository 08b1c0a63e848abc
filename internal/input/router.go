// Package input routes pointer events for the whole desktop. A single router
// receives every press, motion and release, finds the window under the
// pointer and drives the drag controller, so no window installs listeners of
// its own.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/drag"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
)

// TaskbarHitFunc reports which instance, if any, owns the taskbar entry at p.
// The second result is false when p is outside the taskbar entries.
type TaskbarHitFunc func(p geometry.Point) (id int, ok bool)

// PointerButton identifies a pointer button.
type PointerButton int

const (
	ButtonLeft PointerButton = iota
	ButtonRight
	ButtonOther
)

// Router dispatches pointer events to the registry and the drag controller.
type Router struct {
	reg     *registry.Registry
	drag    drag.Controller
	taskbar TaskbarHitFunc
}

// NewRouter returns a router for reg.
func NewRouter(reg *registry.Registry) *Router {
	return &Router{reg: reg}
}

// SetTaskbar installs the taskbar hit test.
func (r *Router) SetTaskbar(hit TaskbarHitFunc) {
	r.taskbar = hit
}

// Dragging reports whether a drag is in progress.
func (r *Router) Dragging() bool {
	return r.drag.Active()
}

// Handle adapts Bubble Tea mouse and focus messages. It reports whether msg
// was a pointer event.
func (r *Router) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		r.Press(geometry.Point{X: mouse.X, Y: mouse.Y}, buttonOf(mouse.Button))
	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		r.Motion(geometry.Point{X: mouse.X, Y: mouse.Y})
	case tea.MouseReleaseMsg:
		r.Release()
	case tea.BlurMsg:
		r.Blur()
	default:
		return false
	}
	return true
}

func buttonOf(b tea.MouseButton) PointerButton {
	switch b {
	case tea.MouseLeft:
		return ButtonLeft
	case tea.MouseRight:
		return ButtonRight
	default:
		return ButtonOther
	}
}

// Press handles a pointer-down.
func (r *Router) Press(p geometry.Point, button PointerButton) {
	if r.taskbar != nil {
		if id, ok := r.taskbar(p); ok {
			r.toggleFromTaskbar(id)
			return
		}
	}

	// Windows may extend under the taskbar; that part is not theirs.
	if p.Y >= r.reg.Screen().Usable().Height {
		return
	}

	inst, ok := r.windowAt(p)
	if !ok {
		return
	}
	r.reg.Select(inst.ID)

	win := inst.Window
	region := HitRegion(win.Rect(), win.Resizable(), p)

	if button == ButtonRight {
		r.drag.Start(p, win.ResizeDrag, win.EndDrag)
		return
	}
	if button != ButtonLeft {
		return
	}

	switch region {
	case RegionClose:
		r.reg.Close(inst.ID)
	case RegionMaximize:
		r.reg.ToggleMaximize(inst.ID)
	case RegionMinimize:
		r.reg.Hide(inst.ID)
	case RegionTitle:
		r.drag.Start(p, win.MoveDrag, win.EndDrag)
	case RegionResize:
		r.drag.Start(p, win.ResizeDrag, win.EndDrag)
	}
}

// Motion forwards pointer movement to the active drag.
func (r *Router) Motion(p geometry.Point) {
	r.drag.Move(p)
}

// Release ends the active drag wherever the pointer is.
func (r *Router) Release() {
	r.drag.End()
}

// Blur ends the active drag when the desktop loses focus.
func (r *Router) Blur() {
	r.drag.End()
}

func (r *Router) toggleFromTaskbar(id int) {
	inst, ok := r.reg.Get(id)
	if !ok {
		return
	}
	switch {
	case !inst.Visible:
		r.reg.Show(id)
	case inst.Active:
		r.reg.Hide(id)
	default:
		r.reg.Select(id)
	}
}

// windowAt returns the topmost visible window containing p.
func (r *Router) windowAt(p geometry.Point) (registry.Instance, bool) {
	var top registry.Instance
	found := false
	for _, inst := range r.reg.Instances() {
		if !inst.Visible {
			continue
		}
		if !inst.Window.Rect().Contains(p) {
			continue
		}
		if !found || inst.ZIndex > top.ZIndex {
			top = inst
			found = true
		}
	}
	return top, found
}
