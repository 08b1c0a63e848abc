package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskos/internal/animation"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/Gaurav-Gosain/deskos/internal/window"
)

type fixture struct {
	reg    *registry.Registry
	router *Router
	a, b   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	screen := geometry.NewScreen(80, 24, 1, 4)
	reg := registry.New(screen, animation.NewManualScheduler(), registry.Options{})

	open := func(title string, bounds geometry.Rect) int {
		inst, err := reg.Open(registry.Descriptor{Title: title, MinWidth: 20, MinHeight: 6, Bounds: bounds})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		return inst.ID
	}
	a := open("A", geometry.Rect{X: 2, Y: 2, Width: 30, Height: 10})
	b := open("B", geometry.Rect{X: 10, Y: 5, Width: 30, Height: 10})
	return &fixture{reg: reg, router: NewRouter(reg), a: a, b: b}
}

func (f *fixture) get(t *testing.T, id int) registry.Instance {
	t.Helper()
	inst, ok := f.reg.Get(id)
	if !ok {
		t.Fatalf("window %d not found", id)
	}
	return inst
}

func TestHitRegion(t *testing.T) {
	r := geometry.Rect{X: 10, Y: 5, Width: 30, Height: 10}

	tests := []struct {
		name      string
		p         geometry.Point
		resizable bool
		want      Region
	}{
		{"outside", geometry.Point{X: 0, Y: 0}, true, RegionNone},
		{"title", geometry.Point{X: 15, Y: 5}, true, RegionTitle},
		{"close", geometry.Point{X: 37, Y: 5}, true, RegionClose},
		{"maximize", geometry.Point{X: 34, Y: 5}, true, RegionMaximize},
		{"minimize", geometry.Point{X: 31, Y: 5}, true, RegionMinimize},
		{"fixed minimize moves left of close", geometry.Point{X: 34, Y: 5}, false, RegionMinimize},
		{"fixed title where minimize was", geometry.Point{X: 31, Y: 5}, false, RegionTitle},
		{"content", geometry.Point{X: 15, Y: 8}, true, RegionContent},
		{"resize handle", geometry.Point{X: 39, Y: 14}, true, RegionResize},
		{"no handle when fixed", geometry.Point{X: 39, Y: 14}, false, RegionContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitRegion(r, tt.resizable, tt.p); got != tt.want {
				t.Errorf("HitRegion(%+v, %v) = %v, want %v", tt.p, tt.resizable, got, tt.want)
			}
		})
	}
}

func TestPressSelectsTopmostWindow(t *testing.T) {
	f := newFixture(t)

	// Overlap: B is on top.
	f.router.Press(geometry.Point{X: 20, Y: 8}, ButtonLeft)
	if !f.get(t, f.b).Active {
		t.Error("click in overlap did not keep B active")
	}

	// A only.
	f.router.Press(geometry.Point{X: 4, Y: 4}, ButtonLeft)
	a := f.get(t, f.a)
	if !a.Active || a.ZIndex <= f.get(t, f.b).ZIndex {
		t.Errorf("A not raised: active %v z %d", a.Active, a.ZIndex)
	}
	if f.router.Dragging() {
		t.Error("content click started a drag")
	}
}

func TestTitleDragMovesWindow(t *testing.T) {
	f := newFixture(t)

	f.router.Press(geometry.Point{X: 15, Y: 5}, ButtonLeft)
	if !f.router.Dragging() {
		t.Fatal("title press did not start a drag")
	}
	if !f.get(t, f.b).Window.Frozen() {
		t.Error("dragged window not frozen")
	}

	f.router.Motion(geometry.Point{X: 25, Y: 8})
	if got := f.get(t, f.b).Window.Rect().Pos(); got != (geometry.Point{X: 20, Y: 8}) {
		t.Errorf("position = %+v, want {20 8}", got)
	}

	// Release far outside the window still ends the drag.
	f.router.Release()
	f.router.Motion(geometry.Point{X: 70, Y: 20})
	if got := f.get(t, f.b).Window.Rect().Pos(); got != (geometry.Point{X: 20, Y: 8}) {
		t.Errorf("window moved after release: %+v", got)
	}
	if f.get(t, f.b).Window.Frozen() {
		t.Error("window still frozen after release")
	}
}

func TestTitleButtons(t *testing.T) {
	t.Run("close", func(t *testing.T) {
		f := newFixture(t)
		f.router.Press(geometry.Point{X: 37, Y: 5}, ButtonLeft)
		if _, ok := f.reg.Get(f.b); ok {
			t.Error("close button did not close B")
		}
	})

	t.Run("minimize", func(t *testing.T) {
		f := newFixture(t)
		f.router.Press(geometry.Point{X: 31, Y: 5}, ButtonLeft)
		b := f.get(t, f.b)
		if b.Visible || b.Window.Mode() != window.Minimized {
			t.Errorf("minimize button: visible %v mode %v", b.Visible, b.Window.Mode())
		}
	})

	t.Run("maximize", func(t *testing.T) {
		f := newFixture(t)
		f.router.Press(geometry.Point{X: 34, Y: 5}, ButtonLeft)
		if got := f.get(t, f.b).Window.Rect(); got != (geometry.Rect{X: 0, Y: 0, Width: 80, Height: 23}) {
			t.Errorf("maximized rect = %+v", got)
		}
	})
}

func TestResizeHandleDrag(t *testing.T) {
	f := newFixture(t)

	f.router.Press(geometry.Point{X: 39, Y: 14}, ButtonLeft)
	f.router.Motion(geometry.Point{X: 44, Y: 16})
	f.router.Release()

	if got := f.get(t, f.b).Window.Rect().Size(); got != (geometry.Size{Width: 35, Height: 12}) {
		t.Errorf("size = %+v, want {35 12}", got)
	}
}

func TestRightButtonResizesFromAnywhere(t *testing.T) {
	f := newFixture(t)

	f.router.Press(geometry.Point{X: 20, Y: 10}, ButtonRight)
	f.router.Motion(geometry.Point{X: 15, Y: 8})
	f.router.Release()

	if got := f.get(t, f.b).Window.Rect().Size(); got != (geometry.Size{Width: 25, Height: 8}) {
		t.Errorf("size = %+v, want {25 8}", got)
	}
}

func TestBlurEndsDrag(t *testing.T) {
	f := newFixture(t)
	f.router.Press(geometry.Point{X: 15, Y: 5}, ButtonLeft)
	f.router.Blur()

	if f.router.Dragging() {
		t.Fatal("drag survived blur")
	}
	f.router.Motion(geometry.Point{X: 30, Y: 10})
	if got := f.get(t, f.b).Window.Rect().Pos(); got != (geometry.Point{X: 10, Y: 5}) {
		t.Errorf("window moved after blur: %+v", got)
	}
}

func TestTaskbarToggles(t *testing.T) {
	f := newFixture(t)
	f.router.SetTaskbar(func(p geometry.Point) (int, bool) {
		if p.Y != 23 {
			return 0, false
		}
		return p.X, true
	})
	entry := func(id int) geometry.Point { return geometry.Point{X: id, Y: 23} }

	// Active and visible: hide.
	f.router.Press(entry(f.b), ButtonLeft)
	if f.get(t, f.b).Visible {
		t.Fatal("taskbar click did not hide the active window")
	}

	// Hidden: show and focus.
	f.router.Press(entry(f.b), ButtonLeft)
	if b := f.get(t, f.b); !b.Visible || !b.Active {
		t.Fatalf("taskbar click did not restore: visible %v active %v", b.Visible, b.Active)
	}

	// Visible but inactive: select.
	f.router.Press(entry(f.a), ButtonLeft)
	if a := f.get(t, f.a); !a.Visible || !a.Active {
		t.Errorf("taskbar click did not select A: visible %v active %v", a.Visible, a.Active)
	}
}

func TestPressOnTaskbarRowIgnoresWindowsBelow(t *testing.T) {
	f := newFixture(t)
	inst, err := f.reg.Open(registry.Descriptor{
		Title:     "C",
		MinWidth:  20,
		MinHeight: 6,
		Bounds:    geometry.Rect{X: 40, Y: 18, Width: 30, Height: 10},
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r := inst.Window.Rect(); r.Y+r.Height <= 23 {
		t.Fatalf("window C = %+v does not reach the taskbar row", r)
	}
	f.router.SetTaskbar(func(geometry.Point) (int, bool) { return 0, false })
	f.reg.Select(f.a)

	f.router.Press(geometry.Point{X: 50, Y: 23}, ButtonRight)
	if f.router.Dragging() {
		t.Error("press on the taskbar row started a resize")
	}
	if f.get(t, inst.ID).Active {
		t.Error("press on the taskbar row selected the window under it")
	}

	f.router.Press(geometry.Point{X: 50, Y: 22}, ButtonLeft)
	if !f.get(t, inst.ID).Active {
		t.Error("press above the taskbar did not select the window")
	}
}

func TestHandleTeaMessages(t *testing.T) {
	f := newFixture(t)

	if !f.router.Handle(tea.MouseClickMsg{X: 15, Y: 5, Button: tea.MouseLeft}) {
		t.Fatal("click not handled")
	}
	f.router.Handle(tea.MouseMotionMsg{X: 16, Y: 6, Button: tea.MouseLeft})
	f.router.Handle(tea.MouseReleaseMsg{X: 16, Y: 6, Button: tea.MouseLeft})

	if got := f.get(t, f.b).Window.Rect().Pos(); got != (geometry.Point{X: 11, Y: 6}) {
		t.Errorf("position = %+v, want {11 6}", got)
	}
	if f.router.Handle(tea.WindowSizeMsg{Width: 10, Height: 10}) {
		t.Error("non-pointer message reported as handled")
	}
}
