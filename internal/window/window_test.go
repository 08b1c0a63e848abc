package window

import (
	"testing"
	"time"

	"github.com/Gaurav-Gosain/deskos/internal/animation"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
)

func newTestWindow(t *testing.T, c geometry.Constraints, initial geometry.Rect, resizable bool) (*Window, *animation.ManualScheduler) {
	t.Helper()
	screen := geometry.NewScreen(1920, 1080, 40, 20)
	store, err := geometry.NewStore(c, screen, initial)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	sched := animation.NewManualScheduler()
	return New(store, sched, Options{Resizable: resizable, MinimizedTop: 1040}), sched
}

var unboundedA = geometry.Constraints{MinWidth: 400, MinHeight: 300}

func TestMaximizeToggleRestoresGeometry(t *testing.T) {
	initial := geometry.Rect{X: 100, Y: 100, Width: 500, Height: 400}
	w, sched := newTestWindow(t, unboundedA, initial, true)

	w.ToggleMaximize()
	if got := w.Rect(); got != (geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1040}) {
		t.Fatalf("maximized rect = %+v", got)
	}
	if w.Mode() != Maximized {
		t.Fatalf("mode = %v, want maximized", w.Mode())
	}
	if d, armed := w.Animation(); !armed || d != animation.DefaultDuration {
		t.Errorf("Animation() = %v, %v; want default duration armed", d, armed)
	}

	sched.Advance(time.Second)
	if _, armed := w.Animation(); armed {
		t.Error("gate still armed after the transition")
	}

	w.ToggleMaximize()
	if got := w.Rect(); got != initial {
		t.Fatalf("restored rect = %+v, want %+v", got, initial)
	}
	if w.Mode() != Normal {
		t.Errorf("mode = %v, want normal", w.Mode())
	}
}

func TestMaximizeNotResizableIsNoop(t *testing.T) {
	initial := geometry.Rect{X: 100, Y: 100, Width: 500, Height: 400}
	w, _ := newTestWindow(t, unboundedA, initial, false)

	if got := w.ToggleMaximize(); got != initial.Size() {
		t.Errorf("ToggleMaximize() = %+v, want unchanged size", got)
	}
	if w.Mode() != Normal || w.Rect() != initial {
		t.Errorf("window changed: mode %v rect %+v", w.Mode(), w.Rect())
	}
	if _, armed := w.Animation(); armed {
		t.Error("no-op maximize armed the gate")
	}
}

func TestMinimizeRestoresGeometry(t *testing.T) {
	initial := geometry.Rect{X: 120, Y: 80, Width: 640, Height: 480}
	w, _ := newTestWindow(t, unboundedA, initial, true)

	w.SetVisible(false)
	if w.Mode() != Minimized {
		t.Fatalf("mode = %v, want minimized", w.Mode())
	}
	if got := w.Rect(); got != (geometry.Rect{X: 0, Y: 1020, Width: 0, Height: 0}) {
		t.Errorf("collapsed rect = %+v", got)
	}

	// Second hide is ignored and must not overwrite the saved geometry.
	w.SetVisible(false)

	w.SetVisible(true)
	if got := w.Rect(); got != initial {
		t.Fatalf("restored rect = %+v, want %+v", got, initial)
	}
	if w.Mode() != Normal {
		t.Errorf("mode = %v, want normal", w.Mode())
	}

	w.SetVisible(true)
	if got := w.Rect(); got != initial {
		t.Errorf("extra show changed the rect to %+v", got)
	}
}

func TestMinimizeWhileMaximized(t *testing.T) {
	initial := geometry.Rect{X: 100, Y: 100, Width: 500, Height: 400}
	w, _ := newTestWindow(t, unboundedA, initial, true)

	w.ToggleMaximize()
	maximized := w.Rect()

	w.SetVisible(false)
	if w.Mode() != Minimized {
		t.Fatalf("mode = %v, want minimized", w.Mode())
	}
	if got := w.ToggleMaximize(); !got.IsZero() {
		t.Errorf("maximize while minimized changed size to %+v", got)
	}

	w.SetVisible(true)
	if w.Mode() != Maximized {
		t.Fatalf("mode = %v, want maximized", w.Mode())
	}
	if got := w.Rect(); got != maximized {
		t.Fatalf("rect = %+v, want %+v", got, maximized)
	}

	w.ToggleMaximize()
	if got := w.Rect(); got != initial {
		t.Errorf("rect after unmaximize = %+v, want %+v", got, initial)
	}
}

func TestRefitWhileMaximized(t *testing.T) {
	w, _ := newTestWindow(t, unboundedA, geometry.Rect{X: 10, Y: 10, Width: 500, Height: 400}, true)
	w.ToggleMaximize()
	w.Store().Screen().Resize(1280, 720)
	w.Refit()

	if got := w.Rect().Size(); got != (geometry.Size{Width: 1280, Height: 680}) {
		t.Errorf("refit size = %+v", got)
	}
}

func TestRefitIgnoresNormalWindows(t *testing.T) {
	initial := geometry.Rect{X: 10, Y: 10, Width: 500, Height: 400}
	w, _ := newTestWindow(t, unboundedA, initial, true)
	w.Store().Screen().Resize(1280, 720)
	w.Refit()

	if got := w.Rect(); got != initial {
		t.Errorf("refit moved a normal window to %+v", got)
	}
}

func TestWatchNotifies(t *testing.T) {
	w, _ := newTestWindow(t, unboundedA, geometry.Rect{Width: 500, Height: 400}, true)
	calls := 0
	unwatch := w.Watch(func() { calls++ })

	w.Store().SetPosition(50, 50, 0)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	unwatch()
	w.Store().SetPosition(60, 60, 0)
	if calls != 1 {
		t.Errorf("unwatched callback still called")
	}
}

func TestModeString(t *testing.T) {
	tests := map[Mode]string{Normal: "normal", Maximized: "maximized", Minimized: "minimized", Mode(42): "unknown"}
	for mode, want := range tests {
		if got := mode.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(mode), got, want)
		}
	}
}
