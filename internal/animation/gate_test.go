package animation

import (
	"testing"
	"time"

	"github.com/Gaurav-Gosain/deskos/internal/geometry"
)

func TestGateDisarmsAfterDuration(t *testing.T) {
	sched := NewManualScheduler()
	g := NewGate(sched)

	if _, armed := g.Armed(); armed {
		t.Fatal("new gate should be disarmed")
	}

	g.Animate(300 * time.Millisecond)
	if d, armed := g.Armed(); !armed || d != 300*time.Millisecond {
		t.Fatalf("Armed() = %v, %v; want 300ms, true", d, armed)
	}

	sched.Advance(299 * time.Millisecond)
	if _, armed := g.Armed(); !armed {
		t.Fatal("gate disarmed early")
	}

	sched.Advance(time.Millisecond)
	if _, armed := g.Armed(); armed {
		t.Fatal("gate still armed after duration")
	}
}

func TestGateRearmRestartsTimer(t *testing.T) {
	sched := NewManualScheduler()
	g := NewGate(sched)

	changes := 0
	g.OnChange(func() { changes++ })

	g.Animate(300 * time.Millisecond)
	sched.Advance(200 * time.Millisecond)
	g.Animate(50 * time.Millisecond)

	if n := sched.Pending(); n != 1 {
		t.Fatalf("pending timers = %d, want 1", n)
	}

	sched.Advance(49 * time.Millisecond)
	if d, armed := g.Armed(); !armed || d != 50*time.Millisecond {
		t.Fatalf("Armed() = %v, %v; want 50ms, true", d, armed)
	}

	sched.Advance(time.Second)
	if _, armed := g.Armed(); armed {
		t.Fatal("gate still armed")
	}
	// arm, rearm, single disarm
	if changes != 3 {
		t.Errorf("OnChange fired %d times, want 3", changes)
	}
}

func TestGateIgnoresStaleCallback(t *testing.T) {
	var queued []func()
	sched := schedulerFunc(func(d time.Duration, f func()) Timer {
		queued = append(queued, f)
		return noopTimer{}
	})
	g := NewGate(sched)

	g.Animate(100 * time.Millisecond)
	g.Animate(100 * time.Millisecond)

	// The first timer already made it into the loop queue before the rearm.
	queued[0]()
	if _, armed := g.Armed(); !armed {
		t.Fatal("stale callback disarmed the gate")
	}
	queued[1]()
	if _, armed := g.Armed(); armed {
		t.Fatal("current callback did not disarm the gate")
	}
}

func TestGateStop(t *testing.T) {
	sched := NewManualScheduler()
	g := NewGate(sched)
	g.Animate(time.Second)
	g.Stop()

	if _, armed := g.Armed(); armed {
		t.Fatal("Stop left the gate armed")
	}
	if n := sched.Pending(); n != 0 {
		t.Errorf("pending timers = %d after Stop, want 0", n)
	}
}

func TestLoopSchedulerPostsToChannel(t *testing.T) {
	s := NewLoopScheduler()
	defer s.Close()

	ran := false
	s.AfterFunc(time.Millisecond, func() { ran = true })

	select {
	case f := <-s.C:
		f()
	case <-time.After(time.Second):
		t.Fatal("callback was not delivered")
	}
	if !ran {
		t.Error("delivered callback did not run")
	}
}

func TestTweenInterpolates(t *testing.T) {
	start := time.Unix(0, 0)
	tw := Tween{
		From:     geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10},
		To:       geometry.Rect{X: 100, Y: 50, Width: 110, Height: 60},
		Start:    start,
		Duration: time.Second,
	}

	if got := tw.At(start); got != tw.From {
		t.Errorf("At(start) = %+v, want %+v", got, tw.From)
	}
	if got := tw.At(start.Add(500 * time.Millisecond)); got != (geometry.Rect{X: 50, Y: 25, Width: 60, Height: 35}) {
		t.Errorf("At(mid) = %+v", got)
	}
	if got := tw.At(start.Add(2 * time.Second)); got != tw.To {
		t.Errorf("At(end) = %+v, want %+v", got, tw.To)
	}
	if !tw.Done(start.Add(time.Second)) {
		t.Error("tween not done at its duration")
	}
}

func TestEaseInOutCubicEndpoints(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{{0, 0}, {0.5, 0.5}, {1, 1}} {
		if got := EaseInOutCubic(tt.in); got != tt.want {
			t.Errorf("EaseInOutCubic(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

type schedulerFunc func(d time.Duration, f func()) Timer

func (f schedulerFunc) AfterFunc(d time.Duration, fn func()) Timer { return f(d, fn) }

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }
