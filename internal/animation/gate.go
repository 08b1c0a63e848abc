// Package animation implements the transition gate windows arm while their
// layout changes, plus the easing helpers the presentation layer uses to
// interpolate geometry while a gate is armed.
package animation

import "time"

// Default durations for layout transitions.
const (
	DefaultDuration = 300 * time.Millisecond
	FastDuration    = 50 * time.Millisecond
)

// Gate tracks a window of time during which geometry changes should be
// rendered with interpolation. It is not safe for concurrent use; all calls,
// including scheduler callbacks, must happen on the event loop.
type Gate struct {
	sched    Scheduler
	timer    Timer
	duration time.Duration
	armed    bool
	gen      uint64
	onChange func()
}

// NewGate returns a disarmed gate using sched for its expiry timer.
func NewGate(sched Scheduler) *Gate {
	return &Gate{sched: sched}
}

// OnChange registers a callback invoked when the gate arms or disarms.
func (g *Gate) OnChange(fn func()) {
	g.onChange = fn
}

// Animate arms the gate for d. Rearming before expiry cancels the pending
// timer and starts a new one.
func (g *Gate) Animate(d time.Duration) {
	g.cancel()
	g.gen++
	g.duration = d
	g.armed = true

	gen := g.gen
	g.timer = g.sched.AfterFunc(d, func() {
		// A callback from a cancelled timer may already sit in the loop queue.
		if g.gen != gen || !g.armed {
			return
		}
		g.armed = false
		g.timer = nil
		g.changed()
	})
	g.changed()
}

// Armed returns the armed duration and whether the gate is armed.
func (g *Gate) Armed() (time.Duration, bool) {
	if !g.armed {
		return 0, false
	}
	return g.duration, true
}

// Stop disarms the gate immediately and cancels its timer.
func (g *Gate) Stop() {
	wasArmed := g.armed
	g.cancel()
	g.gen++
	g.armed = false
	if wasArmed {
		g.changed()
	}
}

func (g *Gate) cancel() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

func (g *Gate) changed() {
	if g.onChange != nil {
		g.onChange()
	}
}
