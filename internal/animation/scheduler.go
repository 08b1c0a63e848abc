package animation

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped it
	// before it ran.
	Stop() bool
}

// Scheduler runs a callback after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// LoopScheduler delivers timer callbacks to an event loop instead of running
// them on the timer goroutine. The loop receives from C and calls each
// function it gets, so every callback runs on the same goroutine as the rest
// of the engine.
type LoopScheduler struct {
	C    chan func()
	done chan struct{}
	once sync.Once
}

// NewLoopScheduler returns a scheduler with a buffered delivery channel.
func NewLoopScheduler() *LoopScheduler {
	return &LoopScheduler{
		C:    make(chan func(), 16),
		done: make(chan struct{}),
	}
}

// AfterFunc schedules f to be posted to C after d.
func (s *LoopScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		select {
		case s.C <- f:
		case <-s.done:
		}
	})
}

// Close stops delivering callbacks. Pending timers that fire afterwards are
// dropped.
func (s *LoopScheduler) Close() {
	s.once.Do(func() { close(s.done) })
}

// Done is closed once the scheduler is closed.
func (s *LoopScheduler) Done() <-chan struct{} {
	return s.done
}

// ManualScheduler is a deterministic scheduler driven by Advance. It is
// meant for tests and headless replays.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc registers f to run once the clock passes d from now.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.seq++
	t := &manualTimer{at: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward and runs every due callback in order.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		due := s.nextDue(target)
		if due == nil {
			break
		}
		s.now = due.at
		due.fired = true
		due.f()
	}
	s.now = target
	s.compact()
}

// Pending returns the number of timers that have neither fired nor stopped.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	var live []*manualTimer
	for _, t := range s.timers {
		if !t.fired && !t.stopped && t.at <= target {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}

func (s *ManualScheduler) compact() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			kept = append(kept, t)
		}
	}
	s.timers = kept
}
