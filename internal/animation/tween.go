package animation

import (
	"math"
	"time"

	"github.com/Gaurav-Gosain/deskos/internal/geometry"
)

// EaseInOutCubic is a smooth in/out easing curve over [0,1].
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := 2*t - 2
	return 1 + p*p*p/2
}

// Interpolate returns the value between start and end at progress.
func Interpolate(start, end int, progress float64) int {
	return start + int(math.Round(float64(end-start)*progress))
}

// Tween interpolates a rectangle from one geometry to another over a
// duration.
type Tween struct {
	From     geometry.Rect
	To       geometry.Rect
	Start    time.Time
	Duration time.Duration
}

// Progress returns the eased progress at now, in [0,1].
func (t Tween) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	if p >= 1 {
		return 1
	}
	if p <= 0 {
		return 0
	}
	return EaseInOutCubic(p)
}

// At returns the interpolated rectangle at now.
func (t Tween) At(now time.Time) geometry.Rect {
	p := t.Progress(now)
	return geometry.Rect{
		X:      Interpolate(t.From.X, t.To.X, p),
		Y:      Interpolate(t.From.Y, t.To.Y, p),
		Width:  Interpolate(t.From.Width, t.To.Width, p),
		Height: Interpolate(t.From.Height, t.To.Height, p),
	}
}

// Done reports whether the tween has reached its target.
func (t Tween) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}
