package apps

import (
	"time"

	"github.com/Gaurav-Gosain/deskos/internal/content"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
)

// ClockPanel shows the wall clock and refreshes on every tick.
type ClockPanel struct {
	now   func() time.Time
	shown time.Time
}

// NewClockPanel returns a clock reading from now. A nil now uses time.Now.
func NewClockPanel(now func() time.Time) *ClockPanel {
	if now == nil {
		now = time.Now
	}
	c := &ClockPanel{now: now}
	c.shown = now()
	return c
}

// Tick samples the clock.
func (c *ClockPanel) Tick() {
	c.shown = c.now()
}

// Render implements content.Component.
func (c *ClockPanel) Render(_ content.Props, size geometry.Size) []string {
	lines := []string{c.shown.Format("15:04:05")}
	if size.Height >= 3 {
		lines = append(lines, "", c.shown.Format("Mon 02 Jan 2006"))
	}
	return center(lines, size.Width, size.Height)
}

// Clock opens a small clock window.
func Clock() registry.Descriptor {
	return registry.Descriptor{
		Title:     "Clock",
		MinWidth:  24,
		MinHeight: 5,
		MaxWidth:  48,
		MaxHeight: 12,
		Content:   NewClockPanel(nil),
	}
}
