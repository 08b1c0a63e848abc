// Package content defines the narrow contract between the window registry
// and the panels hosted inside windows.
package content

import "github.com/Gaurav-Gosain/deskos/internal/geometry"

// Props are the per-instance inputs passed to hosted content. Content must
// treat them as read-only and reach the registry only through the callbacks.
type Props struct {
	Active  bool
	ID      int
	Visible bool
	ZIndex  int

	OnClose    func(id int)
	OnMinimise func(id int)
	OnSelect   func(id int)
}

// Component renders the body of a window. Render returns at most
// size.Height lines of plain text; longer lines are clipped by the caller.
type Component interface {
	Render(props Props, size geometry.Size) []string
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(props Props, size geometry.Size) []string

// Render calls f.
func (f ComponentFunc) Render(props Props, size geometry.Size) []string {
	return f(props, size)
}

// Ticker is implemented by content that refreshes on the desktop tick.
type Ticker interface {
	Tick()
}
