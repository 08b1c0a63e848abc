package geometry

// Screen describes the desktop every window lives in. It is shared by all
// stores of a desktop and updated when the hosting viewport resizes.
type Screen struct {
	Width  int
	Height int
	// Chrome is the height reserved at the bottom for the taskbar.
	Chrome int
	// Margin is how much of a window must stay on screen while moving.
	Margin int
}

// NewScreen returns a screen of the given size.
func NewScreen(width, height, chrome, margin int) *Screen {
	return &Screen{Width: width, Height: height, Chrome: chrome, Margin: margin}
}

// Resize updates the viewport size.
func (s *Screen) Resize(width, height int) {
	s.Width = max(width, 0)
	s.Height = max(height, 0)
}

// Usable returns the area a maximized window fills.
func (s *Screen) Usable() Size {
	return Size{
		Width:  s.Width,
		Height: max(s.Height-s.Chrome, 0),
	}
}
