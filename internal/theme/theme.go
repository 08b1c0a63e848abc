// Package theme provides the desktop color theme.
package theme

import (
	"errors"
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

// ErrUnknownTheme is returned by Initialize for names not in the registry.
var ErrUnknownTheme = errors.New("unknown theme")

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// If themeName is empty, theming is disabled and the configured colors are
// used. An unknown name also disables theming.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	tint.NewDefaultRegistry()
	if !tint.SetTintID(themeName) {
		enabled = false
		return fmt.Errorf("%w: %q", ErrUnknownTheme, themeName)
	}
	enabled = true
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Desktop is the background behind all windows.
func Desktop(fallback string) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return t.Bg
}

// Window border colors
func BorderFocused(fallback string) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return t.BrightCyan
}

func BorderUnfocused(fallback string) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return t.BrightBlack
}

// Title is used for window titles, buttons and content text.
func Title(fallback string) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return t.Fg
}

// Taskbar is the taskbar background.
func Taskbar(fallback string) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return t.Black
}
