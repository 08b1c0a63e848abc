package apps

import (
	"strings"

	"github.com/Gaurav-Gosain/deskos/internal/content"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
)

var shades = []rune(" ░▒▓█")

// ViewerPanel draws a radial picture scaled to the window. The window keeps
// the picture's aspect ratio, so the picture is never stretched.
type ViewerPanel struct{}

// Render implements content.Component.
func (ViewerPanel) Render(_ content.Props, size geometry.Size) []string {
	if size.Width <= 0 || size.Height <= 0 {
		return nil
	}
	lines := make([]string, size.Height)
	for y := range size.Height {
		var b strings.Builder
		for x := range size.Width {
			b.WriteRune(shadeAt(x, y, size))
		}
		lines[y] = b.String()
	}
	return lines
}

// shadeAt maps a cell to its distance from the centre in normalized units.
func shadeAt(x, y int, size geometry.Size) rune {
	nx := (float64(x)+0.5)/float64(size.Width)*2 - 1
	ny := (float64(y)+0.5)/float64(size.Height)*2 - 1
	d := nx*nx + ny*ny
	level := len(shades) - 1 - int(d*float64(len(shades)-1))
	level = min(max(level, 0), len(shades)-1)
	return shades[level]
}

// Viewer opens the picture viewer. Its minimum size fixes the aspect ratio.
func Viewer() registry.Descriptor {
	return registry.Descriptor{
		Title:           "Viewer",
		MinWidth:        32,
		MinHeight:       12,
		MaxWidth:        96,
		MaxHeight:       36,
		KeepAspectRatio: true,
		Content:         ViewerPanel{},
	}
}
