// Package apps holds the built-in applications that can be opened on the
// desktop. Each app supplies a window descriptor and its content.
package apps

import (
	"strings"

	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/charmbracelet/x/ansi"
)

// App is a catalogue entry.
type App struct {
	Name string
	Icon string
	Key  string // launcher shortcut
	// Descriptor returns a fresh descriptor with new content state.
	Descriptor func() registry.Descriptor
}

// Catalogue returns the built-in apps in launcher order.
func Catalogue() []App {
	return []App{
		{Name: "About", Icon: "ⓘ", Key: "1", Descriptor: About},
		{Name: "Clock", Icon: "◷", Key: "2", Descriptor: Clock},
		{Name: "Monitor", Icon: "▤", Key: "3", Descriptor: Monitor},
		{Name: "Viewer", Icon: "▣", Key: "4", Descriptor: Viewer},
	}
}

// Find returns the app with the given name, ignoring case.
func Find(name string) (App, bool) {
	for _, app := range Catalogue() {
		if strings.EqualFold(app.Name, name) {
			return app, true
		}
	}
	return App{}, false
}

// ByKey returns the app bound to a launcher key.
func ByKey(key string) (App, bool) {
	for _, app := range Catalogue() {
		if app.Key == key {
			return app, true
		}
	}
	return App{}, false
}

// center pads each line so the block sits in the middle of size.
func center(lines []string, width, height int) []string {
	top := max(0, (height-len(lines))/2)
	out := make([]string, 0, height)
	for range top {
		out = append(out, "")
	}
	for _, line := range lines {
		if len(out) == height {
			break
		}
		pad := max(0, (width-ansi.StringWidth(line))/2)
		out = append(out, strings.Repeat(" ", pad)+line)
	}
	return out
}
