package apps

import (
	"fmt"

	"github.com/Gaurav-Gosain/deskos/internal/content"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
)

// Version is set at build time.
var Version = "dev"

// About is a fixed-size information panel.
func About() registry.Descriptor {
	return registry.Descriptor{
		Title:     "About",
		MinWidth:  36,
		MinHeight: 9,
		MaxWidth:  36,
		MaxHeight: 9,
		FixedSize: true,
		Content: content.ComponentFunc(func(props content.Props, size geometry.Size) []string {
			return center([]string{
				"deskos " + Version,
				"",
				"a desktop in your terminal",
				fmt.Sprintf("window #%d", props.ID),
			}, size.Width, size.Height)
		}),
	}
}
