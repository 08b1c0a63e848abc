package desktop

import (
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
)

type styles struct {
	desktop        lipgloss.Style
	activeBorder   lipgloss.Style
	inactiveBorder lipgloss.Style
	title          lipgloss.Style
	button         lipgloss.Style
	body           lipgloss.Style
	taskbar        lipgloss.Style
	taskActive     lipgloss.Style
	taskHidden     lipgloss.Style
}

// newStyles builds the styles from the active theme, falling back to the
// configured colors.
func newStyles(a config.Appearance) styles {
	desktopBg := theme.Desktop(a.DesktopColor)
	active := theme.BorderFocused(a.ActiveBorderColor)
	inactive := theme.BorderUnfocused(a.InactiveBorderColor)
	fg := theme.Title(a.TitleColor)
	taskbarBg := theme.Taskbar(a.TaskbarColor)

	return styles{
		desktop:        lipgloss.NewStyle().Background(desktopBg),
		activeBorder:   lipgloss.NewStyle().Foreground(active),
		inactiveBorder: lipgloss.NewStyle().Foreground(inactive),
		title:          lipgloss.NewStyle().Foreground(fg).Bold(true),
		button:         lipgloss.NewStyle().Foreground(fg),
		body:           lipgloss.NewStyle().Foreground(fg),
		taskbar:        lipgloss.NewStyle().Background(taskbarBg).Foreground(fg),
		taskActive: lipgloss.NewStyle().
			Background(active).
			Foreground(desktopBg).
			Bold(true),
		taskHidden: lipgloss.NewStyle().Background(taskbarBg).Foreground(inactive),
	}
}
