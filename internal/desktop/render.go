package desktop

import (
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskos/internal/content"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
	"github.com/Gaurav-Gosain/deskos/internal/input"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/charmbracelet/x/ansi"
)

var buttonGlyphs = map[input.Region]string{
	input.RegionMinimize: "[_]",
	input.RegionMaximize: "[□]",
	input.RegionClose:    "[×]",
}

// View composes the desktop background, every shown window in z order and
// the taskbar.
func (m *Model) View() tea.View {
	var v tea.View
	if m.quitting {
		return v
	}
	v.SetContent(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.ReportFocus = true
	return v
}

// Render returns the composed frame as a string.
func (m *Model) Render() string {
	width, height := m.screen.Width, m.screen.Height
	usable := m.screen.Usable()

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(m.renderBackground(usable)).Z(0),
	}

	ordered := slices.Clone(m.instances)
	slices.SortFunc(ordered, func(a, b registry.Instance) int { return a.ZIndex - b.ZIndex })
	for _, inst := range ordered {
		rect, ok := m.shown[inst.ID]
		if !ok || rect.Width < 2 || rect.Height < 2 {
			continue
		}
		if !inst.Visible && !m.animating(inst.ID) {
			continue
		}
		frame := m.renderWindow(inst, rect)
		clipped, x, y := clipToViewport(frame, rect.X, rect.Y, usable.Width, usable.Height)
		if clipped == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(clipped).
			X(x).Y(y).Z(inst.ZIndex).ID(strconv.Itoa(inst.ID)))
	}

	if m.screen.Chrome > 0 {
		layers = append(layers, lipgloss.NewLayer(m.renderTaskbar()).Y(usable.Height).Z(taskbarZ))
	}

	canvas := lipgloss.NewCanvas(width, height)
	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas.Render()
}

const taskbarZ = 1 << 30

func (m *Model) renderBackground(usable geometry.Size) string {
	if usable.Width <= 0 || usable.Height <= 0 {
		return ""
	}
	row := m.styles.desktop.Render(strings.Repeat(" ", usable.Width))
	rows := make([]string, usable.Height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// renderWindow draws the frame at rect: a title row with buttons, bordered
// content rows and a bottom row whose right corner is the resize handle.
func (m *Model) renderWindow(inst registry.Instance, rect geometry.Rect) string {
	border := m.styles.inactiveBorder
	if inst.Active {
		border = m.styles.activeBorder
	}
	resizable := inst.Window.Resizable()
	inner := rect.Width - 2

	lines := make([]string, 0, rect.Height)
	lines = append(lines, m.renderTitleRow(inst, rect, border, resizable))

	body := m.contentLines(inst, geometry.Size{Width: inner, Height: rect.Height - 2})
	side := border.Render("│")
	for _, line := range body {
		line = ansi.Truncate(line, inner, "")
		pad := inner - ansi.StringWidth(line)
		lines = append(lines, side+m.styles.body.Render(line+strings.Repeat(" ", pad))+side)
	}

	corner := "╯"
	if resizable {
		corner = "◢"
	}
	lines = append(lines, border.Render("╰"+strings.Repeat("─", inner)+corner))
	return strings.Join(lines, "\n")
}

func (m *Model) renderTitleRow(inst registry.Instance, rect geometry.Rect, border lipgloss.Style, resizable bool) string {
	if rect.Width < 5 {
		return border.Render("╭" + strings.Repeat("─", max(rect.Width-2, 0)) + "╮")
	}

	// Work in local coordinates: column 0 is the left border.
	local := geometry.Rect{Width: rect.Width, Height: rect.Height}
	buttons := input.Buttons(local, resizable)

	firstButton := rect.Width - 1
	for _, b := range buttons {
		firstButton = min(firstButton, b.X)
	}

	var b strings.Builder
	b.WriteString(border.Render("╭─"))
	col := 2

	room := firstButton - col - 1
	if room > 0 {
		title := ansi.Truncate(" "+inst.Title+" ", room, "…")
		b.WriteString(m.styles.title.Render(title))
		col += ansi.StringWidth(title)
	}

	slices.SortFunc(buttons, func(a, b input.Button) int { return a.X - b.X })
	for _, btn := range buttons {
		if btn.X > col {
			b.WriteString(border.Render(strings.Repeat("─", btn.X-col)))
			col = btn.X
		}
		if btn.X < col {
			continue
		}
		b.WriteString(m.styles.button.Render(buttonGlyphs[btn.Region]))
		col += input.ButtonWidth
	}
	if fill := rect.Width - 1 - col; fill > 0 {
		b.WriteString(border.Render(strings.Repeat("─", fill)))
		col += fill
	}
	if col == rect.Width-1 {
		b.WriteString(border.Render("╮"))
	}
	return b.String()
}

// contentLines renders exactly size.Height lines. While a window is being
// dragged its last rendered content is reused.
func (m *Model) contentLines(inst registry.Instance, size geometry.Size) []string {
	var lines []string
	cached, hasCache := m.contentCache[inst.ID]
	switch {
	case inst.Window.Frozen() && hasCache:
		lines = cached
	case inst.Content != nil:
		lines = inst.Content.Render(m.props(inst), size)
		m.contentCache[inst.ID] = lines
	}

	out := make([]string, size.Height)
	copy(out, lines)
	return out
}

func (m *Model) props(inst registry.Instance) content.Props {
	return m.reg.Props(inst)
}

// clipToViewport cuts a rendered block so it fits the viewport when its
// origin is off screen or it extends past the edges.
func clipToViewport(block string, x, y, width, height int) (string, int, int) {
	lines := strings.Split(block, "\n")
	blockWidth := 0
	if len(lines) > 0 {
		blockWidth = ansi.StringWidth(lines[0])
	}
	if x+blockWidth <= 0 || x >= width || y+len(lines) <= 0 || y >= height {
		return "", max(x, 0), max(y, 0)
	}

	if y < 0 {
		lines = lines[-y:]
		y = 0
	}
	if over := y + len(lines) - height; over > 0 {
		lines = lines[:len(lines)-over]
	}

	left := max(-x, 0)
	right := min(blockWidth, width-x)
	if left > 0 || right < blockWidth {
		for i, line := range lines {
			lines[i] = ansi.Cut(line, left, right)
		}
	}
	return strings.Join(lines, "\n"), max(x, 0), y
}
