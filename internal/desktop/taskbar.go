package desktop

import (
	"strings"

	"github.com/Gaurav-Gosain/deskos/internal/apps"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/charmbracelet/x/ansi"
)

const (
	taskbarLabel     = " deskos "
	taskEntryMaxText = 16
	clockWidth       = 7
)

// taskEntry is one instance button on the taskbar.
type taskEntry struct {
	id      int
	x       int
	label   string
	active  bool
	visible bool
}

func (e taskEntry) width() int { return ansi.StringWidth(e.label) }

func iconFor(title string) string {
	if app, ok := apps.Find(title); ok {
		return app.Icon
	}
	return "▪"
}

// layoutTaskbar places one entry per instance, in creation order, after the
// label. Entries that do not fit before the clock are dropped.
func layoutTaskbar(instances []registry.Instance, width int) []taskEntry {
	limit := width - clockWidth
	x := ansi.StringWidth(taskbarLabel)
	entries := make([]taskEntry, 0, len(instances))
	for _, inst := range instances {
		text := ansi.Truncate(inst.Title, taskEntryMaxText, "…")
		label := " " + iconFor(inst.Title) + " " + text + " "
		e := taskEntry{id: inst.ID, x: x, label: label, active: inst.Active, visible: inst.Visible}
		if x+e.width() > limit {
			break
		}
		entries = append(entries, e)
		x += e.width() + 1
	}
	return entries
}

// taskbarHit returns the entry under p. top is the first taskbar row.
func taskbarHit(entries []taskEntry, top int, p geometry.Point) (int, bool) {
	if p.Y < top {
		return 0, false
	}
	for _, e := range entries {
		if p.X >= e.x && p.X < e.x+e.width() {
			return e.id, true
		}
	}
	return 0, false
}

func (m *Model) renderTaskbar() string {
	width := m.screen.Width
	var b strings.Builder
	b.WriteString(m.styles.title.Inherit(m.styles.taskbar).Render(taskbarLabel))
	used := ansi.StringWidth(taskbarLabel)

	for _, e := range m.taskbar {
		if gap := e.x - used; gap > 0 {
			b.WriteString(m.styles.taskbar.Render(strings.Repeat(" ", gap)))
			used += gap
		}
		style := m.styles.taskbar
		switch {
		case e.active:
			style = m.styles.taskActive
		case !e.visible:
			style = m.styles.taskHidden
		}
		b.WriteString(style.Render(e.label))
		used += e.width()
	}

	clock := m.now().Format("15:04") + " "
	if pad := width - used - ansi.StringWidth(clock); pad > 0 {
		b.WriteString(m.styles.taskbar.Render(strings.Repeat(" ", pad)))
		used += pad
	}
	if used+ansi.StringWidth(clock) <= width {
		b.WriteString(m.styles.taskbar.Render(clock))
	}

	row := b.String()
	rows := []string{row}
	blank := m.styles.taskbar.Render(strings.Repeat(" ", max(width, 0)))
	for i := 1; i < m.screen.Chrome; i++ {
		rows = append(rows, blank)
	}
	return strings.Join(rows, "\n")
}
