package apps

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/deskos/internal/content"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
)

func TestCatalogueDescriptorsAreValid(t *testing.T) {
	for _, app := range Catalogue() {
		t.Run(app.Name, func(t *testing.T) {
			d := app.Descriptor()
			if d.Title == "" || d.Content == nil {
				t.Fatalf("incomplete descriptor: %+v", d)
			}
			c := geometry.Constraints{
				MinWidth:        d.MinWidth,
				MinHeight:       d.MinHeight,
				MaxWidth:        d.MaxWidth,
				MaxHeight:       d.MaxHeight,
				KeepAspectRatio: d.KeepAspectRatio,
			}
			if err := c.Validate(); err != nil {
				t.Errorf("invalid constraints: %v", err)
			}
			if got, ok := ByKey(app.Key); !ok || got.Name != app.Name {
				t.Errorf("ByKey(%q) = %q, %v", app.Key, got.Name, ok)
			}
		})
	}
}

func TestFindIgnoresCase(t *testing.T) {
	if app, ok := Find("viewer"); !ok || app.Name != "Viewer" {
		t.Errorf("Find(viewer) = %q, %v", app.Name, ok)
	}
	if _, ok := Find("missing"); ok {
		t.Error("Find(missing) succeeded")
	}
}

func TestViewerKeepsAspectRatio(t *testing.T) {
	d := Viewer()
	if !d.KeepAspectRatio || d.FixedSize {
		t.Errorf("viewer flags: keepAspect %v fixed %v", d.KeepAspectRatio, d.FixedSize)
	}
	if d.MaxWidth*d.MinHeight != d.MaxHeight*d.MinWidth {
		t.Errorf("max size %dx%d breaks ratio %dx%d", d.MaxWidth, d.MaxHeight, d.MinWidth, d.MinHeight)
	}
}

func TestViewerRender(t *testing.T) {
	size := geometry.Size{Width: 32, Height: 12}
	lines := ViewerPanel{}.Render(content.Props{}, size)

	if len(lines) != size.Height {
		t.Fatalf("got %d lines, want %d", len(lines), size.Height)
	}
	row := []rune(lines[5])
	if len(row) != size.Width {
		t.Fatalf("row width = %d, want %d", len(row), size.Width)
	}
	if row[15] != '█' {
		t.Errorf("centre = %q, want full block", row[15])
	}
	if corner := []rune(lines[0])[0]; corner != ' ' {
		t.Errorf("corner = %q, want blank", corner)
	}
}

func TestClockPanel(t *testing.T) {
	now := time.Date(2026, 3, 14, 13, 45, 0, 0, time.UTC)
	clock := NewClockPanel(func() time.Time { return now })

	lines := clock.Render(content.Props{}, geometry.Size{Width: 24, Height: 3})
	if len(lines) != 3 || !strings.Contains(lines[0], "13:45:00") {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(lines[2], "Sat 14 Mar 2026") {
		t.Errorf("date line = %q", lines[2])
	}

	now = now.Add(time.Second)
	clock.Tick()
	if lines := clock.Render(content.Props{}, geometry.Size{Width: 24, Height: 1}); !strings.Contains(lines[0], "13:45:01") {
		t.Errorf("after tick = %q", lines)
	}
}

func TestGraph(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		width   int
		want    string
	}{
		{"empty", nil, 3, "   "},
		{"padded", []float64{0, 50, 100}, 5, "  ▁▅█"},
		{"clamped", []float64{-5, 150}, 2, "▁█"},
		{"keeps newest", []float64{100, 0, 0}, 2, "▁▁"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Graph(tt.history, tt.width); got != tt.want {
				t.Errorf("Graph() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMonitorPanel(t *testing.T) {
	var fail error
	readings := []Sample{{CPU: 25, Memory: 50}, {CPU: 100, Memory: 60}}
	i := 0
	panel := NewMonitorPanel(func() (Sample, error) {
		if fail != nil {
			return Sample{}, fail
		}
		s := readings[i%len(readings)]
		i++
		return s, nil
	})

	panel.Tick()
	panel.Tick()
	lines := panel.Render(content.Props{}, geometry.Size{Width: 12, Height: 2})
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if lines[0] != "CPU 100% ▃█" {
		t.Errorf("cpu line = %q", lines[0])
	}
	if lines[1] != "MEM  60% ▅▅" {
		t.Errorf("mem line = %q", lines[1])
	}

	fail = errors.New("boom")
	panel.Tick()
	if lines := panel.Render(content.Props{}, geometry.Size{Width: 12, Height: 2}); !strings.Contains(lines[0], "boom") {
		t.Errorf("error not shown: %q", lines)
	}
}

func TestCenterMeasuresCellWidth(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  string
	}{
		{"ascii", "ab", 6, "  ab"},
		{"wide glyphs", "時計", 10, "   時計"},
		{"too wide", "abcdef", 4, "abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := center([]string{tt.line}, tt.width, 1)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("center(%q, %d) = %q, want %q", tt.line, tt.width, got, tt.want)
			}
		})
	}
}
