package apps

import (
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/deskos/internal/content"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Sample is one reading of system usage, in percent.
type Sample struct {
	CPU    float64
	Memory float64
}

// SampleFunc reads current system usage.
type SampleFunc func() (Sample, error)

// HostSample reads CPU and memory usage of the host.
func HostSample() (Sample, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return Sample{}, fmt.Errorf("cpu: %w", err)
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Sample{}, fmt.Errorf("memory: %w", err)
	}
	var s Sample
	if len(percents) > 0 {
		s.CPU = percents[0]
	}
	s.Memory = vm.UsedPercent
	return s, nil
}

const historyLen = 64

var bars = []rune("▁▂▃▄▅▆▇█")

// MonitorPanel graphs CPU and memory usage over time.
type MonitorPanel struct {
	sample SampleFunc
	cpu    []float64
	memory []float64
	err    error
}

// NewMonitorPanel returns a panel reading from sample. A nil sample uses
// HostSample.
func NewMonitorPanel(sample SampleFunc) *MonitorPanel {
	if sample == nil {
		sample = HostSample
	}
	return &MonitorPanel{sample: sample}
}

// Tick takes one sample and keeps the most recent history.
func (m *MonitorPanel) Tick() {
	s, err := m.sample()
	m.err = err
	if err != nil {
		return
	}
	m.cpu = push(m.cpu, s.CPU)
	m.memory = push(m.memory, s.Memory)
}

func push(history []float64, v float64) []float64 {
	if len(history) >= historyLen {
		history = history[1:]
	}
	return append(history, v)
}

// Render implements content.Component.
func (m *MonitorPanel) Render(_ content.Props, size geometry.Size) []string {
	if m.err != nil {
		return []string{"unavailable: " + m.err.Error()}
	}
	graphWidth := max(1, size.Width-10)
	return []string{
		fmt.Sprintf("CPU %3.0f%% %s", last(m.cpu), Graph(m.cpu, graphWidth)),
		fmt.Sprintf("MEM %3.0f%% %s", last(m.memory), Graph(m.memory, graphWidth)),
	}
}

func last(history []float64) float64 {
	if len(history) == 0 {
		return 0
	}
	return history[len(history)-1]
}

// Graph renders the newest width samples as block characters, right aligned
// and padded with spaces so the width never changes.
func Graph(history []float64, width int) string {
	if len(history) > width {
		history = history[len(history)-width:]
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(history)))
	for _, usage := range history {
		// 100/8 = 12.5
		level := min(max(int(usage/12.5), 0), len(bars)-1)
		b.WriteRune(bars[level])
	}
	return b.String()
}

// Monitor opens the system monitor.
func Monitor() registry.Descriptor {
	return registry.Descriptor{
		Title:     "Monitor",
		MinWidth:  30,
		MinHeight: 4,
		MaxWidth:  80,
		MaxHeight: 4,
		Content:   NewMonitorPanel(nil),
	}
}
