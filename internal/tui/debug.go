package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DebugPanel shows recent monitor diagnostics (cycle results, swallowed
// per-board failures) in a ring buffer overlay.
type DebugPanel struct {
	enabled bool
	lines   []string
	buffer  int
}

// NewDebugPanel creates a new debug panel
func NewDebugPanel() DebugPanel {
	return DebugPanel{buffer: 100}
}

// Toggle flips panel visibility
func (d *DebugPanel) Toggle() {
	d.enabled = !d.enabled
}

// IsEnabled returns whether the panel is visible
func (d *DebugPanel) IsEnabled() bool {
	return d.enabled
}

// AddLine adds a new debug line with timestamp
func (d *DebugPanel) AddLine(line string) {
	timestamp := time.Now().Format("15:04:05.000")
	d.lines = append(d.lines, timestamp+" "+line)
	if len(d.lines) > d.buffer {
		d.lines = d.lines[len(d.lines)-d.buffer:]
	}
}

// Render renders the debug panel
func (d *DebugPanel) Render(width, height int) string {
	if !d.enabled {
		return ""
	}

	title := lipgloss.NewStyle().
		Foreground(ColorYellow).
		Bold(true).
		Render("DEBUG")

	contentHeight := height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}

	var lines []string
	startIdx := 0
	if len(d.lines) > contentHeight {
		startIdx = len(d.lines) - contentHeight
	}
	for i := startIdx; i < len(d.lines); i++ {
		line := d.lines[i]
		maxLen := width - 4
		if maxLen < 10 {
			maxLen = 10
		}
		// Lines carry Japanese board names and errors; truncate on
		// runes so a cut never leaves invalid UTF-8.
		if runes := []rune(line); len(runes) > maxLen {
			line = string(runes[:maxLen-3]) + "..."
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Padding(0, 1).
		Render(title + "\n" + strings.Join(lines, "\n"))
}
