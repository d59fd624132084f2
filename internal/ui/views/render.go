package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dori/trackboard/internal/model"
	"github.com/dori/trackboard/internal/ui/theme"
)

// progressBar renders a fixed-width bar for a 0..100 percent
func progressBar(percent, width int) string {
	styles := theme.Current.Styles
	if width < 1 {
		width = 1
	}
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return styles.ProgressFill.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmpty.Render(strings.Repeat("░", width-filled))
}

func statusBadge(s model.Status) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme
	return styles.ChipStyle(t.StatusColor(s)).Render(strings.ToUpper(string(s)))
}

func priorityChip(p model.Priority, label string) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme
	return styles.ChipStyle(t.PriorityColor(p)).Render(label)
}

func doneChip(done bool, label string) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme
	c := t.Warning
	if done {
		c = t.Success
	}
	return styles.ChipStyle(c).Render(label)
}

func emptyState(msg string) string {
	t := theme.Current.Theme
	return lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render(msg)
}

// summaryCard renders one stat box
func summaryCard(value, label string) string {
	t := theme.Current.Theme

	cardStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2).
		Width(18)
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(t.Subtle)

	return cardStyle.Render(valueStyle.Render(value) + "\n" + labelStyle.Render(label))
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}

// confirmLine renders a pending action prompt
func confirmLine(prompt string) string {
	t := theme.Current.Theme
	confirmStyle := lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)
	return confirmStyle.Render(prompt + " (y/n)")
}

// clampCursor keeps a cursor inside 0..n-1
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// scrollWindow returns the first visible index for a cursor in a list of
// rows each rowHeight lines tall.
func scrollWindow(cursor, offset, height, rowHeight int) int {
	visible := height / rowHeight
	if visible < 1 {
		visible = 1
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+visible {
		offset = cursor - visible + 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// truncate shortens s to at most width runes
func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 1 || len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// windowLines crops content to height lines, keeping the block of span lines
// starting at focus in view.
func windowLines(content string, focus, span, height int) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if height < 1 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	start := 0
	if end := focus + span; end > height {
		start = end - height
	}
	if start > len(lines)-height {
		start = len(lines) - height
	}
	return strings.Join(lines[start:start+height], "\n")
}
