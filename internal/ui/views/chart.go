package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dori/trackboard/internal/model"
	"github.com/dori/trackboard/internal/ui/theme"
	"github.com/dori/trackboard/internal/view"
)

// StatusChart draws the dashboard's status columns and per-project progress
// bars. It is refreshed through view.ChartHook after every stats pass.
type StatusChart struct {
	stats    view.DashboardStats
	projects []model.Project
}

var _ view.ChartHook = (*StatusChart)(nil)

// UpdateCharts stores the latest stats
func (c *StatusChart) UpdateCharts(stats view.DashboardStats, projects []model.Project) {
	c.stats = stats
	c.projects = projects
}

// Render draws both charts side by side when there is room
func (c *StatusChart) Render(width int) string {
	columns := c.renderStatusColumns()
	if width < 70 {
		return columns + "\n\n" + c.renderProgressBars(width)
	}
	bars := c.renderProgressBars(width - lipgloss.Width(columns) - 4)
	return lipgloss.JoinHorizontal(lipgloss.Top, columns, "    ", bars)
}

// renderStatusColumns renders one column per project status
func (c *StatusChart) renderStatusColumns() string {
	t := theme.Current.Theme

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)

	var lines []string
	lines = append(lines, headerStyle.Render("Projects by Status"))

	counts := []int{c.stats.Ongoing, c.stats.Completed, c.stats.Upcoming}
	statuses := model.Statuses()

	// Find max for scaling
	maxCount := 1
	for _, count := range counts {
		if count > maxCount {
			maxCount = count
		}
	}

	chartHeight := 5
	barWidth := 9

	for row := chartHeight; row >= 1; row-- {
		var rowStr strings.Builder
		threshold := float64(row) / float64(chartHeight)

		for i, count := range counts {
			ratio := float64(count) / float64(maxCount)
			color := t.StatusColor(statuses[i])

			var block string
			if ratio >= threshold {
				block = lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", barWidth))
			} else if ratio >= threshold-0.2 && ratio > 0 {
				block = lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▄", barWidth))
			} else {
				block = strings.Repeat(" ", barWidth)
			}

			rowStr.WriteString(block)
			if i < len(counts)-1 {
				rowStr.WriteString(" ")
			}
		}
		lines = append(lines, rowStr.String())
	}

	var labelStr, countStr strings.Builder
	for i, count := range counts {
		label := statuses[i].Label()
		labelStr.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Width(barWidth).Align(lipgloss.Center).Render(label))
		countStr.WriteString(lipgloss.NewStyle().Foreground(t.Foreground).Width(barWidth).Align(lipgloss.Center).Render(fmt.Sprintf("%d", count)))
		if i < len(counts)-1 {
			labelStr.WriteString(" ")
			countStr.WriteString(" ")
		}
	}
	lines = append(lines, labelStr.String(), countStr.String())

	return strings.Join(lines, "\n")
}

// renderProgressBars renders one bar per project plus the average
func (c *StatusChart) renderProgressBars(width int) string {
	t := theme.Current.Theme

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)

	var lines []string
	lines = append(lines, headerStyle.Render(fmt.Sprintf("Progress (avg %d%%)", c.stats.AvgProgress)))

	barMaxWidth := width - 24
	if barMaxWidth > 30 {
		barMaxWidth = 30
	}
	if barMaxWidth < 5 {
		barMaxWidth = 5
	}

	maxRows := 6
	for i, p := range c.projects {
		if i == maxRows {
			lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).
				Render(fmt.Sprintf("... +%d more", len(c.projects)-maxRows)))
			break
		}

		name := p.Name
		if runes := []rune(name); len(runes) > 14 {
			name = string(runes[:13]) + "…"
		}

		barWidth := p.Progress * barMaxWidth / 100
		if barWidth < 1 && p.Progress > 0 {
			barWidth = 1
		}
		bar := lipgloss.NewStyle().Foreground(t.StatusColor(p.Status)).Render(strings.Repeat("█", barWidth))
		pad := strings.Repeat(" ", barMaxWidth-barWidth)

		lines = append(lines, fmt.Sprintf("%-15s %s%s %3d%%", name, bar, pad, p.Progress))
	}

	return strings.Join(lines, "\n")
}
