package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/trackboard/internal/model"
)

// Theme defines the color scheme and styles for the UI
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	Subtle        lipgloss.Color
	Highlight     lipgloss.Color
	Border        lipgloss.Color

	// Semantic colors
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Info          lipgloss.Color

	// Priority colors
	PriorityLow    lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityHigh   lipgloss.Color

	// Project status colors
	StatusOngoing   lipgloss.Color
	StatusCompleted lipgloss.Color
	StatusUpcoming  lipgloss.Color
}

// PriorityColor returns the chip color for a task priority
func (t Theme) PriorityColor(p model.Priority) lipgloss.Color {
	switch p.OrDefault() {
	case model.PriorityLow:
		return t.PriorityLow
	case model.PriorityHigh:
		return t.PriorityHigh
	default:
		return t.PriorityMedium
	}
}

// StatusColor returns the badge color for a project status
func (t Theme) StatusColor(s model.Status) lipgloss.Color {
	switch s {
	case model.StatusCompleted:
		return t.StatusCompleted
	case model.StatusUpcoming:
		return t.StatusUpcoming
	default:
		return t.StatusOngoing
	}
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header lipgloss.Style

	// Rows are project cards and task rows
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	RowDone     lipgloss.Style
	RowOverdue  lipgloss.Style

	Subtitle      lipgloss.Style
	Label         lipgloss.Style
	Chip          lipgloss.Style
	DueDate       lipgloss.Style
	ProgressFill  lipgloss.Style
	ProgressEmpty lipgloss.Style

	InputFocused lipgloss.Style
	Panel        lipgloss.Style

	// Footer key hints
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Row: lipgloss.NewStyle().
			Foreground(t.Foreground),

		RowSelected: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight),

		RowDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true),

		RowOverdue: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Italic(true),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Chip: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			MarginRight(1),

		DueDate: lipgloss.NewStyle().
			Foreground(t.Warning),

		ProgressFill: lipgloss.NewStyle().
			Foreground(t.Success),

		ProgressEmpty: lipgloss.NewStyle().
			Foreground(t.Border),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
		Gruvbox,
		Catppuccin,
	}
}

// ChipStyle colors a chip with c
func (s Styles) ChipStyle(c lipgloss.Color) lipgloss.Style {
	return s.Chip.Foreground(c)
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}
