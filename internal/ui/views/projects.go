package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/trackboard/internal/model"
	"github.com/dori/trackboard/internal/repo"
	"github.com/dori/trackboard/internal/ui/theme"
	"github.com/dori/trackboard/internal/view"
)

// ProjectsView lists ongoing and completed projects with a free-text search
type ProjectsView struct {
	repo   *repo.Repository
	width  int
	height int

	projects []model.Project
	data     view.ProjectsPageModel
	search   string
	cursor   int

	mode    listMode
	input   textinput.Model
	pending *repo.PendingAction

	statusMsg string
	errMsg    string
}

// NewProjectsView creates a new projects view
func NewProjectsView(r *repo.Repository) ProjectsView {
	ti := textinput.New()
	ti.Placeholder = "Search projects..."
	ti.CharLimit = 128

	return ProjectsView{
		repo:  r,
		input: ti,
	}
}

// Init loads the projects
func (v ProjectsView) Init() tea.Cmd {
	return v.load
}

// SetSize sets the view dimensions
func (v ProjectsView) SetSize(width, height int) ProjectsView {
	v.width = width
	v.height = height
	v.input.Width = width - 4
	return v
}

// IsInputMode returns whether the view is capturing keys
func (v ProjectsView) IsInputMode() bool {
	return v.mode != modeNormal
}

func (v ProjectsView) load() tea.Msg {
	projects, err := v.repo.Sync()
	return projectsLoadedMsg{projects: projects, err: err}
}

func (v *ProjectsView) rebuild() {
	v.data = view.ProjectsPage(v.projects, v.search)
	v.cursor = clampCursor(v.cursor, len(v.rows()))
}

// rows is the navigable order: ongoing first, then completed
func (v ProjectsView) rows() []view.ProjectCard {
	rows := make([]view.ProjectCard, 0, len(v.data.Ongoing)+len(v.data.Completed))
	rows = append(rows, v.data.Ongoing...)
	return append(rows, v.data.Completed...)
}

// Update handles messages
func (v ProjectsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		if msg.err != nil {
			v.errMsg = msg.err.Error()
		}
		v.projects = msg.projects
		v.rebuild()
		return v, nil

	case projectsChangedMsg:
		if msg.err != nil {
			v.errMsg = userError(msg.err)
		} else {
			v.statusMsg = msg.status
		}
		return v, v.load

	case tea.KeyMsg:
		switch v.mode {
		case modeSearch:
			return v.handleSearch(msg)
		case modeConfirm:
			return v.handleConfirm(msg)
		default:
			return v.handleNormal(msg)
		}
	}

	if v.mode == modeSearch {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v ProjectsView) handleNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.statusMsg = ""
	v.errMsg = ""
	rows := v.rows()

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = clampCursor(len(rows)-1, len(rows))

	case "/":
		v.mode = modeSearch
		v.input.SetValue(v.search)
		v.input.Focus()
		return v, textinput.Blink

	case "esc":
		if v.search != "" {
			v.search = ""
			v.rebuild()
		}

	case "r":
		return v, v.load

	case "d":
		if len(rows) == 0 {
			return v, nil
		}
		action, err := v.repo.RequestDeleteProject(rows[v.cursor].ID)
		if err != nil {
			v.errMsg = err.Error()
			return v, v.load
		}
		v.pending = action
		v.mode = modeConfirm

	case "enter":
		if len(rows) == 0 {
			return v, nil
		}
		id := rows[v.cursor].ID
		return v, func() tea.Msg { return OpenProjectRequest{ProjectID: id} }
	}

	return v, nil
}

// handleSearch filters as the user types
func (v ProjectsView) handleSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.mode = modeNormal
		v.input.Blur()
		return v, nil
	case "esc":
		v.mode = modeNormal
		v.input.Blur()
		v.search = ""
		v.rebuild()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.search = v.input.Value()
	v.cursor = 0
	v.rebuild()
	return v, cmd
}

func (v ProjectsView) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := v.pending
	if action == nil {
		v.mode = modeNormal
		return v, nil
	}
	switch msg.String() {
	case "y", "Y":
		v.mode = modeNormal
		v.pending = nil
		return v, func() tea.Msg {
			return projectsChangedMsg{status: "Project deleted", err: action.Confirm()}
		}
	case "n", "N", "esc":
		action.Cancel()
		v.mode = modeNormal
		v.pending = nil
	}
	return v, nil
}

// View renders the projects page
func (v ProjectsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)

	var b strings.Builder

	stats := v.data.Stats
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		summaryCard(itoa(stats.Ongoing), "Ongoing"),
		summaryCard(itoa(stats.Completed), "Completed"),
		summaryCard(itoa(stats.AvgProgress)+"%", "Avg Progress"),
	))
	b.WriteString("\n")
	b.WriteString(progressBar(stats.AvgProgress, 40))
	b.WriteString("\n\n")

	if v.mode == modeSearch {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("/"))
		b.WriteString(v.input.View())
		b.WriteString("\n\n")
	} else if v.search != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Italic(true).Render("search: " + v.search))
		b.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Render(" (esc to clear)"))
		b.WriteString("\n\n")
	}

	if v.mode == modeConfirm && v.pending != nil {
		b.WriteString(confirmLine(v.pending.Prompt))
		b.WriteString("\n\n")
	}
	if v.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
		b.WriteString("\n\n")
	} else if v.statusMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
		b.WriteString("\n\n")
	}

	header := b.String()
	b.Reset()

	index := 0
	cursorLine := 0
	writeCard := func(card view.ProjectCard) {
		if index == v.cursor {
			cursorLine = strings.Count(b.String(), "\n")
		}
		b.WriteString(renderProjectCard(card, index == v.cursor, v.width))
		b.WriteString("\n")
		index++
	}

	b.WriteString(sectionStyle.Render("Ongoing"))
	b.WriteString("\n")
	if v.data.EmptyOngoing != "" {
		b.WriteString(emptyState(v.data.EmptyOngoing))
		b.WriteString("\n")
	}
	for _, card := range v.data.Ongoing {
		writeCard(card)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Completed"))
	b.WriteString("\n")
	if v.data.EmptyCompleted != "" {
		b.WriteString(emptyState(v.data.EmptyCompleted))
		b.WriteString("\n")
	}
	for _, card := range v.data.Completed {
		writeCard(card)
	}

	listHeight := v.height - lipgloss.Height(header)
	return header + windowLines(b.String(), cursorLine, cardHeight, listHeight)
}
