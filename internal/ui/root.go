package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/trackboard/internal/app"
	"github.com/dori/trackboard/internal/ui/theme"
	"github.com/dori/trackboard/internal/ui/views"
)

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView   View
	previousView  View
	dashboardView views.DashboardView
	projectsView  views.ProjectsView
	tasksView     views.TasksView
	helpVisible   bool

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model. projectID is only used when start
// is ViewTasks; without it the dashboard is shown instead.
func NewRootModel(application *app.App, start View, projectID string) RootModel {
	h := help.New()
	h.ShowAll = true

	m := RootModel{
		app:           application,
		keys:          DefaultKeyMap(),
		help:          h,
		currentView:   start,
		previousView:  ViewDashboard,
		dashboardView: views.NewDashboardView(application.Repo),
		projectsView:  views.NewProjectsView(application.Repo),
		tasksView:     views.NewTasksView(application.Repo, application.Config.UserEmail),
	}

	if start == ViewTasks {
		if projectID == "" {
			m.currentView = ViewDashboard
		} else {
			m.tasksView = m.tasksView.SetProject(projectID)
		}
	}
	return m
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	a := m.app
	overdue := func() tea.Msg {
		a.NotifyOverdue()
		return nil
	}
	return tea.Batch(m.initView(m.currentView), overdue)
}

func (m RootModel) initView(v View) tea.Cmd {
	switch v {
	case ViewProjects:
		return m.projectsView.Init()
	case ViewTasks:
		return m.tasksView.Init()
	default:
		return m.dashboardView.Init()
	}
}

func (m RootModel) isInputMode() bool {
	switch m.currentView {
	case ViewProjects:
		return m.projectsView.IsInputMode()
	case ViewTasks:
		return m.tasksView.IsInputMode()
	default:
		return m.dashboardView.IsInputMode()
	}
}

// switchTo shows v and reloads it, so every view reflects the latest saves
func (m RootModel) switchTo(v View) (RootModel, tea.Cmd) {
	if v != ViewTasks {
		m.previousView = v
	}
	m.currentView = v
	m.helpVisible = false
	return m, m.initView(v)
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header (1 line) and footer (up to 3 lines)
		contentHeight := m.height - 4
		m.dashboardView = m.dashboardView.SetSize(m.width, contentHeight)
		m.projectsView = m.projectsView.SetSize(m.width, contentHeight)
		m.tasksView = m.tasksView.SetSize(m.width, contentHeight)
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := m.isInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, 'q' only outside input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if isInputMode {
			break
		}

		if m.helpVisible {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.helpVisible = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = true
			return m, nil
		case key.Matches(msg, m.keys.DashboardView):
			return m.switchTo(ViewDashboard)
		case key.Matches(msg, m.keys.ProjectsView):
			return m.switchTo(ViewProjects)
		case key.Matches(msg, m.keys.TasksView):
			if m.tasksView.ProjectID() == "" {
				m.statusMsg = "Open a project first (enter on a project)"
				return m, nil
			}
			return m.switchTo(ViewTasks)
		}

	case views.OpenProjectRequest:
		m.tasksView = m.tasksView.SetProject(msg.ProjectID)
		return m.switchTo(ViewTasks)

	case views.BackRequest:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		}
		return m.switchTo(m.previousView)
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewDashboard:
		var next tea.Model
		next, cmd = m.dashboardView.Update(msg)
		m.dashboardView = next.(views.DashboardView)
	case ViewProjects:
		var next tea.Model
		next, cmd = m.projectsView.Update(msg)
		m.projectsView = next.(views.ProjectsView)
	case ViewTasks:
		var next tea.Model
		next, cmd = m.tasksView.Update(msg)
		m.tasksView = next.(views.TasksView)
	}

	return m, cmd
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewProjects:
			content = m.projectsView.View()
		case ViewTasks:
			content = m.tasksView.View()
		default:
			content = m.dashboardView.View()
		}
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("trackboard")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)

	tabs := make([]string, 0, 3)
	for i, v := range []View{ViewDashboard, ViewProjects, ViewTasks} {
		label := fmt.Sprintf("%d %s", i+1, v)
		if v == m.currentView {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Padding(0, 1).Render("["+label+"]"))
		} else {
			tabs = append(tabs, viewStyle.Render(label))
		}
	}

	themeIndicator := viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, append([]string{title}, tabs...)...)
	rightSide := themeIndicator

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string

	switch {
	case m.helpVisible:
		line1 = key("?/esc", "close help")

	case m.isInputMode():
		line1 = key("enter", "confirm") + sep + key("esc", "cancel")

	case m.currentView == ViewDashboard:
		line1 = key("a", "add") + sep +
			key("e", "edit") + sep +
			key("d", "del") + sep +
			key("enter", "open") + sep +
			key("f", "filter")
		line2 = key("1-3", "views") + sep +
			key("ctrl+t", "theme") + sep +
			key("?", "help")

	case m.currentView == ViewProjects:
		line1 = key("enter", "open") + sep +
			key("/", "search") + sep +
			key("d", "del") + sep +
			key("r", "refresh")
		line2 = key("1-3", "views") + sep +
			key("ctrl+t", "theme") + sep +
			key("?", "help")

	case m.currentView == ViewTasks:
		line1 = key("a", "add") + sep +
			key("n", "quick add") + sep +
			key("enter", "edit") + sep +
			key("tab", "done") + sep +
			key("d", "del")
		line2 = key("s", "status") + sep +
			key("m", "mine") + sep +
			key("/", "search") + sep +
			key("esc", "back") + sep +
			key("?", "help")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder
	b.WriteString(titleStyle.Render("trackboard help"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(descStyle.Render("Quick add: Title !high due:friday @Jane_Doe email:jane@example.com"))
	b.WriteString("\n\n")
	b.WriteString(descStyle.Render("Press ? or esc to close"))

	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
