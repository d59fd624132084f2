package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/trackboard/internal/model"
	"github.com/dori/trackboard/internal/repo"
	"github.com/dori/trackboard/internal/ui/theme"
	"github.com/dori/trackboard/internal/view"
)

type listMode int

const (
	modeNormal listMode = iota
	modeForm
	modeSearch
	modeConfirm
)

// DashboardView shows stats, the status chart and every project as a card
type DashboardView struct {
	repo   *repo.Repository
	width  int
	height int

	data   view.DashboardModel
	filter view.ProjectFilter
	chart  *StatusChart
	cursor int

	mode      listMode
	form      form
	editingID string
	pending   *repo.PendingAction

	statusMsg string
	errMsg    string
}

// NewDashboardView creates a new dashboard view
func NewDashboardView(r *repo.Repository) DashboardView {
	return DashboardView{
		repo:  r,
		chart: &StatusChart{},
	}
}

// Init loads the projects
func (v DashboardView) Init() tea.Cmd {
	return v.load
}

// SetSize sets the view dimensions
func (v DashboardView) SetSize(width, height int) DashboardView {
	v.width = width
	v.height = height
	v.form = v.form.setWidth(width)
	return v
}

// IsInputMode returns whether the view is capturing keys
func (v DashboardView) IsInputMode() bool {
	return v.mode != modeNormal
}

// Filter returns the active status filter
func (v DashboardView) Filter() view.ProjectFilter {
	return v.filter
}

func (v DashboardView) load() tea.Msg {
	projects, err := v.repo.Sync()
	return projectsLoadedMsg{projects: projects, err: err}
}

func (v *DashboardView) rebuild(projects []model.Project) {
	v.data = view.Dashboard(projects, v.filter)
	v.data.Publish(v.chart)
	v.cursor = clampCursor(v.cursor, len(v.data.Cards))
}

// Update handles messages
func (v DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		if msg.err != nil {
			v.errMsg = msg.err.Error()
		}
		v.rebuild(msg.projects)
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
		case modeForm:
			return v.handleForm(msg)
		case modeConfirm:
			return v.handleConfirm(msg)
		default:
			return v.handleNormal(msg)
		}
	}

	if v.mode == modeForm {
		var cmd tea.Cmd
		v.form, _, cmd = v.form.update(msg)
		return v, cmd
	}
	return v, nil
}

func (v DashboardView) selected() (view.ProjectCard, bool) {
	if len(v.data.Cards) == 0 {
		return view.ProjectCard{}, false
	}
	return v.data.Cards[v.cursor], true
}

func (v DashboardView) handleNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.statusMsg = ""
	v.errMsg = ""

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.data.Cards)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = clampCursor(len(v.data.Cards)-1, len(v.data.Cards))

	case "f":
		v.filter = v.filter.Next()
		v.cursor = 0
		v.rebuild(v.data.Projects)
		v.statusMsg = "Filter: " + v.filter.Label()

	case "r":
		return v, v.load

	case "a":
		v.mode = modeForm
		v.editingID = ""
		v.form = newProjectForm("Add New Project", model.ProjectDraft{}).setWidth(v.width)
		return v, nil

	case "e":
		card, ok := v.selected()
		if !ok {
			return v, nil
		}
		p, found := v.repo.FindByID(card.ID)
		if !found {
			v.errMsg = "Project not found"
			return v, v.load
		}
		v.mode = modeForm
		v.editingID = card.ID
		v.form = newProjectForm("Edit Project", model.ProjectDraftFrom(p)).setWidth(v.width)
		return v, nil

	case "d":
		card, ok := v.selected()
		if !ok {
			return v, nil
		}
		action, err := v.repo.RequestDeleteProject(card.ID)
		if err != nil {
			v.errMsg = err.Error()
			return v, v.load
		}
		v.pending = action
		v.mode = modeConfirm

	case "enter":
		card, ok := v.selected()
		if !ok {
			return v, nil
		}
		id := card.ID
		return v, func() tea.Msg { return OpenProjectRequest{ProjectID: id} }
	}

	return v, nil
}

func (v DashboardView) handleForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		result formResult
		cmd    tea.Cmd
	)
	v.form, result, cmd = v.form.update(msg)

	switch result {
	case formCancelled:
		v.mode = modeNormal
		return v, nil

	case formSubmitted:
		draft, err := projectDraft(v.form, time.Now())
		if err == nil {
			draft, err = draft.Validate()
		}
		if err != nil {
			// keep the form open
			v.form = v.form.withError(userError(err))
			return v, nil
		}
		v.mode = modeNormal
		return v, v.saveProject(v.editingID, draft)
	}

	return v, cmd
}

func (v DashboardView) saveProject(id string, draft model.ProjectDraft) tea.Cmd {
	r := v.repo
	return func() tea.Msg {
		if id == "" {
			p, err := r.CreateProject(draft)
			return projectsChangedMsg{status: fmt.Sprintf("Added %q", p.Name), err: err}
		}
		p, err := r.UpdateProject(id, draft)
		return projectsChangedMsg{status: fmt.Sprintf("Saved %q", p.Name), err: err}
	}
}

func (v DashboardView) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

// View renders the dashboard
func (v DashboardView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	if v.mode == modeForm {
		return v.form.view()
	}

	t := theme.Current.Theme
	var sections []string

	stats := v.data.Stats
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		summaryCard(itoa(stats.Total), "Projects"),
		summaryCard(itoa(stats.Ongoing), "Ongoing"),
		summaryCard(itoa(stats.Completed), "Completed"),
		summaryCard(itoa(stats.Upcoming), "Upcoming"),
		summaryCard(itoa(stats.AvgProgress)+"%", "Avg Progress"),
	)
	sections = append(sections, cards, "")
	sections = append(sections, v.chart.Render(v.width), "")

	filterStyle := lipgloss.NewStyle().Foreground(t.Info).Italic(true)
	sections = append(sections, filterStyle.Render("Showing: "+v.filter.Label()))

	if v.mode == modeConfirm && v.pending != nil {
		sections = append(sections, confirmLine(v.pending.Prompt))
	}
	if v.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
	} else if v.statusMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
	}
	sections = append(sections, "")

	header := strings.Join(sections, "\n")
	listHeight := v.height - lipgloss.Height(header)

	if v.data.Empty != "" {
		return header + "\n" + emptyState(v.data.Empty)
	}
	return header + "\n" + v.renderCards(listHeight)
}

const cardHeight = 4

func (v DashboardView) renderCards(height int) string {
	offset := scrollWindow(v.cursor, 0, height, cardHeight)

	var rows []string
	for i := offset; i < len(v.data.Cards); i++ {
		if (i-offset+1)*cardHeight > height && i > offset {
			break
		}
		rows = append(rows, renderProjectCard(v.data.Cards[i], i == v.cursor, v.width))
	}
	return strings.Join(rows, "\n")
}

// renderProjectCard is shared by the dashboard and the projects page
func renderProjectCard(card view.ProjectCard, isCursor bool, width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	marker := "  "
	nameStyle := styles.Row.Bold(true)
	if isCursor {
		marker = lipgloss.NewStyle().Foreground(t.Primary).Render("▶ ")
		nameStyle = styles.RowSelected.Bold(true)
	}

	title := marker + nameStyle.Render(card.Name) + " " + statusBadge(card.Status)

	barWidth := width / 3
	if barWidth > 30 {
		barWidth = 30
	}
	progress := "   " + progressBar(card.Progress, barWidth) +
		fmt.Sprintf(" %d%% Complete", card.Progress) +
		styles.Label.Render(fmt.Sprintf("  %d/%d tasks", card.TaskDone, card.TaskTotal))

	desc := card.Description
	if desc == "" {
		desc = "No description"
	}
	desc = truncate(desc, width-6)
	details := "   " + styles.Subtitle.Render(desc)
	if card.HasTimeline {
		details += styles.DueDate.Render(fmt.Sprintf("  Start: %s | Due: %s", card.Start, card.End))
	}

	return strings.Join([]string{title, progress, details, ""}, "\n")
}
