package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/trackboard/internal/model"
	"github.com/dori/trackboard/internal/quickadd"
	"github.com/dori/trackboard/internal/repo"
	"github.com/dori/trackboard/internal/ui/theme"
	"github.com/dori/trackboard/internal/view"
)

const modeQuickAdd listMode = modeConfirm + 1

// TasksView shows one project's tasks with the status, assignee and search
// filters.
type TasksView struct {
	repo   *repo.Repository
	width  int
	height int

	projectID string
	data      view.TaskPageModel
	filter    view.TaskFilter
	cursor    int

	mode      listMode
	input     textinput.Model
	form      form
	editIndex int
	editDone  bool
	pending   *repo.PendingAction

	statusMsg string
	errMsg    string
}

// NewTasksView creates a task view. userEmail backs the "assigned to me" filter.
func NewTasksView(r *repo.Repository, userEmail string) TasksView {
	ti := textinput.New()
	ti.CharLimit = 256

	return TasksView{
		repo:      r,
		filter:    view.DefaultTaskFilter(userEmail),
		input:     ti,
		editIndex: -1,
	}
}

// SetProject switches the view to another project and resets the filters
func (v TasksView) SetProject(projectID string) TasksView {
	v.projectID = projectID
	v.filter = view.DefaultTaskFilter(v.filter.CurrentUserEmail)
	v.cursor = 0
	v.mode = modeNormal
	v.statusMsg = ""
	v.errMsg = ""
	return v
}

// ProjectID returns the project being shown
func (v TasksView) ProjectID() string {
	return v.projectID
}

// Init loads the project
func (v TasksView) Init() tea.Cmd {
	return v.load
}

// SetSize sets the view dimensions
func (v TasksView) SetSize(width, height int) TasksView {
	v.width = width
	v.height = height
	v.input.Width = width - 4
	v.form = v.form.setWidth(width)
	return v
}

// IsInputMode returns whether the view is capturing keys
func (v TasksView) IsInputMode() bool {
	return v.mode != modeNormal
}

func (v TasksView) load() tea.Msg {
	p, ok := v.repo.FindByID(v.projectID)
	return projectLoadedMsg{project: p, found: ok}
}

func (v *TasksView) rebuild(p model.Project) {
	v.data = view.TaskPage(p, v.filter)
	v.cursor = clampCursor(v.cursor, len(v.data.Rows))
}

// Update handles messages
func (v TasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectLoadedMsg:
		if !msg.found {
			err := fmt.Errorf("project %s %w", v.projectID, repo.ErrNotFound)
			return v, func() tea.Msg { return BackRequest{Err: err} }
		}
		v.rebuild(msg.project)
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
		case modeSearch:
			return v.handleSearch(msg)
		case modeQuickAdd:
			return v.handleQuickAdd(msg)
		case modeConfirm:
			return v.handleConfirm(msg)
		default:
			return v.handleNormal(msg)
		}
	}

	switch v.mode {
	case modeForm:
		var cmd tea.Cmd
		v.form, _, cmd = v.form.update(msg)
		return v, cmd
	case modeSearch, modeQuickAdd:
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v TasksView) selected() (view.TaskRow, bool) {
	if len(v.data.Rows) == 0 {
		return view.TaskRow{}, false
	}
	return v.data.Rows[v.cursor], true
}

func (v TasksView) handleNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.statusMsg = ""
	v.errMsg = ""

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.data.Rows)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = clampCursor(len(v.data.Rows)-1, len(v.data.Rows))

	case "tab", "x", " ":
		row, ok := v.selected()
		if !ok {
			return v, nil
		}
		return v, v.toggle(row.Index)

	case "a":
		v.mode = modeForm
		v.editIndex = -1
		v.editDone = false
		v.form = newTaskForm("Add Task", model.TaskDraft{}).setWidth(v.width)
		return v, nil

	case "n":
		v.mode = modeQuickAdd
		v.input.Placeholder = "Title !high due:friday @name email:addr"
		v.input.SetValue("")
		v.input.Focus()
		return v, textinput.Blink

	case "enter", "e":
		row, ok := v.selected()
		if !ok {
			return v, nil
		}
		p, found := v.repo.FindByID(v.projectID)
		if !found || row.Index >= len(p.Tasks) {
			return v, v.load
		}
		task := p.Tasks[row.Index]
		v.mode = modeForm
		v.editIndex = row.Index
		v.editDone = task.Done
		v.form = newTaskForm("Edit Task", model.TaskDraftFrom(task)).setWidth(v.width)
		return v, nil

	case "d":
		row, ok := v.selected()
		if !ok {
			return v, nil
		}
		action, err := v.repo.RequestDeleteTask(v.projectID, row.Index)
		if err != nil {
			v.errMsg = err.Error()
			return v, v.load
		}
		v.pending = action
		v.mode = modeConfirm

	case "s":
		v.filter = v.filter.NextStatus()
		v.cursor = 0
		return v, v.load

	case "m":
		if v.filter.CurrentUserEmail == "" && v.filter.Assignee != view.AssigneeMe {
			v.statusMsg = "Set user_email in the config to match your tasks by email"
		}
		v.filter = v.filter.ToggleMine()
		v.cursor = 0
		return v, v.load

	case "/":
		v.mode = modeSearch
		v.input.Placeholder = "Search tasks..."
		v.input.SetValue(v.filter.Search)
		v.input.Focus()
		return v, textinput.Blink

	case "esc", "backspace", "b":
		if msg.String() == "esc" && v.filter.Active() {
			v.filter = view.DefaultTaskFilter(v.filter.CurrentUserEmail)
			return v, v.load
		}
		return v, func() tea.Msg { return BackRequest{} }

	case "r":
		return v, v.load
	}

	return v, nil
}

func (v TasksView) toggle(index int) tea.Cmd {
	r, projectID := v.repo, v.projectID
	return func() tea.Msg {
		task, err := r.ToggleTaskDone(projectID, index)
		status := fmt.Sprintf("Reopened %q", task.Title)
		if task.Done {
			status = fmt.Sprintf("Done: %q", task.Title)
		}
		return projectsChangedMsg{status: status, err: err}
	}
}

func (v TasksView) handleForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		draft, err := taskDraft(v.form, v.editDone, time.Now())
		if err == nil {
			draft, err = draft.Validate()
		}
		if err != nil {
			v.form = v.form.withError(userError(err))
			return v, nil
		}
		v.mode = modeNormal
		return v, v.saveTask(v.editIndex, draft)
	}

	return v, cmd
}

func (v TasksView) saveTask(index int, draft model.TaskDraft) tea.Cmd {
	r, projectID := v.repo, v.projectID
	return func() tea.Msg {
		if index < 0 {
			task, err := r.AddTask(projectID, draft)
			return projectsChangedMsg{status: fmt.Sprintf("Added %q", task.Title), err: err}
		}
		task, err := r.UpdateTask(projectID, index, draft)
		return projectsChangedMsg{status: fmt.Sprintf("Saved %q", task.Title), err: err}
	}
}

func (v TasksView) handleQuickAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		draft := quickadd.Parse(v.input.Value(), time.Now())
		if strings.TrimSpace(draft.Title) == "" {
			// nothing to add, stay in the input
			return v, nil
		}
		v.mode = modeNormal
		v.input.Blur()
		return v, v.saveTask(-1, draft)
	case "esc":
		v.mode = modeNormal
		v.input.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleSearch applies the search as the user types
func (v TasksView) handleSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.mode = modeNormal
		v.input.Blur()
		return v, nil
	case "esc":
		v.mode = modeNormal
		v.input.Blur()
		v.filter.Search = ""
		return v, v.load
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.filter.Search = v.input.Value()
	v.cursor = 0
	return v, tea.Batch(cmd, v.load)
}

func (v TasksView) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
			return projectsChangedMsg{status: "Task deleted", err: action.Confirm()}
		}
	case "n", "N", "esc":
		action.Cancel()
		v.mode = modeNormal
		v.pending = nil
	}
	return v, nil
}

// View renders the task view
func (v TasksView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	if v.mode == modeForm {
		return v.form.view()
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render(v.data.ProjectName)
	b.WriteString(title + " " + statusBadge(v.data.ProjectStatus))
	b.WriteString("\n")

	stats := v.data.Stats
	b.WriteString(progressBar(stats.Percent, 30))
	b.WriteString(fmt.Sprintf(" %d%% Complete", stats.Percent))
	b.WriteString(styles.Label.Render(fmt.Sprintf("  %d total • %d completed", stats.Total, stats.Completed)))
	b.WriteString("\n\n")

	b.WriteString(v.renderFilterBar())
	b.WriteString("\n")

	switch v.mode {
	case modeSearch:
		b.WriteString(lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("/"))
		b.WriteString(v.input.View())
		b.WriteString("\n")
	case modeQuickAdd:
		b.WriteString(styles.InputFocused.Render(v.input.View()))
		b.WriteString("\n")
	case modeConfirm:
		if v.pending != nil {
			b.WriteString(confirmLine(v.pending.Prompt))
			b.WriteString("\n")
		}
	}
	if v.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
		b.WriteString("\n")
	} else if v.statusMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Render(v.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	header := b.String()
	if v.data.Empty != "" {
		return header + emptyState(v.data.Empty)
	}

	var rows strings.Builder
	cursorLine := 0
	for i, row := range v.data.Rows {
		if i == v.cursor {
			cursorLine = strings.Count(rows.String(), "\n")
		}
		rows.WriteString(v.renderRow(row, i == v.cursor))
		rows.WriteString("\n")
	}

	listHeight := v.height - lipgloss.Height(header)
	return header + windowLines(rows.String(), cursorLine, 3, listHeight)
}

func (v TasksView) renderFilterBar() string {
	t := theme.Current.Theme

	active := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(t.Subtle)

	pick := func(label string, on bool) string {
		if on {
			return active.Render("[" + label + "]")
		}
		return inactive.Render(" " + label + " ")
	}

	status := v.filter.Status
	if status == "" {
		status = view.TaskStatusAll
	}
	parts := []string{
		pick("All", status == view.TaskStatusAll),
		pick("Open", status == view.TaskStatusOpen),
		pick("Done", status == view.TaskStatusDone),
		inactive.Render("│"),
		pick("Everyone", v.filter.Assignee != view.AssigneeMe),
		pick("Mine", v.filter.Assignee == view.AssigneeMe),
	}
	if v.filter.Search != "" && v.mode != modeSearch {
		parts = append(parts, inactive.Render("│"), lipgloss.NewStyle().Foreground(t.Info).Italic(true).Render("search: "+v.filter.Search))
	}
	return strings.Join(parts, " ")
}

func (v TasksView) renderRow(row view.TaskRow, isCursor bool) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	checkbox := "[ ]"
	if row.Done {
		checkbox = "[x]"
	}

	marker := "  "
	titleStyle := styles.Row
	switch {
	case row.Done:
		titleStyle = styles.RowDone
	case row.Overdue:
		titleStyle = styles.RowOverdue
	}
	if isCursor {
		marker = lipgloss.NewStyle().Foreground(t.Primary).Render("▶ ")
		titleStyle = titleStyle.Background(t.Highlight)
	}

	line1 := marker + checkbox + " " + titleStyle.Render(truncate(row.Title, v.width-10))

	meta := []string{
		priorityChip(row.Priority, row.PriorityLabel),
		doneChip(row.Done, row.StatusLabel),
	}
	due := styles.DueDate.Render(row.DueLabel)
	if row.DueLabel == view.NoDueDate {
		due = styles.Label.Render(row.DueLabel)
	} else if row.Overdue {
		due = lipgloss.NewStyle().Foreground(t.Error).Render(row.DueLabel + " (overdue)")
	}
	meta = append(meta, due)
	if row.AssigneeLabel != "" {
		meta = append(meta, lipgloss.NewStyle().Foreground(t.Secondary).Render("  "+row.AssigneeLabel))
	}
	line2 := "      " + strings.Join(meta, "")

	lines := []string{line1, line2}
	if row.Notes != "" {
		lines = append(lines, "      "+styles.Subtitle.Render(truncate(row.Notes, v.width-8)))
	}
	return strings.Join(lines, "\n")
}
