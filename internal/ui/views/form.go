package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/trackboard/internal/model"
	"github.com/dori/trackboard/internal/quickadd"
	"github.com/dori/trackboard/internal/ui/theme"
)

type formResult int

const (
	formEditing formResult = iota
	formSubmitted
	formCancelled
)

type fieldSpec struct {
	key         string
	label       string
	placeholder string
	value       string
}

type formField struct {
	key   string
	label string
	input textinput.Model
}

// form is a vertical stack of labelled text inputs
type form struct {
	title  string
	fields []formField
	focus  int
	err    string
}

func newForm(title string, specs ...fieldSpec) form {
	f := form{title: title}
	for _, s := range specs {
		ti := textinput.New()
		ti.Placeholder = s.placeholder
		ti.CharLimit = 256
		ti.SetValue(s.value)
		f.fields = append(f.fields, formField{key: s.key, label: s.label, input: ti})
	}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f form) value(key string) string {
	for _, field := range f.fields {
		if field.key == key {
			return strings.TrimSpace(field.input.Value())
		}
	}
	return ""
}

func (f form) setWidth(width int) form {
	for i := range f.fields {
		f.fields[i].input.Width = width - 20
	}
	return f
}

func (f form) withError(msg string) form {
	f.err = msg
	return f
}

func (f *form) move(delta int) {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f form) update(msg tea.Msg) (form, formResult, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, formCancelled, nil
		case "enter":
			f.err = ""
			return f, formSubmitted, nil
		case "tab", "down":
			f.move(1)
			return f, formEditing, textinput.Blink
		case "shift+tab", "up":
			f.move(-1)
			return f, formEditing, textinput.Blink
		}
	}

	if len(f.fields) == 0 {
		return f, formEditing, nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, formEditing, cmd
}

func (f form) view() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(t.Subtle).Width(14)
	focusLabel := labelStyle.Foreground(t.Primary).Bold(true)

	var lines []string
	lines = append(lines, titleStyle.Render(f.title), "")
	for i, field := range f.fields {
		ls := labelStyle
		if i == f.focus {
			ls = focusLabel
		}
		lines = append(lines, ls.Render(field.label)+field.input.View())
	}
	if f.err != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(t.Error).Render(f.err))
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(t.Subtle).Render(
		"tab: next field • enter: save • esc: cancel",
	))

	return styles.Panel.Render(strings.Join(lines, "\n"))
}

func newProjectForm(title string, d model.ProjectDraft) form {
	status := string(d.Status)
	if status == "" {
		status = string(model.StatusOngoing)
	}
	return newForm(title,
		fieldSpec{key: "name", label: "Name", placeholder: "Project name", value: d.Name},
		fieldSpec{key: "description", label: "Description", value: d.Description},
		fieldSpec{key: "start", label: "Start", placeholder: "YYYY-MM-DD or today", value: d.StartDate},
		fieldSpec{key: "end", label: "End", placeholder: "YYYY-MM-DD or friday", value: d.EndDate},
		fieldSpec{key: "status", label: "Status", placeholder: "ongoing, completed, upcoming", value: status},
		fieldSpec{key: "progress", label: "Progress %", placeholder: "0", value: strconv.Itoa(d.Progress)},
	)
}

// projectDraft reads the project form. Natural dates are resolved here;
// everything else is left to draft validation.
func projectDraft(f form, now time.Time) (model.ProjectDraft, error) {
	d := model.ProjectDraft{
		Name:        f.value("name"),
		Description: f.value("description"),
		StartDate:   resolveDate(f.value("start"), now),
		EndDate:     resolveDate(f.value("end"), now),
		Status:      model.Status(strings.ToLower(f.value("status"))),
	}

	if raw := strings.TrimSuffix(f.value("progress"), "%"); raw != "" {
		progress, err := strconv.Atoi(raw)
		if err != nil {
			return d, fmt.Errorf("%w: progress must be a number", model.ErrValidation)
		}
		d.Progress = progress
	}
	return d, nil
}

func newTaskForm(title string, d model.TaskDraft) form {
	priority := string(d.Priority.OrDefault())
	return newForm(title,
		fieldSpec{key: "title", label: "Title", placeholder: "What needs doing?", value: d.Title},
		fieldSpec{key: "notes", label: "Notes", value: d.Notes},
		fieldSpec{key: "priority", label: "Priority", placeholder: "low, medium, high", value: priority},
		fieldSpec{key: "due", label: "Due", placeholder: "YYYY-MM-DD or tomorrow", value: d.DueDate},
		fieldSpec{key: "assignee", label: "Assignee", value: d.Assignee},
		fieldSpec{key: "email", label: "Email", value: d.AssigneeEmail},
	)
}

// taskDraft reads the task form, keeping done from the task being edited
func taskDraft(f form, done bool, now time.Time) (model.TaskDraft, error) {
	d := model.TaskDraft{
		Title:         f.value("title"),
		Notes:         f.value("notes"),
		Done:          done,
		DueDate:       resolveDate(f.value("due"), now),
		Assignee:      f.value("assignee"),
		AssigneeEmail: f.value("email"),
	}

	if raw := f.value("priority"); raw != "" {
		p, ok := quickadd.ParsePriority(raw)
		if !ok {
			return d, fmt.Errorf("%w: priority must be one of: low medium high", model.ErrValidation)
		}
		d.Priority = p
	}
	return d, nil
}

// resolveDate turns natural dates into YYYY-MM-DD and passes anything else
// through for validation to reject.
func resolveDate(s string, now time.Time) string {
	if date, ok := quickadd.ParseDate(s, now); ok {
		return date
	}
	return s
}

// userError strips the validation sentinel prefix for display
func userError(err error) string {
	if errors.Is(err, model.ErrValidation) {
		msg := err.Error()
		if i := strings.Index(msg, ": "); i >= 0 {
			return msg[i+2:]
		}
	}
	return err.Error()
}
