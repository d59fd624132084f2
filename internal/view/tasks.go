package view

import (
	"strings"
	"time"

	"github.com/dori/trackboard/internal/model"
)

const (
	EmptyTasks    = "No tasks yet."
	EmptyFiltered = "No tasks match the current filters."
	NoDueDate     = "No due date"
)

// TaskStats are counted over every task, not just the visible ones
type TaskStats struct {
	Total     int
	Completed int
	Percent   int
}

// TaskRow is one visible task. Index is its position in the project's full
// task list, which is what task operations expect.
type TaskRow struct {
	Index         int
	ID            string
	Title         string
	Notes         string
	Done          bool
	Priority      model.Priority
	PriorityLabel string
	StatusLabel   string
	DueLabel      string
	Overdue       bool
	AssigneeLabel string
}

// TaskPageModel is everything the task view draws for one project
type TaskPageModel struct {
	ProjectID     string
	ProjectName   string
	ProjectStatus model.Status
	Rows          []TaskRow
	Stats         TaskStats
	Filter        TaskFilter
	Empty         string
}

// TaskPage filters the project's tasks and computes its completion stats.
// The status badge follows Normalize, as on the dashboard; the percent is
// always derived from the tasks.
func TaskPage(project model.Project, filter TaskFilter) TaskPageModel {
	p := model.Normalize(project.Clone())
	total, done, percent := model.TaskCounts(p)

	m := TaskPageModel{
		ProjectID:     p.ID,
		ProjectName:   p.Name,
		ProjectStatus: p.Status,
		Rows:          []TaskRow{},
		Stats:         TaskStats{Total: total, Completed: done, Percent: percent},
		Filter:        filter,
	}

	today := now()
	for i := range p.Tasks {
		t := &p.Tasks[i]
		if filter.Match(*t) {
			m.Rows = append(m.Rows, newTaskRow(i, t, today))
		}
	}

	switch {
	case total == 0:
		m.Empty = EmptyTasks
	case len(m.Rows) == 0:
		m.Empty = EmptyFiltered
	}
	return m
}

func newTaskRow(index int, t *model.Task, today time.Time) TaskRow {
	row := TaskRow{
		Index:         index,
		ID:            t.ID,
		Title:         t.Title,
		Notes:         t.Notes,
		Done:          t.Done,
		Priority:      t.Priority.OrDefault(),
		StatusLabel:   "OPEN",
		DueLabel:      NoDueDate,
		Overdue:       t.IsOverdue(today),
		AssigneeLabel: AssigneeLabel(*t),
	}
	row.PriorityLabel = strings.ToUpper(string(row.Priority))
	if t.Done {
		row.StatusLabel = "DONE"
	}
	if t.DueDate != "" {
		row.DueLabel = "Due: " + FormatDate(t.DueDate)
	}
	return row
}

// AssigneeLabel renders "name · email". A task with only an email reads
// "Unassigned · email"; a task with neither yields "".
func AssigneeLabel(t model.Task) string {
	if !t.HasAssignee() {
		return ""
	}
	name := t.Assignee
	if name == "" {
		name = "Unassigned"
	}
	if t.AssigneeEmail == "" {
		return name
	}
	return name + " · " + t.AssigneeEmail
}

// CountOverdue returns how many open tasks across projects are past due
func CountOverdue(projects []model.Project, at time.Time) int {
	n := 0
	for _, p := range projects {
		for i := range p.Tasks {
			if p.Tasks[i].IsOverdue(at) {
				n++
			}
		}
	}
	return n
}
