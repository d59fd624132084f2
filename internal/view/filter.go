package view

import (
	"strings"

	"github.com/dori/trackboard/internal/model"
)

// TaskStatusFilter selects tasks by completion
type TaskStatusFilter string

const (
	TaskStatusAll  TaskStatusFilter = "all"
	TaskStatusOpen TaskStatusFilter = "open"
	TaskStatusDone TaskStatusFilter = "done"
)

// AssigneeFilter selects tasks by who they are assigned to
type AssigneeFilter string

const (
	AssigneeAll AssigneeFilter = "all"
	AssigneeMe  AssigneeFilter = "me"
)

// TaskFilter is the task view's filter bar state. The zero value shows
// every task.
type TaskFilter struct {
	Status           TaskStatusFilter
	Assignee         AssigneeFilter
	Search           string
	CurrentUserEmail string
}

// DefaultTaskFilter returns the filter a fresh task view starts with
func DefaultTaskFilter(currentUserEmail string) TaskFilter {
	return TaskFilter{
		Status:           TaskStatusAll,
		Assignee:         AssigneeAll,
		CurrentUserEmail: currentUserEmail,
	}
}

// Match reports whether t passes every part of the filter
func (f TaskFilter) Match(t model.Task) bool {
	return f.matchStatus(t) && f.matchSearch(t) && f.matchAssignee(t)
}

// Active reports whether the filter hides anything
func (f TaskFilter) Active() bool {
	return (f.Status != "" && f.Status != TaskStatusAll) ||
		f.Assignee == AssigneeMe ||
		strings.TrimSpace(f.Search) != ""
}

// NextStatus cycles all, open, done
func (f TaskFilter) NextStatus() TaskFilter {
	switch f.Status {
	case TaskStatusOpen:
		f.Status = TaskStatusDone
	case TaskStatusDone:
		f.Status = TaskStatusAll
	default:
		f.Status = TaskStatusOpen
	}
	return f
}

// ToggleMine switches between all tasks and tasks assigned to the current user
func (f TaskFilter) ToggleMine() TaskFilter {
	if f.Assignee == AssigneeMe {
		f.Assignee = AssigneeAll
	} else {
		f.Assignee = AssigneeMe
	}
	return f
}

func (f TaskFilter) matchStatus(t model.Task) bool {
	switch f.Status {
	case TaskStatusOpen:
		return !t.Done
	case TaskStatusDone:
		return t.Done
	default:
		return true
	}
}

func (f TaskFilter) matchSearch(t model.Task) bool {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	for _, field := range []string{t.Title, t.Notes, t.Assignee, t.AssigneeEmail} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (f TaskFilter) matchAssignee(t model.Task) bool {
	if f.Assignee != AssigneeMe {
		return true
	}
	return strings.EqualFold(t.AssigneeEmail, f.CurrentUserEmail)
}

// ProjectFilter is the dashboard's status filter. An empty Status shows all.
type ProjectFilter struct {
	Status model.Status
}

// Match reports whether p has the selected status
func (f ProjectFilter) Match(p model.Project) bool {
	return f.Status == "" || p.Status == f.Status
}

// Next cycles all, ongoing, completed, upcoming
func (f ProjectFilter) Next() ProjectFilter {
	order := append([]model.Status{""}, model.Statuses()...)
	for i, s := range order {
		if s == f.Status {
			f.Status = order[(i+1)%len(order)]
			return f
		}
	}
	f.Status = ""
	return f
}

// Label names the current selection
func (f ProjectFilter) Label() string {
	if f.Status == "" {
		return "All"
	}
	return f.Status.Label()
}
