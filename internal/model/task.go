package model

import (
	"time"
)

// DateLayout is the ISO date format used for all stored dates
const DateLayout = "2006-01-02"

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is a known priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// OrDefault returns p, or medium when p is empty or unknown
func (p Priority) OrDefault() Priority {
	if p.IsValid() {
		return p
	}
	return PriorityMedium
}

// Task is a single unit of work inside a project
type Task struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Notes         string   `json:"notes"`
	Done          bool     `json:"done"`
	Priority      Priority `json:"priority"`
	DueDate       string   `json:"dueDate"`
	Assignee      string   `json:"assignee"`
	AssigneeEmail string   `json:"assigneeEmail"`
}

// Due parses the due date. ok is false when no valid date is set.
func (t *Task) Due() (due time.Time, ok bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation(DateLayout, t.DueDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// IsOverdue returns true if the task is open and its due day has passed
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Done {
		return false
	}
	due, ok := t.Due()
	if !ok {
		return false
	}
	endOfDay := due.AddDate(0, 0, 1)
	return now.After(endOfDay) || now.Equal(endOfDay)
}

// HasAssignee returns true if either assignee field is set
func (t *Task) HasAssignee() bool {
	return t.Assignee != "" || t.AssigneeEmail != ""
}
