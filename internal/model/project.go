package model

import (
	"strings"
)

// Status represents the coarse state of a project
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	// StatusUpcoming is only ever set by hand; normalization never produces it.
	StatusUpcoming Status = "upcoming"
)

// Statuses lists every project status in display order
func Statuses() []Status {
	return []Status{StatusOngoing, StatusCompleted, StatusUpcoming}
}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusUpcoming:
		return true
	default:
		return false
	}
}

// Label returns the capitalized status name
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Project is a tracked unit of work that owns its tasks
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      Status `json:"status"`
	Progress    int    `json:"progress"`
	Tasks       []Task `json:"tasks"`
}

// Clone returns a copy of the project that shares no task storage with p
func (p Project) Clone() Project {
	c := p
	c.Tasks = make([]Task, len(p.Tasks))
	copy(c.Tasks, p.Tasks)
	return c
}

// Matches reports whether the lower-cased name or description contains query.
// An empty query matches everything.
func (p Project) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	text := strings.ToLower(p.Name + " " + p.Description)
	return strings.Contains(text, q)
}
