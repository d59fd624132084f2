package ui

import "strings"

// View represents the current active view
type View int

const (
	ViewDashboard View = iota
	ViewProjects
	ViewTasks
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewProjects:
		return "Projects"
	case ViewTasks:
		return "Tasks"
	default:
		return "Unknown"
	}
}

// ParseView maps a config or flag value to a view
func ParseView(name string) (View, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dashboard":
		return ViewDashboard, true
	case "projects":
		return ViewProjects, true
	case "tasks":
		return ViewTasks, true
	default:
		return ViewDashboard, false
	}
}
