package view

import (
	"github.com/dori/trackboard/internal/model"
)

// EmptyDashboard is shown when no project passes the dashboard filter
const EmptyDashboard = "No projects found."

// ChartHook receives the dashboard stats every time they are recomputed
type ChartHook interface {
	UpdateCharts(stats DashboardStats, projects []model.Project)
}

// DashboardStats aggregates the whole collection, regardless of filter
type DashboardStats struct {
	Total       int
	Ongoing     int
	Completed   int
	Upcoming    int
	AvgProgress int
}

// ProjectCard is one project as shown in a list
type ProjectCard struct {
	ID          string
	Name        string
	Description string
	Status      model.Status
	StatusLabel string
	Progress    int
	Start       string
	End         string
	HasTimeline bool
	TaskTotal   int
	TaskDone    int
}

// DashboardModel is everything the dashboard draws
type DashboardModel struct {
	Cards  []ProjectCard
	Stats  DashboardStats
	Filter ProjectFilter
	Empty  string

	// Projects is the normalized, unfiltered collection handed to charts
	Projects []model.Project
}

// Dashboard normalizes copies of projects, filters them by status and
// computes the collection-wide stats.
func Dashboard(projects []model.Project, filter ProjectFilter) DashboardModel {
	normalized := normalizeAll(projects)

	m := DashboardModel{
		Cards:    []ProjectCard{},
		Stats:    Stats(normalized),
		Filter:   filter,
		Projects: normalized,
	}
	for _, p := range normalized {
		if filter.Match(p) {
			m.Cards = append(m.Cards, NewProjectCard(p))
		}
	}
	if len(m.Cards) == 0 {
		m.Empty = EmptyDashboard
	}
	return m
}

// Publish hands the stats to hook. A nil hook is ignored.
func (m DashboardModel) Publish(hook ChartHook) {
	if hook == nil {
		return
	}
	hook.UpdateCharts(m.Stats, m.Projects)
}

// Stats counts projects by status and averages their progress. The projects
// are expected to be normalized already.
func Stats(projects []model.Project) DashboardStats {
	s := DashboardStats{Total: len(projects)}
	sum := 0
	for _, p := range projects {
		switch p.Status {
		case model.StatusOngoing:
			s.Ongoing++
		case model.StatusCompleted:
			s.Completed++
		case model.StatusUpcoming:
			s.Upcoming++
		}
		sum += p.Progress
	}
	s.AvgProgress = average(sum, len(projects))
	return s
}

// NewProjectCard builds the display record for p
func NewProjectCard(p model.Project) ProjectCard {
	total, done, _ := model.TaskCounts(p)
	return ProjectCard{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		StatusLabel: p.Status.Label(),
		Progress:    p.Progress,
		Start:       FormatDate(p.StartDate),
		End:         FormatDate(p.EndDate),
		HasTimeline: p.StartDate != "" || p.EndDate != "",
		TaskTotal:   total,
		TaskDone:    done,
	}
}

func normalizeAll(projects []model.Project) []model.Project {
	out := make([]model.Project, len(projects))
	for i, p := range projects {
		out[i] = model.Normalize(p.Clone())
	}
	return out
}
