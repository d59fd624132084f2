package view

import (
	"github.com/dori/trackboard/internal/model"
)

const (
	EmptyOngoing   = "No ongoing projects found."
	EmptyCompleted = "No completed projects yet."
)

// ProjectsPageStats summarizes the projects page header
type ProjectsPageStats struct {
	Ongoing     int
	Completed   int
	AvgProgress int
}

// ProjectsPageModel splits the searched collection into ongoing and completed
// sections. Upcoming projects appear in neither.
type ProjectsPageModel struct {
	Search         string
	Ongoing        []ProjectCard
	Completed      []ProjectCard
	EmptyOngoing   string
	EmptyCompleted string
	Stats          ProjectsPageStats
}

// ProjectsPage builds the projects page. Stats cover the whole collection;
// search only narrows the sections.
func ProjectsPage(projects []model.Project, search string) ProjectsPageModel {
	normalized := normalizeAll(projects)
	all := Stats(normalized)

	m := ProjectsPageModel{
		Search:    search,
		Ongoing:   []ProjectCard{},
		Completed: []ProjectCard{},
		Stats: ProjectsPageStats{
			Ongoing:     all.Ongoing,
			Completed:   all.Completed,
			AvgProgress: all.AvgProgress,
		},
	}

	for _, p := range normalized {
		if !p.Matches(search) {
			continue
		}
		switch p.Status {
		case model.StatusOngoing:
			m.Ongoing = append(m.Ongoing, NewProjectCard(p))
		case model.StatusCompleted:
			m.Completed = append(m.Completed, NewProjectCard(p))
		}
	}

	if len(m.Ongoing) == 0 {
		m.EmptyOngoing = EmptyOngoing
	}
	if len(m.Completed) == 0 {
		m.EmptyCompleted = EmptyCompleted
	}
	return m
}
