package views

import (
	"github.com/dori/trackboard/internal/model"
)

// OpenProjectRequest asks the root model to show a project's tasks.
// (Defined here to avoid circular import with ui package)
type OpenProjectRequest struct {
	ProjectID string
}

// BackRequest asks the root model to return to the previous list view.
// Err is shown there when set.
type BackRequest struct {
	Err error
}

type projectLoadedMsg struct {
	project model.Project
	found   bool
}

type projectsLoadedMsg struct {
	projects []model.Project
	err      error
}

// projectsChangedMsg follows every mutation; views reload on it
type projectsChangedMsg struct {
	status string
	err    error
}
