package repo

import (
	"fmt"
	"slices"

	"github.com/dori/trackboard/internal/model"
)

// Tasks are addressed by their position in the owning project's list. The
// position is only meaningful against the snapshot it came from; views carry
// the real index even when filtering hides rows.

// AddTask validates draft and appends it to the project's tasks
func (r *Repository) AddTask(projectID string, draft model.TaskDraft) (model.Task, error) {
	draft, err := draft.Validate()
	if err != nil {
		return model.Task{}, err
	}

	task := draft.Task(model.NewID())
	err = r.mutateProject(projectID, func(p *model.Project) error {
		p.Tasks = append(p.Tasks, task)
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}

	r.log.Debug().Str("project", projectID).Str("task", task.ID).Msg("task added")
	return task, nil
}

// UpdateTask replaces the task at index with the draft, keeping its id
func (r *Repository) UpdateTask(projectID string, index int, draft model.TaskDraft) (model.Task, error) {
	draft, err := draft.Validate()
	if err != nil {
		return model.Task{}, err
	}

	var updated model.Task
	err = r.mutateProject(projectID, func(p *model.Project) error {
		if index < 0 || index >= len(p.Tasks) {
			return fmt.Errorf("task %d in project %s %w", index, projectID, ErrNotFound)
		}
		updated = draft.Task(p.Tasks[index].ID)
		p.Tasks[index] = updated
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

// ToggleTaskDone flips the done flag of the task at index
func (r *Repository) ToggleTaskDone(projectID string, index int) (model.Task, error) {
	var toggled model.Task
	err := r.mutateProject(projectID, func(p *model.Project) error {
		if index < 0 || index >= len(p.Tasks) {
			return fmt.Errorf("task %d in project %s %w", index, projectID, ErrNotFound)
		}
		p.Tasks[index].Done = !p.Tasks[index].Done
		toggled = p.Tasks[index]
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return toggled, nil
}

// RequestDeleteTask returns a pending deletion of the task at index. The task
// is resolved again by id on Confirm, so edits made in between do not shift
// the target.
func (r *Repository) RequestDeleteTask(projectID string, index int) (*PendingAction, error) {
	p, ok := r.FindByID(projectID)
	if !ok {
		return nil, fmt.Errorf("project %s %w", projectID, ErrNotFound)
	}
	if index < 0 || index >= len(p.Tasks) {
		return nil, fmt.Errorf("task %d in project %s %w", index, projectID, ErrNotFound)
	}

	taskID := p.Tasks[index].ID
	prompt := fmt.Sprintf("Delete task %q?", p.Tasks[index].Title)
	return newPendingAction(prompt, func() error {
		return r.deleteTask(projectID, taskID)
	}), nil
}

// TaskIndex returns the position of the task with the given id
func (r *Repository) TaskIndex(projectID, taskID string) (int, bool) {
	p, ok := r.FindByID(projectID)
	if !ok {
		return -1, false
	}
	for i, t := range p.Tasks {
		if t.ID == taskID {
			return i, true
		}
	}
	return -1, false
}

func (r *Repository) deleteTask(projectID, taskID string) error {
	err := r.mutateProject(projectID, func(p *model.Project) error {
		for i, t := range p.Tasks {
			if t.ID == taskID {
				p.Tasks = append(p.Tasks[:i:i], p.Tasks[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("task %s %w", taskID, ErrNotFound)
	})
	if err == nil {
		r.log.Debug().Str("project", projectID).Str("task", taskID).Msg("task deleted")
	}
	return err
}

// mutateProject applies fn to a copy of the project, recomputes progress from
// the tasks, stores the result and saves.
func (r *Repository) mutateProject(projectID string, fn func(p *model.Project) error) error {
	changes, err := r.mutate(projectID, fn)
	r.notify(changes)
	return err
}

func (r *Repository) mutate(projectID string, fn func(p *model.Project) error) ([]statusChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(projectID)
	if i < 0 {
		return nil, fmt.Errorf("project %s %w", projectID, ErrNotFound)
	}

	p := r.projects[i].Clone()
	if p.Tasks == nil {
		p.Tasks = []model.Task{}
	}
	if err := fn(&p); err != nil {
		return nil, err
	}

	prev := slices.Clone(r.projects)
	changes := r.setLocked(i, model.RecomputeProgress(p))
	if err := r.commitLocked(prev); err != nil {
		return nil, err
	}
	return changes, nil
}
