// Package repo holds the one in-memory copy of the project collection.
//
// Every mutation normalizes the touched project and saves the whole
// collection before returning. A mutation whose save fails is rolled back,
// so the store and the repository never drift.
package repo

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dori/trackboard/internal/model"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation is returned for drafts missing required fields
	ErrValidation = model.ErrValidation
)

// Store persists the full collection
type Store interface {
	Load() ([]model.Project, error)
	Save(projects []model.Project) error
}

// StatusChangeFunc is called after a project's status changed and was saved
type StatusChangeFunc func(p model.Project, from, to model.Status)

// Repository is the authoritative project collection for a running process
type Repository struct {
	mu       sync.Mutex
	store    Store
	log      zerolog.Logger
	projects []model.Project

	onStatusChange StatusChangeFunc
}

type statusChange struct {
	project  model.Project
	from, to model.Status
}

// Open loads the collection from store
func Open(store Store, logger zerolog.Logger) (*Repository, error) {
	projects, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	if projects == nil {
		projects = []model.Project{}
	}

	r := &Repository{
		store:    store,
		log:      logger.With().Str("component", "repo").Logger(),
		projects: projects,
	}
	r.log.Debug().Int("projects", len(projects)).Msg("loaded projects")
	return r, nil
}

// OnStatusChange registers fn to be called when a project's status changes
func (r *Repository) OnStatusChange(fn StatusChangeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onStatusChange = fn
}

// Len returns the number of projects
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.projects)
}

// FindByID returns a copy of the project with the given id
func (r *Repository) FindByID(id string) (model.Project, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Project{}, false
	}
	return r.projects[i].Clone(), true
}

// All returns copies of the projects accepted by pred, in stored order.
// A nil pred accepts everything.
func (r *Repository) All(pred func(model.Project) bool) []model.Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		if pred == nil || pred(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Insert appends p. The id must not be in use.
func (r *Repository) Insert(p model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		return fmt.Errorf("%w: project id is empty", ErrValidation)
	}
	if r.indexOf(p.ID) >= 0 {
		return fmt.Errorf("project %s %w", p.ID, ErrAlreadyExists)
	}

	prev := slices.Clone(r.projects)
	r.projects = append(r.projects, p.Clone())
	if err := r.commitLocked(prev); err != nil {
		return err
	}
	r.log.Info().Str("project", p.ID).Str("name", p.Name).Msg("project added")
	return nil
}

// Replace substitutes the project with the given id, keeping its position
func (r *Repository) Replace(id string, p model.Project) error {
	changes, err := r.replace(id, p)
	r.notify(changes)
	return err
}

func (r *Repository) replace(id string, p model.Project) ([]statusChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("project %s %w", id, ErrNotFound)
	}

	p.ID = id
	prev := slices.Clone(r.projects)
	changes := r.setLocked(i, p)
	if err := r.commitLocked(prev); err != nil {
		return nil, err
	}
	return changes, nil
}

// Remove deletes the project and every task it owns. Removing an unknown id
// does nothing.
func (r *Repository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil
	}

	prev := slices.Clone(r.projects)
	removed := r.projects[i]
	r.projects = append(r.projects[:i:i], r.projects[i+1:]...)
	if err := r.commitLocked(prev); err != nil {
		return err
	}
	r.log.Info().Str("project", id).Int("tasks", len(removed.Tasks)).Msg("project removed")
	return nil
}

// ReplaceAll swaps the whole collection, as an import does
func (r *Repository) ReplaceAll(projects []model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(projects))
	next := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID == "" || seen[p.ID] {
			return fmt.Errorf("%w: duplicate or empty project id %q", ErrValidation, p.ID)
		}
		seen[p.ID] = true
		next = append(next, model.Normalize(p.Clone()))
	}

	prev := r.projects
	r.projects = next
	if err := r.commitLocked(prev); err != nil {
		return err
	}
	r.log.Info().Int("projects", len(next)).Msg("collection replaced")
	return nil
}

// Sync normalizes every project, saves if anything changed and returns the
// normalized collection. Call it before showing aggregate stats.
func (r *Repository) Sync() ([]model.Project, error) {
	snapshot, changes, err := r.sync()
	r.notify(changes)
	return snapshot, err
}

func (r *Repository) sync() ([]model.Project, []statusChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var changes []statusChange
	dirty := false
	prev := slices.Clone(r.projects)
	for i, p := range r.projects {
		n := model.Normalize(p)
		if n.Status == p.Status && n.Progress == p.Progress {
			continue
		}
		dirty = true
		changes = append(changes, r.setLocked(i, n)...)
	}

	var err error
	if dirty {
		if err = r.commitLocked(prev); err != nil {
			changes = nil
		}
	}

	snapshot := make([]model.Project, len(r.projects))
	for i, p := range r.projects {
		snapshot[i] = p.Clone()
	}
	return snapshot, changes, err
}

// CreateProject validates the dashboard form and inserts a new project with
// an empty task list.
func (r *Repository) CreateProject(draft model.ProjectDraft) (model.Project, error) {
	draft, err := draft.Validate()
	if err != nil {
		return model.Project{}, err
	}

	p := draft.Apply(model.Project{ID: model.NewID(), Tasks: []model.Task{}})
	p = model.Normalize(p)
	if err := r.Insert(p); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// UpdateProject applies the dashboard edit form. The id and task list are kept.
func (r *Repository) UpdateProject(id string, draft model.ProjectDraft) (model.Project, error) {
	draft, err := draft.Validate()
	if err != nil {
		return model.Project{}, err
	}

	current, ok := r.FindByID(id)
	if !ok {
		return model.Project{}, fmt.Errorf("project %s %w", id, ErrNotFound)
	}

	p := model.Normalize(draft.Apply(current))
	if err := r.Replace(id, p); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// RequestDeleteProject returns a pending deletion for the caller to confirm
func (r *Repository) RequestDeleteProject(id string) (*PendingAction, error) {
	p, ok := r.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("project %s %w", id, ErrNotFound)
	}

	prompt := fmt.Sprintf("Delete project %q and all its tasks?", p.Name)
	return newPendingAction(prompt, func() error {
		return r.Remove(id)
	}), nil
}

func (r *Repository) indexOf(id string) int {
	for i := range r.projects {
		if r.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// setLocked stores p at i and reports a status transition, if any
func (r *Repository) setLocked(i int, p model.Project) []statusChange {
	old := r.projects[i].Status
	r.projects[i] = p.Clone()
	if old == p.Status {
		return nil
	}
	r.log.Info().
		Str("project", p.ID).
		Str("from", string(old)).
		Str("to", string(p.Status)).
		Int("progress", p.Progress).
		Msg("project status changed")
	return []statusChange{{project: p.Clone(), from: old, to: p.Status}}
}

// commitLocked saves the collection. On failure it restores prev, the
// collection as it was before the mutation.
func (r *Repository) commitLocked(prev []model.Project) error {
	if err := r.store.Save(r.projects); err != nil {
		r.projects = prev
		r.log.Warn().Err(err).Msg("save failed, mutation rolled back")
		return fmt.Errorf("failed to persist projects: %w", err)
	}
	return nil
}

// notify runs outside the lock so callbacks may read the repository
func (r *Repository) notify(changes []statusChange) {
	if len(changes) == 0 {
		return
	}
	r.mu.Lock()
	fn := r.onStatusChange
	r.mu.Unlock()
	if fn == nil {
		return
	}
	for _, c := range changes {
		fn(c.project, c.from, c.to)
	}
}
