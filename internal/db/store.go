package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/dori/trackboard/internal/model"
	"github.com/rs/zerolog"
)

// ProjectsKey is the key the project collection is stored under
const ProjectsKey = "projects"

// Store loads and saves the whole project collection as one JSON value
type Store struct {
	db  *DB
	log zerolog.Logger
}

// NewStore creates a store on top of an open database
func NewStore(database *DB, logger zerolog.Logger) *Store {
	return &Store{
		db:  database,
		log: logger.With().Str("component", "store").Logger(),
	}
}

// Load returns the stored projects. Missing or malformed data yields an
// empty collection; only database failures are returned as errors.
func (s *Store) Load() ([]model.Project, error) {
	raw, ok, err := s.db.Get(ProjectsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}
	if !ok {
		return []model.Project{}, nil
	}

	projects, report, err := model.DecodeProjects([]byte(raw))
	if errors.Is(err, model.ErrMalformed) {
		s.log.Warn().Err(err).Int("bytes", len(raw)).Msg("stored projects are malformed, starting empty")
		return []model.Project{}, nil
	}
	if err != nil {
		return nil, err
	}

	if !report.Clean() {
		s.log.Warn().
			Int("projects", report.Projects).
			Int("dropped_projects", report.DroppedProjects).
			Int("dropped_tasks", report.DroppedTasks).
			Int("repaired", report.Repaired).
			Msg("repaired stored projects")
	}

	return projects, nil
}

// Save replaces the stored collection
func (s *Store) Save(projects []model.Project) error {
	data, err := model.EncodeProjects(projects)
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}

	if err := s.db.Put(ProjectsKey, string(data)); err != nil {
		s.log.Error().Err(err).Msg("failed to save projects")
		return fmt.Errorf("failed to save projects: %w", err)
	}

	s.log.Debug().Int("projects", len(projects)).Int("bytes", len(data)).Msg("saved projects")
	return nil
}

// LastSaved returns when the collection was last written
func (s *Store) LastSaved() (time.Time, bool, error) {
	return s.db.UpdatedAt(ProjectsKey)
}
