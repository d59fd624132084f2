// Package app wires configuration, logging, storage and the repository into
// one handle shared by the TUI and the CLI commands.
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dori/trackboard/internal/config"
	"github.com/dori/trackboard/internal/db"
	"github.com/dori/trackboard/internal/logging"
	"github.com/dori/trackboard/internal/notify"
	"github.com/dori/trackboard/internal/repo"
	"github.com/dori/trackboard/internal/view"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
)

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	DB       *db.DB
	Store    *db.Store
	Repo     *repo.Repository
	Notifier *notify.Notifier
	Log      zerolog.Logger

	logCloser io.Closer
	lockFile  *flock.Flock
}

type options struct {
	skipLock bool
	logger   *zerolog.Logger
}

// Option adjusts how New sets the app up
type Option func(*options)

// ReadOnly skips the single-instance lock. Use it for commands that only read.
func ReadOnly() Option {
	return func(o *options) { o.skipLock = true }
}

// WithLogger replaces the file logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = &logger }
}

// New creates a new application instance
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		Notifier: notify.NewNotifier(),
	}
	app.Notifier.SetEnabled(cfg.Notifications)

	if o.logger != nil {
		app.Log = *o.logger
	} else {
		logger, closer, err := logging.New(cfg.LogPath(), cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		app.Log = logger
		app.logCloser = closer
	}

	if !o.skipLock {
		if err := app.acquireLock(); err != nil {
			app.closeLog()
			return nil, err
		}
	}

	database, err := db.Open(cfg.DatabasePath(), app.Log)
	if err != nil {
		app.releaseLock()
		app.closeLog()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database
	app.Store = db.NewStore(database, app.Log)

	repository, err := repo.Open(app.Store, app.Log)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	repository.OnStatusChange(app.Notifier.StatusChanged)
	app.Repo = repository

	app.Log.Info().
		Str("db", app.DB.Path()).
		Int("projects", repository.Len()).
		Bool("read_only", o.skipLock).
		Msg("trackboard started")

	return app, nil
}

// NotifyOverdue sends one notification summarizing overdue tasks
func (a *App) NotifyOverdue() {
	count := view.CountOverdue(a.Repo.All(nil), time.Now())
	if count == 0 {
		return
	}
	if err := a.Notifier.SendOverdueSummary(count); err != nil {
		a.Log.Debug().Err(err).Msg("overdue notification failed")
	}
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	a.lockFile = flock.New(a.Config.LockPath())

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of trackboard is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

func (a *App) closeLog() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()
	a.Log.Debug().Msg("trackboard stopped")
	a.closeLog()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
