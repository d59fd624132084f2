package ui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/trackboard/internal/app"
	"github.com/dori/trackboard/internal/config"
	"github.com/dori/trackboard/internal/model"
	"github.com/dori/trackboard/internal/ui/theme"
	"github.com/dori/trackboard/internal/ui/views"
	"github.com/rs/zerolog"
)

func setupApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Notifications = false

	a, err := app.New(cfg, app.ReadOnly(), app.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func update(t *testing.T, m RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(RootModel), cmd
}

func TestParseView(t *testing.T) {
	tests := []struct {
		in   string
		want View
		ok   bool
	}{
		{"", ViewDashboard, true},
		{"dashboard", ViewDashboard, true},
		{" Projects ", ViewProjects, true},
		{"tasks", ViewTasks, true},
		{"kanban", ViewDashboard, false},
	}

	for _, tt := range tests {
		got, ok := ParseView(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseView(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewRootModel_TasksWithoutProjectFallsBack(t *testing.T) {
	m := NewRootModel(setupApp(t), ViewTasks, "")
	if m.currentView != ViewDashboard {
		t.Errorf("currentView = %v, want Dashboard", m.currentView)
	}
}

func TestRootModel_OpenAndBack(t *testing.T) {
	a := setupApp(t)
	p, err := a.Repo.CreateProject(model.ProjectDraft{Name: "Launch"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	m := NewRootModel(a, ViewProjects, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, cmd := update(t, m, views.OpenProjectRequest{ProjectID: p.ID})
	if m.currentView != ViewTasks || m.tasksView.ProjectID() != p.ID {
		t.Fatalf("after open: view %v project %q", m.currentView, m.tasksView.ProjectID())
	}
	if cmd == nil {
		t.Error("opening a project did not load it")
	}

	m, _ = update(t, m, views.BackRequest{Err: errors.New("boom")})
	if m.currentView != ViewProjects {
		t.Errorf("back went to %v, want Projects", m.currentView)
	}
	if m.errorMsg != "boom" {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
}

func TestRootModel_TasksKeyNeedsProject(t *testing.T) {
	m := NewRootModel(setupApp(t), ViewDashboard, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	if m.currentView != ViewDashboard || m.statusMsg == "" {
		t.Errorf("view %v status %q, want dashboard with a hint", m.currentView, m.statusMsg)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	if m.currentView != ViewProjects {
		t.Errorf("view = %v, want Projects", m.currentView)
	}
}

func TestRootModel_CycleTheme(t *testing.T) {
	theme.SetTheme(theme.Nord)
	t.Cleanup(func() { theme.SetTheme(theme.Nord) })

	m := NewRootModel(setupApp(t), ViewDashboard, "")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	if theme.Current.Theme.Name != theme.Dracula.Name {
		t.Errorf("theme = %s, want dracula", theme.Current.Theme.Name)
	}
	if m.statusMsg != "Theme: dracula" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}
