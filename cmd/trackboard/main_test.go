package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dori/trackboard/internal/repo"
)

// setupCLI isolates the commands from the user's config and returns a data dir
func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TRACKBOARD_NOTIFICATIONS", "false")
	return t.TempDir()
}

func runCLI(t *testing.T, dataDir, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--data-dir", dataDir))

	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dataDir, "", args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

func TestVersion(t *testing.T) {
	out := mustRun(t, setupCLI(t), "version")
	if !strings.Contains(out, "trackboard v"+version) {
		t.Errorf("version output = %q", out)
	}
}

func TestProjectLifecycle(t *testing.T) {
	dir := setupCLI(t)

	out := mustRun(t, dir, "project", "add", "Launch", "--desc", "ship the thing", "--progress", "30")
	if !strings.Contains(out, "Created: Launch") || !strings.Contains(out, "Ongoing (30%)") {
		t.Errorf("add output = %q", out)
	}

	mustRun(t, dir, "project", "add", "Backlog", "--status", "upcoming")

	out = mustRun(t, dir, "project", "list")
	if !strings.Contains(out, "Launch") || !strings.Contains(out, "Backlog") {
		t.Errorf("list output = %q", out)
	}

	out = mustRun(t, dir, "project", "list", "--status", "upcoming")
	if strings.Contains(out, "Launch") || !strings.Contains(out, "Backlog") {
		t.Errorf("filtered list output = %q", out)
	}

	out = mustRun(t, dir, "project", "list", "--search", "THING")
	if !strings.Contains(out, "Launch") || strings.Contains(out, "Backlog") {
		t.Errorf("search list output = %q", out)
	}

	out = mustRun(t, dir, "project", "edit", "launch", "--progress", "100")
	if !strings.Contains(out, "Completed, 100%") {
		t.Errorf("edit output = %q", out)
	}

	out = mustRun(t, dir, "stats")
	for _, want := range []string{"Projects:     2", "Completed:  1", "Upcoming:   1", "Avg progress: 50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}

	out, err := runCLI(t, dir, "n\n", "project", "rm", "Launch")
	if err != nil || !strings.Contains(out, "Cancelled") {
		t.Errorf("declined rm = %q, %v", out, err)
	}

	mustRun(t, dir, "project", "rm", "Launch", "--yes")
	out = mustRun(t, dir, "project", "list")
	if strings.Contains(out, "Launch") {
		t.Errorf("Launch still listed after rm: %q", out)
	}
}

func TestProjectAdd_Validation(t *testing.T) {
	dir := setupCLI(t)

	if _, err := runCLI(t, dir, "", "project", "add", "   "); !errors.Is(err, repo.ErrValidation) {
		t.Errorf("blank name error = %v, want ErrValidation", err)
	}
	if _, err := runCLI(t, dir, "", "project", "add", "X", "--start", "someday"); !errors.Is(err, repo.ErrValidation) {
		t.Errorf("bad date error = %v, want ErrValidation", err)
	}
	if _, err := runCLI(t, dir, "", "project", "edit", "missing", "--progress", "5"); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("edit missing error = %v, want ErrNotFound", err)
	}
}

func TestTaskLifecycle(t *testing.T) {
	dir := setupCLI(t)
	mustRun(t, dir, "project", "add", "Launch")

	out := mustRun(t, dir, "task", "add", "Launch", "Write", "notes", "!high", "@Jane_Doe", "email:jane@example.com")
	if !strings.Contains(out, "Created: Write notes") || !strings.Contains(out, "Priority: high") {
		t.Errorf("task add output = %q", out)
	}
	if !strings.Contains(out, "Jane Doe · jane@example.com") {
		t.Errorf("assignee missing from %q", out)
	}
	mustRun(t, dir, "task", "add", "Launch", "Test", "--notes", "smoke only")

	out = mustRun(t, dir, "task", "list", "Launch")
	if !strings.Contains(out, "  1. [ ] Write notes") || !strings.Contains(out, "  2. [ ] Test") {
		t.Errorf("task list = %q", out)
	}

	out = mustRun(t, dir, "task", "done", "Launch", "1")
	if !strings.Contains(out, "Done: Write notes") || !strings.Contains(out, "Launch: 50% (Ongoing)") {
		t.Errorf("task done output = %q", out)
	}

	out = mustRun(t, dir, "task", "list", "Launch", "--status", "open")
	if strings.Contains(out, "Write notes") || !strings.Contains(out, "Test") {
		t.Errorf("open filter = %q", out)
	}

	t.Setenv("TRACKBOARD_USER_EMAIL", "JANE@example.com")
	out = mustRun(t, dir, "task", "list", "Launch", "--mine")
	if !strings.Contains(out, "Write notes") || strings.Contains(out, "Test") {
		t.Errorf("mine filter = %q", out)
	}

	out = mustRun(t, dir, "task", "edit", "Launch", "2", "--title", "Test everything", "--done")
	if !strings.Contains(out, "Saved: Test everything") || !strings.Contains(out, "Launch: 100% (Completed)") {
		t.Errorf("task edit output = %q", out)
	}

	mustRun(t, dir, "task", "rm", "Launch", "1", "--yes")
	mustRun(t, dir, "task", "rm", "Launch", "1", "--yes")
	out = mustRun(t, dir, "task", "list", "Launch")
	if !strings.Contains(out, "No tasks yet.") || !strings.Contains(out, "Launch (Ongoing)") {
		t.Errorf("list after removing every task = %q", out)
	}
}

func TestTaskCommands_BadIndex(t *testing.T) {
	dir := setupCLI(t)
	mustRun(t, dir, "project", "add", "Launch")
	mustRun(t, dir, "task", "add", "Launch", "Only")

	if _, err := runCLI(t, dir, "", "task", "done", "Launch", "0"); err == nil {
		t.Error("index 0 accepted")
	}
	if _, err := runCLI(t, dir, "", "task", "done", "Launch", "2"); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("index past end error = %v, want ErrNotFound", err)
	}
	if _, err := runCLI(t, dir, "", "task", "edit", "Launch", "5", "--title", "x"); err == nil {
		t.Error("edit past end accepted")
	}
}

func TestExportImport(t *testing.T) {
	src := setupCLI(t)
	mustRun(t, src, "project", "add", "Launch")
	mustRun(t, src, "task", "add", "Launch", "Plan", "--done")
	mustRun(t, src, "task", "add", "Launch", "Build")

	file := filepath.Join(t.TempDir(), "backup.json")
	out := mustRun(t, src, "export", file)
	if !strings.Contains(out, "Exported 1 projects") {
		t.Errorf("export output = %q", out)
	}

	xlsx := filepath.Join(t.TempDir(), "backup.xlsx")
	mustRun(t, src, "export", xlsx)

	if _, err := runCLI(t, src, "", "export", filepath.Join(t.TempDir(), "backup.csv")); err == nil {
		t.Error("csv export accepted")
	}

	dst := t.TempDir()
	mustRun(t, dst, "project", "add", "Old")

	out, err := runCLI(t, dst, "n\n", "import", file)
	if err != nil || !strings.Contains(out, "Cancelled") {
		t.Errorf("declined import = %q, %v", out, err)
	}

	out, err = runCLI(t, dst, "y\n", "import", file)
	if err != nil || !strings.Contains(out, "Imported 1 projects") {
		t.Fatalf("import = %q, %v", out, err)
	}

	out = mustRun(t, dst, "task", "list", "Launch")
	if !strings.Contains(out, "50% complete, 1 of 2 tasks done") {
		t.Errorf("imported tasks = %q", out)
	}
	out = mustRun(t, dst, "project", "list")
	if strings.Contains(out, "Old") {
		t.Errorf("import did not replace the collection: %q", out)
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"12", 11, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"two", 0, true},
	}

	for _, tt := range tests {
		got, err := parseIndex(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseIndex(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestRootCmd_RejectsUnknownViewAndTheme(t *testing.T) {
	dir := setupCLI(t)

	if _, err := runCLI(t, dir, "", "--view", "kanban"); err == nil || !strings.Contains(err.Error(), "unknown view") {
		t.Errorf("unknown view error = %v", err)
	}
	if _, err := runCLI(t, dir, "", "--theme", "solarized"); err == nil || !strings.Contains(err.Error(), "unknown theme") {
		t.Errorf("unknown theme error = %v", err)
	}
}

func TestInitConfig(t *testing.T) {
	dir := setupCLI(t)
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	out := mustRun(t, dir, "init-config", path)
	if !strings.Contains(out, "Wrote "+path) {
		t.Errorf("init-config output = %q", out)
	}

	if _, err := runCLI(t, dir, "", "init-config", path); err == nil {
		t.Error("expected init-config to refuse an existing file")
	}
}
