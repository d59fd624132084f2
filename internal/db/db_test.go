package db

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dori/trackboard/internal/model"
	"github.com/rs/zerolog"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	database, err := Open(dbPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	database, err := Open(dbPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if database.Path() != dbPath {
		t.Errorf("Path = %s, want %s", database.Path(), dbPath)
	}
	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("expected data directory to be created")
	}
}

func TestOpen_MigrationsAreRepeatable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	first, err := Open(dbPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Put("k", "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	first.Close()

	second, err := Open(dbPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	value, ok, err := second.Get("k")
	if err != nil || !ok || value != "v" {
		t.Errorf("Get after reopen = %q, %v, %v", value, ok, err)
	}
}

func TestKV(t *testing.T) {
	database := setupTestDB(t)

	if _, ok, err := database.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := database.Put("a", "1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := database.Put("a", "2"); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	value, ok, err := database.Get("a")
	if err != nil || !ok || value != "2" {
		t.Errorf("Get(a) = %q, %v, %v; want 2", value, ok, err)
	}

	if _, ok, err := database.UpdatedAt("a"); err != nil || !ok {
		t.Errorf("UpdatedAt(a) ok %v, err %v", ok, err)
	}

	if err := database.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := database.Delete("a"); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
	if _, ok, _ := database.Get("a"); ok {
		t.Error("key still present after Delete")
	}
}

func TestStore_EmptyWhenNothingSaved(t *testing.T) {
	store := NewStore(setupTestDB(t), zerolog.Nop())

	projects, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if projects == nil || len(projects) != 0 {
		t.Errorf("Load = %v, want empty collection", projects)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(setupTestDB(t), zerolog.Nop())

	projects := []model.Project{
		{
			ID: "p1", Name: "Launch", Description: "ship it", StartDate: "2024-02-01",
			Status: model.StatusOngoing, Progress: 50,
			Tasks: []model.Task{
				{ID: "t1", Title: "Plan", Done: true, Priority: model.PriorityHigh},
				{ID: "t2", Title: "Do", Priority: model.PriorityMedium, Assignee: "Bob", AssigneeEmail: "bob@example.com"},
			},
		},
		{ID: "p2", Name: "Later", Status: model.StatusUpcoming, Progress: 0, Tasks: []model.Task{}},
	}

	if err := store.Save(projects); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, projects) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, projects)
	}

	if _, ok, err := store.LastSaved(); err != nil || !ok {
		t.Errorf("LastSaved ok %v, err %v", ok, err)
	}
}

func TestStore_MalformedDegradesToEmpty(t *testing.T) {
	database := setupTestDB(t)
	store := NewStore(database, zerolog.Nop())

	if err := database.Put(ProjectsKey, "{not json"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	projects, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error for malformed data: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("Load = %v, want empty", projects)
	}
}

func TestStore_DropsBrokenEntries(t *testing.T) {
	database := setupTestDB(t)
	store := NewStore(database, zerolog.Nop())

	raw := `[{"id":"1","name":"Good","status":"ongoing","progress":10,"tasks":[]},{"id":"2"},null]`
	if err := database.Put(ProjectsKey, raw); err != nil {
		t.Fatalf("Put: %v", err)
	}

	projects, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Good" {
		t.Errorf("Load = %+v, want only the valid project", projects)
	}
}
