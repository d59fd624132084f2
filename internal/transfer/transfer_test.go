package transfer

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dori/trackboard/internal/model"
	"github.com/xuri/excelize/v2"
)

func sampleProjects() []model.Project {
	return []model.Project{
		{
			ID: "p1", Name: "Launch", Description: "ship it", StartDate: "2024-02-01",
			Status: model.StatusOngoing, Progress: 50,
			Tasks: []model.Task{
				{ID: "t1", Title: "Plan", Done: true, Priority: model.PriorityHigh},
				{ID: "t2", Title: "Build", Priority: model.PriorityMedium, Assignee: "Bob", AssigneeEmail: "bob@example.com"},
			},
		},
		{ID: "p2", Name: "Later", Status: model.StatusUpcoming, Tasks: []model.Task{}},
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.json", FormatJSON, false},
		{"OUT.JSON5", FormatJSON, false},
		{"report.xlsx", FormatXLSX, false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("FormatFor(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("FormatFor(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
			}
		})
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	projects := sampleProjects()

	if err := Export(path, projects); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, report, err := Import(path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !report.Clean() {
		t.Errorf("report = %+v, want clean", report)
	}
	if !reflect.DeepEqual(got, projects) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, projects)
	}
}

func TestDecode_JSON5(t *testing.T) {
	input := `
	// hand-edited backup
	{
		projects: [
			{
				id: 'p1',
				name: 'Website',
				status: 'ongoing',
				progress: 40,
				tasks: [
					{id: 't1', title: 'Design', done: true,},
				],
			},
			{name: ''}, // dropped: no name
		],
	}`

	projects, report, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Website" {
		t.Fatalf("projects = %+v, want only Website", projects)
	}
	if report.DroppedProjects != 1 {
		t.Errorf("DroppedProjects = %d, want 1", report.DroppedProjects)
	}
	if len(projects[0].Tasks) != 1 || !projects[0].Tasks[0].Done {
		t.Errorf("tasks = %+v", projects[0].Tasks)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []string{
		`{not json`,
		`{"projects": 3}`,
		`"just a string"`,
	}

	for _, input := range tests {
		if _, _, err := Decode([]byte(input)); !errors.Is(err, model.ErrMalformed) {
			t.Errorf("Decode(%q) error = %v, want ErrMalformed", input, err)
		}
	}
}

func TestImport_MissingFile(t *testing.T) {
	if _, _, err := Import(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Import error = %v, want not exist", err)
	}
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.xlsx")

	if err := Export(path, sampleProjects()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	projectRows, err := f.GetRows(projectsSheet)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", projectsSheet, err)
	}
	if len(projectRows) != 3 {
		t.Fatalf("got %d project rows, want header + 2", len(projectRows))
	}
	if projectRows[0][1] != "Name" || projectRows[1][1] != "Launch" || projectRows[1][5] != "Ongoing" {
		t.Errorf("unexpected project rows: %v", projectRows[:2])
	}

	taskRows, err := f.GetRows(tasksSheet)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", tasksSheet, err)
	}
	if len(taskRows) != 3 {
		t.Fatalf("got %d task rows, want header + 2", len(taskRows))
	}
	if taskRows[2][0] != "Launch" || taskRows[2][2] != "Build" || taskRows[2][7] != "bob@example.com" {
		t.Errorf("unexpected task row: %v", taskRows[2])
	}
}
