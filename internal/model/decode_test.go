package model

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeProjects_Empty(t *testing.T) {
	for _, input := range []string{"", "  ", "null", "[]"} {
		projects, report, err := DecodeProjects([]byte(input))
		if err != nil {
			t.Errorf("DecodeProjects(%q) error: %v", input, err)
		}
		if len(projects) != 0 {
			t.Errorf("DecodeProjects(%q) = %d projects, want 0", input, len(projects))
		}
		if !report.Clean() {
			t.Errorf("DecodeProjects(%q) report not clean: %+v", input, report)
		}
	}
}

func TestDecodeProjects_Malformed(t *testing.T) {
	for _, input := range []string{"{", `{"id":"1"}`, "42", `"projects"`} {
		projects, _, err := DecodeProjects([]byte(input))
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("DecodeProjects(%q) error = %v, want ErrMalformed", input, err)
		}
		if projects == nil || len(projects) != 0 {
			t.Errorf("DecodeProjects(%q) = %v, want empty non-nil slice", input, projects)
		}
	}
}

func TestDecodeProjects_LegacyLayout(t *testing.T) {
	// Written by the first version: numeric-string ids, no priorities,
	// progress saved as a string.
	input := `[
		{"id":"1700000000000","name":"Website","description":"","startDate":"2024-01-02","endDate":"",
		 "status":"ongoing","progress":"50",
		 "tasks":[{"id":"1700000000001","title":"Design","notes":"","done":true},
		          {"id":"1700000000002","title":"Build","notes":"","done":false}]}
	]`

	projects, report, err := DecodeProjects([]byte(input))
	if err != nil {
		t.Fatalf("DecodeProjects error: %v", err)
	}
	if !report.Clean() {
		t.Errorf("report = %+v, want clean", report)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}

	p := projects[0]
	if p.ID != "1700000000000" || p.Name != "Website" || p.Progress != 50 || p.StartDate != "2024-01-02" {
		t.Errorf("unexpected project: %+v", p)
	}
	if len(p.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(p.Tasks))
	}
	for _, task := range p.Tasks {
		if task.Priority != PriorityMedium {
			t.Errorf("task %s priority = %q, want medium", task.ID, task.Priority)
		}
	}
	if !p.Tasks[0].Done || p.Tasks[1].Done {
		t.Errorf("done flags not preserved: %+v", p.Tasks)
	}
}

func TestDecodeProjects_DropsAndRepairs(t *testing.T) {
	input := `[
		"not an object",
		{"id":"a","name":"   "},
		{"id":"b","name":"Kept","status":"paused","progress":250,"tasks":"oops"},
		{"id":"b","name":"Duplicate"},
		{"name":"No id","progress":"40%","tasks":[
			7,
			{"title":""},
			{"title":"Ok","priority":"urgent","done":"yes"}
		]}
	]`

	projects, report, err := DecodeProjects([]byte(input))
	if err != nil {
		t.Fatalf("DecodeProjects error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2: %+v", len(projects), projects)
	}
	if report.DroppedProjects != 3 {
		t.Errorf("DroppedProjects = %d, want 3", report.DroppedProjects)
	}
	if report.DroppedTasks != 2 {
		t.Errorf("DroppedTasks = %d, want 2", report.DroppedTasks)
	}

	kept := projects[0]
	if kept.Status != StatusOngoing || kept.Progress != 100 || kept.Tasks == nil || len(kept.Tasks) != 0 {
		t.Errorf("kept project not repaired: %+v", kept)
	}

	noID := projects[1]
	if noID.ID == "" {
		t.Error("missing id was not minted")
	}
	if noID.Progress != 40 {
		t.Errorf("progress = %d, want 40", noID.Progress)
	}
	if len(noID.Tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(noID.Tasks))
	}
	task := noID.Tasks[0]
	if task.ID == "" || task.Priority != PriorityMedium || task.Done {
		t.Errorf("task not repaired: %+v", task)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	projects := []Project{
		{
			ID: "p1", Name: "Alpha", Description: "first", StartDate: "2024-03-01", EndDate: "2024-04-01",
			Status: StatusOngoing, Progress: 50,
			Tasks: []Task{
				{ID: "t1", Title: "One", Notes: "n", Done: true, Priority: PriorityHigh, DueDate: "2024-03-10", Assignee: "Alice", AssigneeEmail: "alice@example.com"},
				{ID: "t2", Title: "Two", Priority: PriorityLow},
			},
		},
		{ID: "p2", Name: "Beta", Status: StatusUpcoming, Progress: 10, Tasks: []Task{}},
		{
			ID: "p3", Name: " Gamma ", Status: StatusOngoing, Progress: 0,
			Tasks: []Task{{ID: "t3", Title: "three ", Priority: PriorityMedium}},
		},
	}

	data, err := EncodeProjects(projects)
	if err != nil {
		t.Fatalf("EncodeProjects error: %v", err)
	}
	got, report, err := DecodeProjects(data)
	if err != nil {
		t.Fatalf("DecodeProjects error: %v", err)
	}
	if !report.Clean() {
		t.Errorf("report = %+v, want clean", report)
	}
	if !reflect.DeepEqual(got, projects) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, projects)
	}
}

func TestEncodeProjects_NilTasks(t *testing.T) {
	data, err := EncodeProjects([]Project{{ID: "p", Name: "P", Status: StatusOngoing}})
	if err != nil {
		t.Fatalf("EncodeProjects error: %v", err)
	}
	want := `[{"id":"p","name":"P","description":"","startDate":"","endDate":"","status":"ongoing","progress":0,"tasks":[]}]`
	if string(data) != want {
		t.Errorf("EncodeProjects = %s, want %s", data, want)
	}
}

func TestDecodeProjects_HugeProgressClamps(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"1e300", 100},
		{"-1e300", 0},
		{"99.9", 99},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			input := `[{"id":"a","name":"A","status":"ongoing","progress":` + tt.raw + `,"tasks":[]}]`
			projects, _, err := DecodeProjects([]byte(input))
			if err != nil {
				t.Fatalf("DecodeProjects error: %v", err)
			}
			if len(projects) != 1 || projects[0].Progress != tt.want {
				t.Errorf("progress = %+v, want %d", projects, tt.want)
			}
		})
	}
}
