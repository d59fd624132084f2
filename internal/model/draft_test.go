package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestProjectDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		draft   ProjectDraft
		wantErr string
	}{
		{"valid", ProjectDraft{Name: "Site", Status: StatusOngoing, Progress: 30}, ""},
		{"valid dates", ProjectDraft{Name: "Site", StartDate: "2024-01-01", EndDate: "2023-01-01"}, ""},
		{"blank name", ProjectDraft{Name: "   "}, "name is required"},
		{"bad status", ProjectDraft{Name: "x", Status: "paused"}, "status must be one of"},
		{"bad progress", ProjectDraft{Name: "x", Progress: 101}, "progress must be between 0 and 100"},
		{"bad date", ProjectDraft{Name: "x", StartDate: "01/02/2024"}, "startdate must be a YYYY-MM-DD date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.draft.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestTaskDraft_ValidateTrims(t *testing.T) {
	d, err := TaskDraft{Title: "  Write tests  ", Assignee: " Alice "}.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "Write tests" || d.Assignee != "Alice" {
		t.Errorf("draft not trimmed: %+v", d)
	}

	if _, err := (TaskDraft{Title: " \t "}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("blank title error = %v, want ErrValidation", err)
	}
	if _, err := (TaskDraft{Title: "x", Priority: "urgent"}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown priority error = %v, want ErrValidation", err)
	}
}

func TestTaskDraft_TaskDefaultsPriority(t *testing.T) {
	task := TaskDraft{Title: "x"}.Task("id-1")
	if task.ID != "id-1" || task.Priority != PriorityMedium {
		t.Errorf("unexpected task: %+v", task)
	}
}

func TestProjectDraft_ApplyKeepsIdentity(t *testing.T) {
	p := Project{ID: "keep", Name: "Old", Tasks: []Task{{ID: "t", Title: "T"}}}
	got := ProjectDraft{Name: "New", Progress: 10}.Apply(p)
	if got.ID != "keep" || len(got.Tasks) != 1 {
		t.Errorf("Apply changed identity or tasks: %+v", got)
	}
	if got.Name != "New" || got.Status != StatusOngoing || got.Progress != 10 {
		t.Errorf("Apply did not copy fields: %+v", got)
	}
}

func TestTask_IsOverdue(t *testing.T) {
	task := Task{Title: "x", DueDate: "2024-05-01"}
	due, _ := task.Due()

	if task.IsOverdue(due.Add(12 * time.Hour)) {
		t.Error("task should not be overdue on its due day")
	}
	if !task.IsOverdue(due.AddDate(0, 0, 2)) {
		t.Error("task should be overdue two days later")
	}
	task.Done = true
	if task.IsOverdue(due.AddDate(0, 0, 2)) {
		t.Error("done task should never be overdue")
	}
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusOngoing, true},
		{StatusCompleted, true},
		{StatusUpcoming, true},
		{Status(""), false},
		{Status("Ongoing"), false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}
