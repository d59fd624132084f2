package model

import (
	"fmt"
	"testing"
)

func tasksWithDone(total, done int) []Task {
	tasks := make([]Task, total)
	for i := range tasks {
		tasks[i] = Task{
			ID:       fmt.Sprintf("t%d", i),
			Title:    fmt.Sprintf("Task %d", i),
			Priority: PriorityMedium,
			Done:     i < done,
		}
	}
	return tasks
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, total int
		want        int
	}{
		{0, 0, 0},
		{0, 4, 0},
		{1, 4, 25},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{3, 8, 38}, // 37.5 rounds up
		{3, 3, 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.part, tt.total), func(t *testing.T) {
			if got := Percent(tt.part, tt.total); got != tt.want {
				t.Errorf("Percent(%d, %d) = %d, want %d", tt.part, tt.total, got, tt.want)
			}
		})
	}
}

// Every combination of status, manual progress and task counts
func normalizeCases() []Project {
	var cases []Project
	statuses := []Status{StatusOngoing, StatusCompleted, StatusUpcoming, Status("bogus")}
	for _, s := range statuses {
		for _, progress := range []int{-5, 0, 40, 99, 100, 150} {
			for total := 0; total <= 4; total++ {
				for done := 0; done <= total; done++ {
					cases = append(cases, Project{
						ID:       "p",
						Name:     "P",
						Status:   s,
						Progress: progress,
						Tasks:    tasksWithDone(total, done),
					})
				}
			}
		}
	}
	return cases
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, p := range normalizeCases() {
		once := Normalize(p)
		twice := Normalize(once)
		if once.Status != twice.Status || once.Progress != twice.Progress {
			t.Errorf("not idempotent for %+v: once=%s/%d twice=%s/%d",
				p, once.Status, once.Progress, twice.Status, twice.Progress)
		}

		again := RecomputeProgress(RecomputeProgress(p))
		if r := RecomputeProgress(p); r.Status != again.Status || r.Progress != again.Progress {
			t.Errorf("RecomputeProgress not idempotent for %+v", p)
		}
	}
}

func TestNormalize_StatusCoupling(t *testing.T) {
	for _, p := range normalizeCases() {
		for name, fn := range map[string]func(Project) Project{"Normalize": Normalize, "RecomputeProgress": RecomputeProgress} {
			got := fn(p)
			if got.Progress < 0 || got.Progress > 100 {
				t.Errorf("%s: progress %d out of range", name, got.Progress)
			}
			if got.Progress >= 100 && got.Status != StatusCompleted {
				t.Errorf("%s: progress %d but status %s", name, got.Progress, got.Status)
			}
			if got.Progress < 100 && got.Status == StatusCompleted {
				t.Errorf("%s: progress %d but status completed", name, got.Progress)
			}
			if got.Progress < 100 && p.Status == StatusUpcoming && got.Status != StatusUpcoming {
				t.Errorf("%s: upcoming project changed to %s", name, got.Status)
			}
		}
	}
}

func TestNormalize_DerivesFromTasks(t *testing.T) {
	for total := 1; total <= 6; total++ {
		for done := 0; done <= total; done++ {
			p := Project{Status: StatusOngoing, Progress: 7, Tasks: tasksWithDone(total, done)}
			want := Percent(done, total)
			if got := Normalize(p).Progress; got != want {
				t.Errorf("Normalize %d/%d: progress = %d, want %d", done, total, got, want)
			}
			if got := RecomputeProgress(p).Progress; got != want {
				t.Errorf("RecomputeProgress %d/%d: progress = %d, want %d", done, total, got, want)
			}
		}
	}
}

func TestNormalize_ZeroTasksKeepsManualProgress(t *testing.T) {
	p := Project{ID: "p", Name: "Manual", Status: StatusOngoing, Progress: 40}

	got := Normalize(p)
	if got.Progress != 40 || got.Status != StatusOngoing {
		t.Errorf("Normalize = %s/%d, want ongoing/40", got.Status, got.Progress)
	}

	got = RecomputeProgress(p)
	if got.Progress != 0 || got.Status != StatusOngoing {
		t.Errorf("RecomputeProgress = %s/%d, want ongoing/0", got.Status, got.Progress)
	}
}

func TestNormalize_ManualHundredCompletes(t *testing.T) {
	got := Normalize(Project{Status: StatusUpcoming, Progress: 100})
	if got.Status != StatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
}

func TestNormalize_DoesNotTouchInputTasks(t *testing.T) {
	p := Project{Status: StatusOngoing, Tasks: tasksWithDone(2, 1)}
	_ = Normalize(p)
	if !p.Tasks[0].Done || p.Tasks[1].Done {
		t.Error("Normalize modified the input task list")
	}
}
