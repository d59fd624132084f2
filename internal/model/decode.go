package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrMalformed is returned when stored data is not a JSON array of projects
var ErrMalformed = errors.New("malformed project data")

// NewID returns a fresh opaque identifier for a project or task
func NewID() string {
	return uuid.New().String()
}

// DecodeReport counts what the decoder had to drop or fix
type DecodeReport struct {
	Projects        int
	DroppedProjects int
	DroppedTasks    int
	Repaired        int
}

// Clean returns true if nothing was dropped or repaired
func (r DecodeReport) Clean() bool {
	return r.DroppedProjects == 0 && r.DroppedTasks == 0 && r.Repaired == 0
}

// EncodeProjects serializes the collection in the stored layout.
// Nil slices are written as empty arrays.
func EncodeProjects(projects []Project) ([]byte, error) {
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return json.Marshal(out)
}

// DecodeProjects parses a stored collection. Entries that cannot be used are
// dropped, recoverable ones are repaired. If the payload itself is not an
// array, an empty collection and ErrMalformed are returned.
func DecodeProjects(data []byte) ([]Project, DecodeReport, error) {
	var report DecodeReport

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Project{}, report, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return []Project{}, report, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	projects := make([]Project, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, raw := range entries {
		p, ok := decodeProject(raw, &report)
		if !ok || seen[p.ID] {
			report.DroppedProjects++
			continue
		}
		seen[p.ID] = true
		projects = append(projects, p)
	}
	report.Projects = len(projects)

	return projects, report, nil
}

func decodeProject(raw json.RawMessage, report *DecodeReport) (Project, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Project{}, false
	}

	p := Project{
		ID:          rawString(fields["id"]),
		Name:        rawString(fields["name"]),
		Description: rawString(fields["description"]),
		StartDate:   rawString(fields["startDate"]),
		EndDate:     rawString(fields["endDate"]),
		Status:      Status(rawString(fields["status"])),
	}
	if strings.TrimSpace(p.Name) == "" {
		return Project{}, false
	}

	if p.ID == "" {
		p.ID = NewID()
		report.Repaired++
	}
	if !p.Status.IsValid() {
		p.Status = StatusOngoing
		report.Repaired++
	}

	progress, ok := rawInt(fields["progress"])
	if !ok || progress != ClampProgress(progress) {
		report.Repaired++
	}
	p.Progress = ClampProgress(progress)

	p.Tasks = decodeTasks(fields["tasks"], report)

	return p, true
}

func decodeTasks(raw json.RawMessage, report *DecodeReport) []Task {
	tasks := []Task{}
	if len(raw) == 0 {
		return tasks
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		report.Repaired++
		return tasks
	}

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
			report.DroppedTasks++
			continue
		}

		t := Task{
			ID:            rawString(fields["id"]),
			Title:         rawString(fields["title"]),
			Notes:         rawString(fields["notes"]),
			Priority:      Priority(rawString(fields["priority"])),
			DueDate:       rawString(fields["dueDate"]),
			Assignee:      rawString(fields["assignee"]),
			AssigneeEmail: rawString(fields["assigneeEmail"]),
		}
		if strings.TrimSpace(t.Title) == "" {
			report.DroppedTasks++
			continue
		}

		if done, ok := fields["done"]; ok {
			if err := json.Unmarshal(done, &t.Done); err != nil {
				t.Done = false
				report.Repaired++
			}
		}
		if t.ID == "" || seen[t.ID] {
			t.ID = NewID()
			report.Repaired++
		}
		seen[t.ID] = true
		// Tasks written before priorities existed have none; that is not damage.
		if t.Priority != "" && !t.Priority.IsValid() {
			report.Repaired++
		}
		t.Priority = t.Priority.OrDefault()

		tasks = append(tasks, t)
	}

	return tasks
}

// rawString accepts a JSON string or number and returns "" for anything else
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// rawInt reads a progress value the way a lenient form would: numbers are
// truncated, strings contribute their leading integer ("40%" is 40).
func rawInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, true
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		// bound before converting; the caller clamps to 0..100
		return int(max(min(f, math.MaxInt32), math.MinInt32)), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
