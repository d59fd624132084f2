// Package transfer moves the project collection in and out of files.
//
// Exports are JSON in the stored layout or an .xlsx workbook with one sheet
// of projects and one of tasks. Imports accept JSON or JSON5 and go through
// the same validating decoder as the store.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dori/trackboard/internal/model"
	"github.com/xuri/excelize/v2"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// ErrUnsupportedFormat is returned for file extensions other than the known ones
var ErrUnsupportedFormat = errors.New("unsupported file format")

const (
	projectsSheet = "Projects"
	tasksSheet    = "Tasks"
)

// Format picks the export format from a file name
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// FormatFor returns the format for path's extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".json5":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q (use .json or .xlsx)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Export writes projects to path in the format its extension names
func Export(path string, projects []model.Project) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatXLSX:
		return exportXLSX(path, projects)
	default:
		return exportJSON(path, projects)
	}
}

func exportJSON(path string, projects []model.Project) error {
	data, err := model.EncodeProjects(projects)
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("failed to format projects: %w", err)
	}
	out.WriteByte('\n')

	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func exportXLSX(path string, projects []model.Project) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", projectsSheet); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	if _, err := f.NewSheet(tasksSheet); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}

	projectRows := make([][]any, 0, len(projects))
	var taskRows [][]any
	for _, p := range projects {
		total, done, _ := model.TaskCounts(p)
		projectRows = append(projectRows, []any{
			p.ID, p.Name, p.Description, p.StartDate, p.EndDate,
			p.Status.Label(), p.Progress, total, done,
		})
		for i, t := range p.Tasks {
			taskRows = append(taskRows, []any{
				p.Name, i + 1, t.Title, t.Done, string(t.Priority.OrDefault()),
				t.DueDate, t.Assignee, t.AssigneeEmail, t.Notes,
			})
		}
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]any
	}{
		{
			name:    projectsSheet,
			headers: []string{"ID", "Name", "Description", "Start", "End", "Status", "Progress", "Tasks", "Done"},
			rows:    projectRows,
		},
		{
			name:    tasksSheet,
			headers: []string{"Project", "#", "Title", "Done", "Priority", "Due", "Assignee", "Email", "Notes"},
			rows:    taskRows,
		},
	}

	for _, sheet := range sheets {
		if err := writeSheet(f, sheet.name, sheet.headers, sheet.rows, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write %s header: %w", sheet, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for r, values := range rows {
		for c, value := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet, r+2, err)
			}
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 18)
}

// Import reads a JSON or JSON5 collection from path. Comments, trailing
// commas and unquoted keys are accepted. Broken entries are dropped or
// repaired the way the store does, and counted in the report.
func Import(path string) ([]model.Project, model.DecodeReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.DecodeReport{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses JSON5 data into a validated collection
func Decode(data []byte) ([]model.Project, model.DecodeReport, error) {
	var raw any
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, model.DecodeReport{}, fmt.Errorf("%w: %v", model.ErrMalformed, err)
	}

	// Projects may be wrapped as {"projects": [...]}, the way the store key names them
	if obj, ok := raw.(map[string]any); ok {
		if inner, found := obj["projects"]; found {
			raw = inner
		}
	}

	canonical, err := json.Marshal(raw)
	if err != nil {
		return nil, model.DecodeReport{}, fmt.Errorf("failed to re-encode import: %w", err)
	}

	projects, report, err := model.DecodeProjects(canonical)
	if err != nil {
		return nil, report, err
	}
	return projects, report, nil
}
