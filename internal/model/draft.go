package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is returned when a form draft is missing required data
var ErrValidation = errors.New("validation failed")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ProjectDraft holds the fields of the project form
type ProjectDraft struct {
	Name        string `validate:"required"`
	Description string
	StartDate   string `validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `validate:"omitempty,datetime=2006-01-02"`
	Status      Status `validate:"omitempty,oneof=ongoing completed upcoming"`
	Progress    int    `validate:"min=0,max=100"`
}

// Trim strips surrounding whitespace from the text fields
func (d ProjectDraft) Trim() ProjectDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.StartDate = strings.TrimSpace(d.StartDate)
	d.EndDate = strings.TrimSpace(d.EndDate)
	return d
}

// Validate trims the draft and checks it
func (d ProjectDraft) Validate() (ProjectDraft, error) {
	d = d.Trim()
	if err := check(d); err != nil {
		return d, err
	}
	return d, nil
}

// ProjectDraftFrom fills a draft with the current values of p, the way the
// edit form is pre-populated.
func ProjectDraftFrom(p Project) ProjectDraft {
	return ProjectDraft{
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status,
		Progress:    p.Progress,
	}
}

// Apply copies the draft onto p. Id and tasks are left untouched.
func (d ProjectDraft) Apply(p Project) Project {
	p.Name = d.Name
	p.Description = d.Description
	p.StartDate = d.StartDate
	p.EndDate = d.EndDate
	p.Status = d.Status
	if p.Status == "" {
		p.Status = StatusOngoing
	}
	p.Progress = d.Progress
	return p
}

// TaskDraft holds the fields of the task form
type TaskDraft struct {
	Title         string `validate:"required"`
	Notes         string
	Done          bool
	Priority      Priority `validate:"omitempty,oneof=low medium high"`
	DueDate       string   `validate:"omitempty,datetime=2006-01-02"`
	Assignee      string
	AssigneeEmail string
}

// Trim strips surrounding whitespace from the text fields
func (d TaskDraft) Trim() TaskDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Notes = strings.TrimSpace(d.Notes)
	d.DueDate = strings.TrimSpace(d.DueDate)
	d.Assignee = strings.TrimSpace(d.Assignee)
	d.AssigneeEmail = strings.TrimSpace(d.AssigneeEmail)
	return d
}

// Validate trims the draft and checks it
func (d TaskDraft) Validate() (TaskDraft, error) {
	d = d.Trim()
	if err := check(d); err != nil {
		return d, err
	}
	return d, nil
}

// TaskDraftFrom fills a draft with the current values of t
func TaskDraftFrom(t Task) TaskDraft {
	return TaskDraft{
		Title:         t.Title,
		Notes:         t.Notes,
		Done:          t.Done,
		Priority:      t.Priority,
		DueDate:       t.DueDate,
		Assignee:      t.Assignee,
		AssigneeEmail: t.AssigneeEmail,
	}
}

// Task builds a task with the given id from the draft
func (d TaskDraft) Task(id string) Task {
	return Task{
		ID:            id,
		Title:         d.Title,
		Notes:         d.Notes,
		Done:          d.Done,
		Priority:      d.Priority.OrDefault(),
		DueDate:       d.DueDate,
		Assignee:      d.Assignee,
		AssigneeEmail: d.AssigneeEmail,
	}
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "datetime":
		return field + " must be a YYYY-MM-DD date"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min", "max":
		return field + " must be between 0 and 100"
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
