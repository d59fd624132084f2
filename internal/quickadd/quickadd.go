// Package quickadd parses one-line task entry shared by the CLI and the TUI.
//
//	Review PR !high due:friday @Dana email:dana@example.com
package quickadd

import (
	"strings"
	"time"

	"github.com/dori/trackboard/internal/model"
)

// Parse splits text into a task draft. Words that look like markers but do
// not parse stay in the title.
func Parse(text string, now time.Time) model.TaskDraft {
	draft := model.TaskDraft{Priority: model.PriorityMedium}

	var titleParts, assignee []string
	for _, word := range strings.Fields(text) {
		lower := strings.ToLower(word)
		switch {
		// Assignee name (@Dana, @dana_smith)
		case strings.HasPrefix(word, "@") && len(word) > 1:
			assignee = append(assignee, strings.ReplaceAll(word[1:], "_", " "))

		// Priority (!low, !high, etc.)
		case strings.HasPrefix(word, "!"):
			if p, ok := ParsePriority(strings.TrimPrefix(lower, "!")); ok {
				draft.Priority = p
			} else {
				titleParts = append(titleParts, word)
			}

		// Due date (due:tomorrow, due:friday, due:2024-01-15)
		case strings.HasPrefix(lower, "due:"):
			if due, ok := ParseDate(strings.TrimPrefix(lower, "due:"), now); ok {
				draft.DueDate = due
			} else {
				titleParts = append(titleParts, word)
			}

		case strings.HasPrefix(lower, "email:") && strings.Contains(word, "@"):
			draft.AssigneeEmail = word[len("email:"):]

		default:
			titleParts = append(titleParts, word)
		}
	}

	draft.Title = strings.Join(titleParts, " ")
	draft.Assignee = strings.Join(assignee, " ")
	return draft
}

// ParsePriority accepts low, medium, high and their short forms
func ParsePriority(s string) (model.Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return model.PriorityLow, true
	case "medium", "med", "m":
		return model.PriorityMedium, true
	case "high", "hi", "h":
		return model.PriorityHigh, true
	default:
		return "", false
	}
}

// ParseDate turns a natural date into YYYY-MM-DD relative to now. An empty
// string parses to an empty date.
func ParseDate(s string, now time.Time) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var t time.Time
	switch s {
	case "":
		return "", true
	case "today":
		t = today
	case "tomorrow", "tom":
		t = today.AddDate(0, 0, 1)
	case "monday", "mon":
		t = nextWeekday(today, time.Monday)
	case "tuesday", "tue":
		t = nextWeekday(today, time.Tuesday)
	case "wednesday", "wed":
		t = nextWeekday(today, time.Wednesday)
	case "thursday", "thu":
		t = nextWeekday(today, time.Thursday)
	case "friday", "fri":
		t = nextWeekday(today, time.Friday)
	case "saturday", "sat":
		t = nextWeekday(today, time.Saturday)
	case "sunday", "sun":
		t = nextWeekday(today, time.Sunday)
	case "next week", "nextweek":
		t = today.AddDate(0, 0, 7)
	default:
		parsed, ok := parseLayouts(s, today)
		if !ok {
			return "", false
		}
		t = parsed
	}
	return t.Format(model.DateLayout), true
}

func parseLayouts(s string, today time.Time) (time.Time, bool) {
	formats := []string{
		"2006-01-02",
		"01/02/2006",
		"01-02-2006",
		"Jan 2",
		"Jan 2, 2006",
	}

	for _, format := range formats {
		t, err := time.Parse(format, s)
		if err != nil {
			continue
		}
		// no year given
		if t.Year() == 0 {
			t = time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, today.Location())
		}
		return t, true
	}
	return time.Time{}, false
}

func nextWeekday(today time.Time, day time.Weekday) time.Time {
	daysUntil := int(day - today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
