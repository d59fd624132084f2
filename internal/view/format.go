// Package view builds display records from repository snapshots.
//
// Builders work on copies and never touch the repository; the bubbletea views
// and CLI commands decide how to draw the records and which keys act on them.
package view

import (
	"time"

	"github.com/dori/trackboard/internal/model"
)

// DisplayDateLayout is how dates are shown to the user
const DisplayDateLayout = "Jan 2, 2006"

// now is replaced in tests
var now = time.Now

// FormatDate renders a stored YYYY-MM-DD date for display. Empty dates read
// "Not set"; anything unparseable is shown as stored.
func FormatDate(date string) string {
	if date == "" {
		return "Not set"
	}
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(DisplayDateLayout)
}

// average returns sum/n rounded half up, 0 for an empty set
func average(sum, n int) int {
	if n <= 0 {
		return 0
	}
	return (2*sum + n) / (2 * n)
}
