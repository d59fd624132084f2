// Package notify sends desktop notifications through notify-send.
package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/dori/trackboard/internal/model"
)

// Urgency maps to notify-send's -u flag
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one notify-send invocation
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string
}

// Notifier turns project events into desktop notifications. A disabled
// notifier drops everything silently.
type Notifier struct {
	enabled bool
	run     func(name string, args ...string) error
}

// NewNotifier returns an enabled notifier backed by notify-send
func NewNotifier() *Notifier {
	return &Notifier{
		enabled: true,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// SetEnabled follows the notifications config key
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Send runs notify-send unless the notifier is disabled
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}
	return n.run("notify-send", args(notification)...)
}

func args(notification Notification) []string {
	out := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		out = append(out, "-u", "low")
	case UrgencyCritical:
		out = append(out, "-u", "critical")
	default:
		out = append(out, "-u", "normal")
	}

	// milliseconds
	if notification.Timeout > 0 {
		out = append(out, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		out = append(out, "-i", notification.Icon)
	}

	out = append(out, "-a", "trackboard")

	out = append(out, notification.Title)
	if notification.Body != "" {
		out = append(out, notification.Body)
	}
	return out
}

// SendProjectCompleted announces that every task of a project is done
func (n *Notifier) SendProjectCompleted(p model.Project) error {
	return n.Send(Notification{
		Title:   "Project Complete!",
		Body:    p.Name,
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "emblem-default-symbolic",
	})
}

// SendProjectReopened announces that a completed project has open work again
func (n *Notifier) SendProjectReopened(p model.Project) error {
	return n.Send(Notification{
		Title:   "Project Reopened",
		Body:    fmt.Sprintf("%s is back to %d%%", p.Name, p.Progress),
		Urgency: UrgencyLow,
		Timeout: 5 * time.Second,
	})
}

// SendOverdueSummary warns about open tasks whose due date has passed
func (n *Notifier) SendOverdueSummary(overdue int) error {
	if overdue <= 0 {
		return nil
	}

	body := "1 task is overdue"
	if overdue > 1 {
		body = fmt.Sprintf("%d tasks are overdue", overdue)
	}

	return n.Send(Notification{
		Title:   "Overdue Tasks",
		Body:    body,
		Urgency: UrgencyCritical,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	})
}

// StatusChanged matches repo.StatusChangeFunc so the notifier can observe
// project status transitions directly.
func (n *Notifier) StatusChanged(p model.Project, from, to model.Status) {
	switch {
	case to == model.StatusCompleted:
		_ = n.SendProjectCompleted(p)
	case from == model.StatusCompleted:
		_ = n.SendProjectReopened(p)
	}
}
