package repo

// PendingAction is a destructive operation waiting for the user's answer.
// Nothing changes until Confirm is called. Once answered, further calls are
// no-ops.
type PendingAction struct {
	Prompt string

	run      func() error
	answered bool
}

func newPendingAction(prompt string, run func() error) *PendingAction {
	return &PendingAction{Prompt: prompt, run: run}
}

// Confirm performs the action
func (a *PendingAction) Confirm() error {
	if a == nil || a.answered {
		return nil
	}
	a.answered = true
	return a.run()
}

// Cancel drops the action without touching any state
func (a *PendingAction) Cancel() {
	if a != nil {
		a.answered = true
	}
}

// Answered reports whether Confirm or Cancel was already called
func (a *PendingAction) Answered() bool {
	return a == nil || a.answered
}
