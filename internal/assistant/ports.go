package assistant

import "squire/internal/reminder"

// ActivityState is the externally detected game activity.
type ActivityState struct {
	Label           string
	FocusModeActive bool
}

// Presenter receives state pushes for whatever visual surface is attached.
// Behavior behind it is out of scope here; the assistant only guarantees it
// is told about every change.
type Presenter interface {
	// Refresh delivers an ordered snapshot after every store mutation.
	Refresh(reminders []reminder.Reminder)
	// Alert announces a fired reminder.
	Alert(r reminder.Reminder)
	// Activity delivers the current activity label and focus-mode flag.
	Activity(state ActivityState)
}

type nopPresenter struct{}

func (nopPresenter) Refresh([]reminder.Reminder) {}
func (nopPresenter) Alert(reminder.Reminder)     {}
func (nopPresenter) Activity(ActivityState)      {}

// NopPresenter returns a presenter that ignores every push.
func NopPresenter() Presenter {
	return nopPresenter{}
}
