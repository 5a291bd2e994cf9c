package assistant

import (
	"fmt"
	"time"

	"squire/internal/command"
	"squire/internal/reminder"
)

const helpUtterance = "I didn't understand that command. Try: remind me, list reminders, or clear all."

// dispatch applies an intent to the store and speaks the feedback. Every
// mutating path persists the document before returning.
func (a *Assistant) dispatch(intent command.Intent) {
	now := a.now()

	switch intent.Action {
	case command.ActionListReminders:
		a.listReminders(now)

	case command.ActionClearAll:
		count := a.store.RemoveAll()
		a.persistAndRefresh()
		a.speak(fmt.Sprintf("Cleared %d reminder%s.", count, pluralNotOne(count)))

	case command.ActionClearMatching:
		removed, ok := a.store.RemoveFirstMatch(intent.Keyword)
		if !ok {
			a.speak("No matching reminder found.")
			return
		}
		a.persistAndRefresh()
		a.speak(fmt.Sprintf("Cleared reminder: %s", removed.Text))

	case command.ActionAddTimeReminder:
		r := reminder.NewTimed(intent.Body, time.Duration(intent.Minutes)*time.Minute, now)
		a.store.Add(r)
		a.persistAndRefresh()
		a.speak(fmt.Sprintf("Reminder set for %d minutes: %s", intent.Minutes, intent.Body))

	case command.ActionAddImmediateReminder:
		r := reminder.NewImmediate(intent.Body, intent.Kind, now)
		a.store.Add(r)
		a.persistAndRefresh()
		if intent.Kind == reminder.KindResource {
			a.speak(fmt.Sprintf("Resource reminder set: %s. Say 'trigger' to activate.", intent.Body))
		} else {
			a.speak(fmt.Sprintf("Event reminder set: %s", intent.Body))
		}

	default:
		a.speak(helpUtterance)
	}
}

func (a *Assistant) listReminders(now time.Time) {
	snapshot := a.store.Snapshot()
	if len(snapshot) == 0 {
		a.speak("You have no reminders.")
		return
	}

	a.speak(fmt.Sprintf("You have %d reminder%s.", len(snapshot), pluralMany(len(snapshot))))
	for i, r := range snapshot {
		if r.Kind == reminder.KindTime && r.TriggerAt != nil {
			a.speak(fmt.Sprintf("%d. In %d minutes: %s", i+1, r.MinutesLeft(now), r.Text))
		} else {
			a.speak(fmt.Sprintf("%d. %s: %s", i+1, r.Kind.Label(), r.Text))
		}
	}
}

// sweep fires and removes due reminders, announcing each one by voice and
// through the presenter, then persists when anything fired.
func (a *Assistant) sweep(now time.Time) {
	due := a.store.Due(now)
	for _, r := range due {
		a.logger.Info("reminder due: %s", r.Text)
		a.speak(fmt.Sprintf("Reminder: %s", r.Text))
		a.presenter.Alert(r)
		a.store.Remove(r.ID)
	}
	if len(due) > 0 {
		a.persist()
	}
	// Countdown labels change every sweep even without removals.
	a.presenter.Refresh(a.store.Snapshot())
}

func pluralNotOne(count int) string {
	if count != 1 {
		return "s"
	}
	return ""
}

func pluralMany(count int) string {
	if count > 1 {
		return "s"
	}
	return ""
}
