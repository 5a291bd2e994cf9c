package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"squire/internal/reminder"
)

func TestInterpretListReminders(t *testing.T) {
	ki := NewKeywordInterpreter()

	for _, text := range []string{"list my reminders", "List Reminders", "please list every reminder"} {
		intent := ki.Interpret(text)
		assert.Equal(t, ActionListReminders, intent.Action, "text %q", text)
	}
}

func TestInterpretClearAll(t *testing.T) {
	ki := NewKeywordInterpreter()

	intent := ki.Interpret("clear all")
	assert.Equal(t, ActionClearAll, intent.Action)
}

func TestInterpretPriorityOrderIsFixed(t *testing.T) {
	ki := NewKeywordInterpreter()

	// Contains both "list reminder" and "clear all"; list is checked first.
	intent := ki.Interpret("list reminders then clear all")
	assert.Equal(t, ActionListReminders, intent.Action)

	// "clear all" outranks "clear ... reminder".
	intent = ki.Interpret("clear all reminder entries")
	assert.Equal(t, ActionClearAll, intent.Action)
}

func TestInterpretClearMatchingExtractsKeyword(t *testing.T) {
	ki := NewKeywordInterpreter()

	intent := ki.Interpret("clear reminder about the forge")
	assert.Equal(t, ActionClearMatching, intent.Action)
	assert.Equal(t, "the forge", intent.Keyword)

	intent = ki.Interpret("clear reminder gold")
	assert.Equal(t, ActionClearMatching, intent.Action)
	assert.Equal(t, "gold", intent.Keyword)
}

func TestInterpretTimedReminder(t *testing.T) {
	ki := NewKeywordInterpreter()

	intent := ki.Interpret("remind me to build a forge in 15 minutes")
	assert.Equal(t, ActionAddTimeReminder, intent.Action)
	assert.Equal(t, 15, intent.Minutes)
	assert.Equal(t, "build a forge", intent.Body)
}

func TestInterpretTimedReminderVariants(t *testing.T) {
	ki := NewKeywordInterpreter()

	cases := []struct {
		text    string
		minutes int
		body    string
	}{
		{"set reminder to rotate scouts after 5 minutes", 5, "rotate scouts"},
		{"in 1 minute remind me to check the wonder", 1, "check the wonder"},
		{"remind me to save the game in 0 minutes", 0, "save the game"},
	}

	for _, tc := range cases {
		intent := ki.Interpret(tc.text)
		assert.Equal(t, ActionAddTimeReminder, intent.Action, "text %q", tc.text)
		assert.Equal(t, tc.minutes, intent.Minutes, "text %q", tc.text)
		assert.Equal(t, tc.body, intent.Body, "text %q", tc.text)
	}
}

func TestInterpretImmediateReminderClassification(t *testing.T) {
	ki := NewKeywordInterpreter()

	intent := ki.Interpret("remind me to watch for 500 gold")
	assert.Equal(t, ActionAddImmediateReminder, intent.Action)
	assert.Equal(t, "watch for 500 gold", intent.Body)
	assert.Equal(t, reminder.KindResource, intent.Kind)

	intent = ki.Interpret("remind me to declare war on Rome")
	assert.Equal(t, ActionAddImmediateReminder, intent.Action)
	assert.Equal(t, reminder.KindEvent, intent.Kind)
}

func TestInterpretCustomResourceKeywords(t *testing.T) {
	ki := NewKeywordInterpreter(WithResourceKeywords([]string{"mana"}))

	intent := ki.Interpret("remind me to bank mana")
	assert.Equal(t, reminder.KindResource, intent.Kind)

	intent = ki.Interpret("remind me to stockpile gold")
	assert.Equal(t, reminder.KindEvent, intent.Kind)
}

func TestInterpretEmptyBodyIsAccepted(t *testing.T) {
	ki := NewKeywordInterpreter()

	intent := ki.Interpret("remind me in 5 minutes")
	assert.Equal(t, ActionAddTimeReminder, intent.Action)
	assert.Equal(t, "", intent.Body)

	intent = ki.Interpret("remind me to")
	assert.Equal(t, ActionAddImmediateReminder, intent.Action)
	assert.Equal(t, "", intent.Body)
}

func TestInterpretUnrecognized(t *testing.T) {
	ki := NewKeywordInterpreter()

	intent := ki.Interpret("open the pod bay doors")
	assert.Equal(t, ActionUnrecognized, intent.Action)
	assert.Equal(t, "open the pod bay doors", intent.Raw)
}
