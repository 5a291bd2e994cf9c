package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"squire/internal/assistant"
	"squire/internal/reminder"
)

func init() {
	color.NoColor = true
}

func TestPresenterRefreshPrintsOnChange(t *testing.T) {
	var buf bytes.Buffer
	p := newTerminalPresenter(&buf)
	now := time.Now()

	r := reminder.NewImmediate("watch for 500 gold", reminder.KindResource, now)
	p.Refresh([]reminder.Reminder{r})
	assert.Contains(t, buf.String(), "1. [RESOURCE] watch for 500 gold")

	// Same list again stays quiet.
	buf.Reset()
	p.Refresh([]reminder.Reminder{r})
	assert.Empty(t, buf.String())

	buf.Reset()
	p.Refresh(nil)
	assert.Contains(t, buf.String(), "(no reminders)")
}

func TestPresenterAlert(t *testing.T) {
	var buf bytes.Buffer
	p := newTerminalPresenter(&buf)

	p.Alert(reminder.NewImmediate("check the forge", reminder.KindEvent, time.Now()))

	assert.Equal(t, "REMINDER: check the forge\n", buf.String())
}

func TestPresenterActivityPrintsOnChange(t *testing.T) {
	var buf bytes.Buffer
	p := newTerminalPresenter(&buf)

	p.Activity(assistant.ActivityState{Label: "No game running"})
	assert.Contains(t, buf.String(), "No game running")

	buf.Reset()
	p.Activity(assistant.ActivityState{Label: "No game running"})
	assert.Empty(t, buf.String())

	buf.Reset()
	p.Activity(assistant.ActivityState{Label: "Sid Meier's Civilization VI", FocusModeActive: true})
	out := buf.String()
	assert.Contains(t, out, "Sid Meier's Civilization VI")
	assert.Contains(t, out, "[FOCUS]")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(not set)", maskKey(""))
	assert.Equal(t, "****", maskKey("abcd"))

	masked := maskKey("ABCDEF0123456789")
	assert.True(t, strings.HasSuffix(masked, "6789"))
	assert.NotContains(t, masked, "ABCDEF")
}
