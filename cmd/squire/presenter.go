package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"squire/internal/assistant"
	"squire/internal/reminder"
)

var (
	alertStyle  = color.New(color.FgRed, color.Bold).SprintFunc()
	statusStyle = color.New(color.FgYellow).SprintFunc()
	focusBadge  = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// terminalPresenter renders assistant state to the session terminal. It only
// prints when something changed so the REPL stays readable.
type terminalPresenter struct {
	mu  sync.Mutex
	out io.Writer

	lastList     string
	lastActivity assistant.ActivityState
	activitySeen bool
}

func newTerminalPresenter(out io.Writer) *terminalPresenter {
	return &terminalPresenter{out: out}
}

func (p *terminalPresenter) Refresh(reminders []reminder.Reminder) {
	now := time.Now()
	var b strings.Builder
	for i, r := range reminders {
		b.WriteString(r.DisplayLine(i+1, now))
		b.WriteString("\n")
	}
	rendered := b.String()

	p.mu.Lock()
	defer p.mu.Unlock()
	if rendered == p.lastList {
		return
	}
	p.lastList = rendered

	if rendered == "" {
		fmt.Fprintln(p.out, gray("(no reminders)"))
		return
	}
	fmt.Fprint(p.out, rendered)
}

func (p *terminalPresenter) Alert(r reminder.Reminder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s %s\n", alertStyle("REMINDER:"), r.Text)
}

func (p *terminalPresenter) Activity(state assistant.ActivityState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.activitySeen && state == p.lastActivity {
		return
	}
	p.lastActivity = state
	p.activitySeen = true

	line := statusStyle(state.Label)
	if state.FocusModeActive {
		line += " " + focusBadge("[FOCUS]")
	}
	fmt.Fprintln(p.out, line)
}
