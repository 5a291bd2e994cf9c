// Package command turns raw utterance text into a typed intent. Parsing is
// deliberately pluggable: the assistant depends on the Interpreter interface,
// so the keyword matcher here can be swapped for a real NLU model without
// touching the store or dispatcher.
package command

import (
	"regexp"
	"strconv"
	"strings"

	"squire/internal/reminder"
)

// Action names the operation a parsed utterance requests.
type Action int

const (
	// ActionUnrecognized - no command pattern matched
	ActionUnrecognized Action = iota
	// ActionListReminders - read back every reminder
	ActionListReminders
	// ActionClearAll - remove every reminder
	ActionClearAll
	// ActionClearMatching - remove the first reminder matching a keyword
	ActionClearMatching
	// ActionAddTimeReminder - add a reminder with a minute deadline
	ActionAddTimeReminder
	// ActionAddImmediateReminder - add a resource or event reminder
	ActionAddImmediateReminder
)

func (a Action) String() string {
	switch a {
	case ActionListReminders:
		return "list-reminders"
	case ActionClearAll:
		return "clear-all"
	case ActionClearMatching:
		return "clear-matching"
	case ActionAddTimeReminder:
		return "add-time-reminder"
	case ActionAddImmediateReminder:
		return "add-immediate-reminder"
	default:
		return "unrecognized"
	}
}

// Intent is the structured result of interpreting an utterance.
type Intent struct {
	Action  Action
	Raw     string        // original utterance
	Keyword string        // ActionClearMatching: substring to match
	Minutes int           // ActionAddTimeReminder: minutes until the deadline
	Body    string        // Add actions: the reminder text
	Kind    reminder.Kind // ActionAddImmediateReminder: resource or event
}

// Interpreter parses utterance text into an Intent.
type Interpreter interface {
	Interpret(text string) Intent
}

// DefaultResourceKeywords trigger the resource sub-kind when they appear in a
// reminder body.
var DefaultResourceKeywords = []string{"gold", "wood", "food", "iron", "stone", "resource"}

var (
	timePattern        = regexp.MustCompile(`(?i)(?:in|after) (\d+) minutes?`)
	timedPrefixPattern = regexp.MustCompile(`(?i).*?(?:remind me|set reminder) (?:to )?`)
	timedSuffixPattern = regexp.MustCompile(`(?i)(?:in|after) \d+ minutes?.*`)
	remindLeadPattern  = regexp.MustCompile(`(?i).*remind me (to )?`)
	clearLeadPattern   = regexp.MustCompile(`(?i).*clear reminder (about )?`)
)

// KeywordInterpreter matches utterances with case-insensitive substring and
// regexp tests. It is pure and deterministic.
type KeywordInterpreter struct {
	resourceKeywords []string
}

// Option configures a KeywordInterpreter.
type Option func(*KeywordInterpreter)

// WithResourceKeywords overrides the words that mark a reminder as
// resource-kind.
func WithResourceKeywords(keywords []string) Option {
	return func(ki *KeywordInterpreter) { ki.resourceKeywords = keywords }
}

// NewKeywordInterpreter builds the default interpreter.
func NewKeywordInterpreter(opts ...Option) *KeywordInterpreter {
	ki := &KeywordInterpreter{resourceKeywords: DefaultResourceKeywords}
	for _, opt := range opts {
		opt(ki)
	}
	return ki
}

// Interpret classifies text. Patterns are checked in a fixed priority order
// and the first match wins, so an utterance containing both "list reminders"
// and "clear all" lists rather than clears.
func (ki *KeywordInterpreter) Interpret(text string) Intent {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "list") && strings.Contains(lower, "reminder"):
		return Intent{Action: ActionListReminders, Raw: text}

	case strings.Contains(lower, "clear all"):
		return Intent{Action: ActionClearAll, Raw: text}

	case strings.Contains(lower, "clear") && strings.Contains(lower, "reminder"):
		keyword := strings.TrimSpace(clearLeadPattern.ReplaceAllString(text, ""))
		return Intent{Action: ActionClearMatching, Raw: text, Keyword: keyword}

	case strings.Contains(lower, "remind"):
		if match := timePattern.FindStringSubmatch(text); match != nil {
			minutes, _ := strconv.Atoi(match[1])
			body := timedPrefixPattern.ReplaceAllString(text, "")
			body = strings.TrimSpace(timedSuffixPattern.ReplaceAllString(body, ""))
			return Intent{Action: ActionAddTimeReminder, Raw: text, Minutes: minutes, Body: body}
		}
		body := strings.TrimSpace(remindLeadPattern.ReplaceAllString(text, ""))
		return Intent{Action: ActionAddImmediateReminder, Raw: text, Body: body, Kind: ki.classify(body)}

	default:
		return Intent{Action: ActionUnrecognized, Raw: text}
	}
}

func (ki *KeywordInterpreter) classify(body string) reminder.Kind {
	lower := strings.ToLower(body)
	for _, keyword := range ki.resourceKeywords {
		if strings.Contains(lower, keyword) {
			return reminder.KindResource
		}
	}
	return reminder.KindEvent
}
