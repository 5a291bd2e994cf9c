package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind classifies how a reminder fires.
type Kind string

const (
	// KindTime reminders carry a deadline and fire from the sweep loop.
	KindTime Kind = "time"
	// KindResource reminders wait for the player to trigger them manually.
	KindResource Kind = "resource"
	// KindEvent reminders are free-form notes without a deadline.
	KindEvent Kind = "event"
)

// IsValid reports whether k is one of the closed set of kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindTime, KindResource, KindEvent:
		return true
	}
	return false
}

// Label returns the capitalized display name of the kind.
func (k Kind) Label() string {
	if k == "" {
		return ""
	}
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Reminder is the unit of scheduled work. Reminders are immutable after
// construction; clearing always removes the whole entity.
type Reminder struct {
	ID        string
	Text      string
	Kind      Kind
	TriggerAt *time.Time // set iff Kind == KindTime
	CreatedAt time.Time
}

// NewTimed constructs a time reminder firing at now + delay. A zero delay is
// allowed and fires on the next sweep.
func NewTimed(text string, delay time.Duration, now time.Time) Reminder {
	triggerAt := now.Add(delay)
	return Reminder{
		ID:        uuid.NewString(),
		Text:      text,
		Kind:      KindTime,
		TriggerAt: &triggerAt,
		CreatedAt: now,
	}
}

// NewImmediate constructs a resource or event reminder with no deadline.
func NewImmediate(text string, kind Kind, now time.Time) Reminder {
	return Reminder{
		ID:        uuid.NewString(),
		Text:      text,
		Kind:      kind,
		CreatedAt: now,
	}
}

// Validate checks the kind/deadline invariant: a trigger time is present
// exactly when the kind is time, and never precedes creation.
func (r Reminder) Validate() error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("reminder %s: unknown kind %q", r.ID, r.Kind)
	}
	if r.Kind == KindTime {
		if r.TriggerAt == nil {
			return fmt.Errorf("reminder %s: time reminder without trigger time", r.ID)
		}
		if r.TriggerAt.Before(r.CreatedAt) {
			return fmt.Errorf("reminder %s: trigger time precedes creation", r.ID)
		}
		return nil
	}
	if r.TriggerAt != nil {
		return fmt.Errorf("reminder %s: %s reminder carries a trigger time", r.ID, r.Kind)
	}
	return nil
}

// Due reports whether the reminder's deadline has elapsed at now. Only time
// reminders are ever due.
func (r Reminder) Due(now time.Time) bool {
	return r.Kind == KindTime && r.TriggerAt != nil && !r.TriggerAt.After(now)
}

// MinutesLeft returns whole minutes until the deadline, negative once the
// deadline has passed. Zero for non-time reminders.
func (r Reminder) MinutesLeft(now time.Time) int {
	if r.Kind != KindTime || r.TriggerAt == nil {
		return 0
	}
	return int(r.TriggerAt.Sub(now).Seconds() / 60)
}

// DisplayLine renders the reminder for the visual list, mirroring the voice
// readback but clamping elapsed deadlines at zero minutes.
func (r Reminder) DisplayLine(index int, now time.Time) string {
	if r.Kind == KindTime && r.TriggerAt != nil {
		minutes := r.MinutesLeft(now)
		if minutes < 0 {
			minutes = 0
		}
		return fmt.Sprintf("%d. [TIME - %dm] %s", index, minutes, r.Text)
	}
	return fmt.Sprintf("%d. [%s] %s", index, strings.ToUpper(string(r.Kind)), r.Text)
}
