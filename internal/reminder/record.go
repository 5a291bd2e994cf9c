package reminder

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is the persisted form of a Reminder. Field names and the RFC 3339
// timestamp encoding match the config file layout the assistant has always
// written, so existing files keep loading.
type Record struct {
	ID          string `json:"id,omitempty"`
	Text        string `json:"text"`
	Type        string `json:"type"`
	TriggerTime string `json:"trigger_time,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ToRecord serializes the reminder for storage.
func (r Reminder) ToRecord() Record {
	rec := Record{
		ID:        r.ID,
		Text:      r.Text,
		Type:      string(r.Kind),
		CreatedAt: r.CreatedAt.Format(time.RFC3339Nano),
	}
	if r.TriggerAt != nil {
		rec.TriggerTime = r.TriggerAt.Format(time.RFC3339Nano)
	}
	return rec
}

// FromRecord reconstructs a reminder from its persisted form.
func FromRecord(rec Record) (Reminder, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	if err != nil {
		return Reminder{}, fmt.Errorf("parse created_at: %w", err)
	}

	r := Reminder{
		ID:        rec.ID,
		Text:      rec.Text,
		Kind:      Kind(rec.Type),
		CreatedAt: createdAt,
	}
	// Files written before IDs existed get one assigned on load.
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if rec.TriggerTime != "" {
		triggerAt, err := time.Parse(time.RFC3339Nano, rec.TriggerTime)
		if err != nil {
			return Reminder{}, fmt.Errorf("parse trigger_time: %w", err)
		}
		r.TriggerAt = &triggerAt
	}
	if !r.Kind.IsValid() {
		return Reminder{}, fmt.Errorf("unknown reminder type %q", rec.Type)
	}
	return r, nil
}
