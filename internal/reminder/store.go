package reminder

import (
	"strings"
	"time"
)

// Store owns the current set of reminders in insertion order. It is not
// safe for concurrent use: the assistant's event loop is the only caller,
// and workers receive copies rather than live references.
type Store struct {
	items []Reminder
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a reminder, preserving insertion order.
func (s *Store) Add(r Reminder) {
	s.items = append(s.items, r)
}

// Len returns the number of reminders held.
func (s *Store) Len() int {
	return len(s.items)
}

// Snapshot returns a copy of the reminders in insertion order.
func (s *Store) Snapshot() []Reminder {
	out := make([]Reminder, len(s.items))
	copy(out, s.items)
	return out
}

// Due returns copies of the time reminders whose deadline has elapsed at now,
// in insertion order.
func (s *Store) Due(now time.Time) []Reminder {
	var due []Reminder
	for _, r := range s.items {
		if r.Due(now) {
			due = append(due, r)
		}
	}
	return due
}

// Remove deletes the reminder with the given ID. It reports whether a
// reminder was removed.
func (s *Store) Remove(id string) bool {
	for i, r := range s.items {
		if r.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveFirstMatch deletes the first reminder (in insertion order) whose text
// contains keyword case-insensitively. At most one reminder is removed even
// when several match.
func (s *Store) RemoveFirstMatch(keyword string) (Reminder, bool) {
	needle := strings.ToLower(keyword)
	for i, r := range s.items {
		if strings.Contains(strings.ToLower(r.Text), needle) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return r, true
		}
	}
	return Reminder{}, false
}

// RemoveAll clears the store and returns how many reminders were held.
func (s *Store) RemoveAll() int {
	count := len(s.items)
	s.items = nil
	return count
}

// Records serializes every reminder for persistence, in insertion order.
func (s *Store) Records() []Record {
	records := make([]Record, 0, len(s.items))
	for _, r := range s.items {
		records = append(records, r.ToRecord())
	}
	return records
}

// Restore replaces the store contents with reminders reconstructed from
// records. Records that fail to parse are skipped and reported.
func (s *Store) Restore(records []Record) (skipped []error) {
	s.items = s.items[:0]
	for _, rec := range records {
		r, err := FromRecord(rec)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		s.items = append(s.items, r)
	}
	return skipped
}
