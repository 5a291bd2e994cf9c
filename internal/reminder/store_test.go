package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePreservesInsertionOrder(t *testing.T) {
	now := time.Now()
	store := NewStore()

	store.Add(NewImmediate("first", KindEvent, now))
	store.Add(NewImmediate("second", KindResource, now))
	store.Add(NewTimed("third", time.Minute, now))

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, "first", snapshot[0].Text)
	assert.Equal(t, "second", snapshot[1].Text)
	assert.Equal(t, "third", snapshot[2].Text)
}

func TestSnapshotIsACopy(t *testing.T) {
	now := time.Now()
	store := NewStore()
	store.Add(NewImmediate("only", KindEvent, now))

	snapshot := store.Snapshot()
	snapshot[0].Text = "mutated"

	assert.Equal(t, "only", store.Snapshot()[0].Text)
}

func TestDueReturnsOnlyElapsedTimeReminders(t *testing.T) {
	now := time.Now()
	store := NewStore()
	store.Add(NewTimed("soon", 5*time.Minute, now))
	store.Add(NewTimed("later", time.Hour, now))
	store.Add(NewImmediate("resource", KindResource, now))

	assert.Empty(t, store.Due(now.Add(4*time.Minute)))

	due := store.Due(now.Add(5 * time.Minute))
	require.Len(t, due, 1)
	assert.Equal(t, "soon", due[0].Text)

	due = store.Due(now.Add(2 * time.Hour))
	require.Len(t, due, 2)
	assert.Equal(t, "soon", due[0].Text)
	assert.Equal(t, "later", due[1].Text)
}

func TestRemoveFirstMatchRemovesAtMostOne(t *testing.T) {
	now := time.Now()
	store := NewStore()
	store.Add(NewImmediate("check the Gold mine", KindResource, now))
	store.Add(NewImmediate("sell gold reserves", KindResource, now))

	removed, ok := store.RemoveFirstMatch("GOLD")
	require.True(t, ok)
	assert.Equal(t, "check the Gold mine", removed.Text)
	assert.Equal(t, 1, store.Len())

	// No match leaves the store unchanged.
	_, ok = store.RemoveFirstMatch("iron")
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestRemoveByID(t *testing.T) {
	now := time.Now()
	store := NewStore()
	r := NewTimed("due soon", time.Minute, now)
	store.Add(r)

	assert.True(t, store.Remove(r.ID))
	assert.False(t, store.Remove(r.ID))
	assert.Equal(t, 0, store.Len())
}

func TestRemoveAllIsIdempotent(t *testing.T) {
	now := time.Now()
	store := NewStore()
	store.Add(NewImmediate("a", KindEvent, now))
	store.Add(NewImmediate("b", KindEvent, now))
	store.Add(NewImmediate("c", KindEvent, now))

	assert.Equal(t, 3, store.RemoveAll())
	assert.Equal(t, 0, store.RemoveAll())
	assert.Equal(t, 0, store.Len())
}

func TestRecordsRestoreRoundTrip(t *testing.T) {
	now := time.Now()
	store := NewStore()
	store.Add(NewTimed("build a forge", 15*time.Minute, now))
	store.Add(NewImmediate("watch for 500 gold", KindResource, now))

	records := store.Records()
	require.Len(t, records, 2)

	restored := NewStore()
	skipped := restored.Restore(records)
	assert.Empty(t, skipped)
	require.Equal(t, 2, restored.Len())
	assert.Equal(t, store.Snapshot()[0].ID, restored.Snapshot()[0].ID)
}

func TestRestoreSkipsCorruptRecords(t *testing.T) {
	store := NewStore()
	records := []Record{
		{Text: "good", Type: "event", CreatedAt: time.Now().Format(time.RFC3339Nano)},
		{Text: "bad", Type: "event", CreatedAt: "garbage"},
	}

	skipped := store.Restore(records)
	assert.Len(t, skipped, 1)
	assert.Equal(t, 1, store.Len())
}
