package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	squireerrors "squire/internal/errors"
	"squire/internal/reminder"
)

func TestLoadMissingFileReturnsEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	doc, err := Load(WithPath(path))
	require.NoError(t, err)
	assert.Equal(t, Document{}, doc)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	now := time.Now()

	original := Document{
		SteamAPIKey: "ABCDEF0123456789",
		SteamID:     "76561198000000000",
		Reminders: []reminder.Record{
			reminder.NewTimed("build a forge", 15*time.Minute, now).ToRecord(),
			reminder.NewImmediate("watch for 500 gold", reminder.KindResource, now).ToRecord(),
		},
	}

	savedPath, err := Save(original, WithPath(path))
	require.NoError(t, err)
	assert.Equal(t, path, savedPath)

	restored, err := Load(WithPath(path))
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestSaveOverwritesPriorContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	_, err := Save(Document{SteamID: "first"}, WithPath(path))
	require.NoError(t, err)
	_, err = Save(Document{SteamID: "second"}, WithPath(path))
	require.NoError(t, err)

	doc, err := Load(WithPath(path))
	require.NoError(t, err)
	assert.Equal(t, "second", doc.SteamID)
}

func TestSaveIOFailureIsTransient(t *testing.T) {
	// The parent "directory" is a regular file, so every write attempt fails.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	path := filepath.Join(blocker, "config.json")

	_, err := Save(Document{SteamID: "x"}, WithPath(path))

	require.Error(t, err)
	assert.True(t, squireerrors.IsTransient(err), "IO save failures are worth retrying")
}

func TestLoadCorruptFileReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(WithPath(path))
	assert.Error(t, err)
}

func TestDefaultPathUsesHomeDir(t *testing.T) {
	home := t.TempDir()

	_, err := Save(Document{SteamID: "x"}, WithHomeDir(func() (string, error) { return home, nil }))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, DefaultFileName))
	assert.NoError(t, err)
}

func TestVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	doc := Document{SteamAPIKey: "key", SteamID: "id"}

	_, err := Save(doc, WithPath(path))
	require.NoError(t, err)

	assert.NoError(t, Verify(doc, WithPath(path)))
	assert.Error(t, Verify(Document{SteamAPIKey: "other", SteamID: "id"}, WithPath(path)))
}

func TestHasCredentials(t *testing.T) {
	assert.False(t, Document{}.HasCredentials())
	assert.False(t, Document{SteamAPIKey: "key"}.HasCredentials())
	assert.True(t, Document{SteamAPIKey: "key", SteamID: "id"}.HasCredentials())
}
