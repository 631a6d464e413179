package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirror-notes/internal/config"
	"mirror-notes/internal/models"
)

var sampleNotes = []models.Note{
	{Title: "Groceries", Content: "milk\neggs"},
	{Title: "Ideas", Content: "a notes app that \"talks\" back"},
	{Title: "Groceries", Content: "duplicate titles are fine"},
}

func TestJSONFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewJSONFileStore(filepath.Join(t.TempDir(), "notes.json"))

	notes, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestJSONFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	store := NewJSONFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleNotes))

	reloaded, err := NewJSONFileStore(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleNotes, reloaded)
}

func TestJSONFileStoreWireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	store := NewJSONFileStore(path)

	require.NoError(t, store.Save(context.Background(), []models.Note{{Title: "t", Content: "c"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"t","content":"c"}]`, string(data))
}

func TestJSONFileStoreReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "old", "content": "from before"}]`), 0o644))

	notes, err := NewJSONFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Note{{Title: "old", Content: "from before"}}, notes)
}

func TestJSONFileStoreOverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	store := NewJSONFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleNotes))
	require.NoError(t, store.Save(ctx, sampleNotes[:1]))

	notes, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleNotes[:1], notes)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestJSONFileStoreMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := NewJSONFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestJSONFileStoreCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewJSONFileStore(path).Save(ctx, sampleNotes), context.Canceled)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestBoltStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	ctx := context.Background()

	store, err := OpenBoltStore(path)
	require.NoError(t, err)

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, store.Save(ctx, sampleNotes))
	require.NoError(t, store.Save(ctx, sampleNotes[:2]))
	require.NoError(t, store.Close())

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	notes, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleNotes[:2], notes)
}

func TestBoltStoreKeepsOrderPastTenEntries(t *testing.T) {
	store, err := OpenBoltStore(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	defer store.Close()

	var notes []models.Note
	for i := 0; i < 300; i++ {
		notes = append(notes, models.Note{Title: string(rune('a' + i%26)), Content: "x"})
	}
	require.NoError(t, store.Save(context.Background(), notes))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, notes, loaded)
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(&config.Config{NotesFile: filepath.Join(dir, "notes.json"), Storage: config.StorageConfig{Backend: config.BackendJSON}})
	require.NoError(t, err)
	assert.IsType(t, &JSONFileStore{}, s)

	s, err = Open(&config.Config{NotesFile: filepath.Join(dir, "notes.db"), Storage: config.StorageConfig{Backend: config.BackendBolt}})
	require.NoError(t, err)
	assert.IsType(t, &BoltStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(&config.Config{NotesFile: "x", Storage: config.StorageConfig{Backend: "csv"}})
	assert.Error(t, err)
}
