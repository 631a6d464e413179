package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirror-notes/internal/logger"
	"mirror-notes/internal/models"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestImportMarkdownTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "---\ntitle: Meeting notes\n---\nDiscussed the roadmap.\n")
	writeFile(t, filepath.Join(dir, "nested", "deep", "b.md"), "No front matter here.")
	writeFile(t, filepath.Join(dir, "nested", "empty.md"), "---\ntitle: Empty\n---\n")
	writeFile(t, filepath.Join(dir, "skip.txt"), "not markdown")

	store := &memoryStore{}
	ns := newNoteService(store)
	is := NewImportService(ns, logger.NewNop())

	result, err := is.Import(context.Background(), []string{filepath.Join(dir, "**", "*.md")})
	require.NoError(t, err)

	assert.Len(t, result.Imported, 2)
	require.Len(t, result.Skipped, 1)
	assert.ErrorIs(t, result.Skipped[0].Err, models.ErrEmptyContent)

	assert.Equal(t, []models.Note{
		{Title: "Meeting notes", Content: "Discussed the roadmap."},
		{Title: "b", Content: "No front matter here."},
	}, ns.Notes())
	assert.Equal(t, 1, store.saves)
}

func TestImportDeduplicatesOverlappingPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.md"), "body")

	ns := newNoteService(&memoryStore{})
	is := NewImportService(ns, logger.NewNop())

	result, err := is.Import(context.Background(), []string{
		filepath.Join(dir, "*.md"),
		filepath.Join(dir, "**", "one.md"),
	})
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	assert.Equal(t, 1, ns.Count())
}

func TestImportBadPattern(t *testing.T) {
	is := NewImportService(newNoteService(&memoryStore{}), logger.NewNop())

	_, err := is.Import(context.Background(), []string{"[unterminated"})
	assert.Error(t, err)
}
