package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mirror-notes/internal/logger"
	"mirror-notes/internal/models"
	"mirror-notes/internal/storage"
)

// ErrNotesUnreadable blocks writes while the stored list could not be read, so a
// broken file is never overwritten by a partial list.
var ErrNotesUnreadable = errors.New("stored notes could not be read")

// NoteService owns the note list and keeps the store in step with it.
type NoteService struct {
	store      storage.Store
	repository *models.NoteRepository
	logger     logger.Logger

	// mu serialises every read-replace and append-write-rollback sequence.
	mu      sync.Mutex
	loadErr error
}

func NewNoteService(store storage.Store, repo *models.NoteRepository, log logger.Logger) *NoteService {
	return &NoteService{
		store:      store,
		repository: repo,
		logger:     log,
	}
}

// Load replaces the in-memory list with the stored one. On failure the list is
// left as it was and writes are refused until a later load succeeds.
func (ns *NoteService) Load(ctx context.Context) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	notes, err := ns.store.Load(ctx)
	if err != nil {
		ns.loadErr = err
		return fmt.Errorf("failed to load notes: %w", err)
	}
	ns.loadErr = nil
	ns.repository.Replace(notes)

	ns.logger.Info("NoteService", "notes loaded", map[string]interface{}{
		"count": len(notes),
	})
	return nil
}

// Reload is Load under another name for change notifications.
func (ns *NoteService) Reload(ctx context.Context) error {
	return ns.Load(ctx)
}

func (ns *NoteService) writable() error {
	if ns.loadErr != nil {
		return fmt.Errorf("%w: %v", ErrNotesUnreadable, ns.loadErr)
	}
	return nil
}

// Save validates and appends a note, then rewrites the store. Invalid notes never
// reach the list; a failed write restores the previous list.
func (ns *NoteService) Save(ctx context.Context, title, content string) (int, error) {
	note := models.NewNote(title, content)
	if err := note.Validate(); err != nil {
		return -1, err
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()

	if err := ns.writable(); err != nil {
		return -1, err
	}

	previous := ns.repository.List()
	index := ns.repository.Append(note)
	if err := ns.store.Save(ctx, ns.repository.List()); err != nil {
		ns.repository.Replace(previous)
		return -1, fmt.Errorf("failed to save notes: %w", err)
	}

	ns.logger.Info("NoteService", "note saved", map[string]interface{}{
		"index": index,
		"title": note.Title,
	})
	return index, nil
}

// AddAll validates every note first and stores them with a single write.
func (ns *NoteService) AddAll(ctx context.Context, notes []models.Note) error {
	for i, n := range notes {
		if err := n.Validate(); err != nil {
			return fmt.Errorf("note %d: %w", i, err)
		}
	}
	if len(notes) == 0 {
		return nil
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()

	if err := ns.writable(); err != nil {
		return err
	}

	previous := ns.repository.List()
	for _, n := range notes {
		ns.repository.Append(n)
	}
	if err := ns.store.Save(ctx, ns.repository.List()); err != nil {
		ns.repository.Replace(previous)
		return fmt.Errorf("failed to save notes: %w", err)
	}
	return nil
}

// Select returns the stored note at index.
func (ns *NoteService) Select(index int) (models.Note, error) {
	return ns.repository.Get(index)
}

func (ns *NoteService) Notes() []models.Note {
	return ns.repository.List()
}

func (ns *NoteService) Titles() []string {
	return ns.repository.Titles()
}

func (ns *NoteService) Count() int {
	return ns.repository.Len()
}
