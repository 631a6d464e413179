package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrEmptyTitle   = errors.New("note title is required")
	ErrEmptyContent = errors.New("note content is required")
	ErrNoteNotFound = errors.New("note not found")
)

// Note is a titled block of free text. Notes have no identity beyond their
// position in the list.
type Note struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewNote trims surrounding whitespace from both fields.
func NewNote(title, content string) Note {
	return Note{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
}

// Validate reports whether the note can be stored.
func (n Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(n.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// NoteRepository holds the ordered, in-memory note list.
type NoteRepository struct {
	mu    sync.RWMutex
	notes []Note
}

// NewNoteRepository creates an empty repository
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{
		notes: make([]Note, 0),
	}
}

// Replace installs a freshly loaded list.
func (r *NoteRepository) Replace(notes []Note) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes = append(make([]Note, 0, len(notes)), notes...)
}

// Append adds a note at the end and returns its position.
func (r *NoteRepository) Append(note Note) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes = append(r.notes, note)
	return len(r.notes) - 1
}

func (r *NoteRepository) Get(index int) (Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.notes) {
		return Note{}, fmt.Errorf("%w: index %d of %d", ErrNoteNotFound, index, len(r.notes))
	}
	return r.notes[index], nil
}

// List returns a copy of the notes in order.
func (r *NoteRepository) List() []Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append(make([]Note, 0, len(r.notes)), r.notes...)
}

func (r *NoteRepository) Titles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	titles := make([]string, len(r.notes))
	for i, n := range r.notes {
		titles[i] = n.Title
	}
	return titles
}

func (r *NoteRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notes)
}
