package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteValidate(t *testing.T) {
	tests := []struct {
		name string
		note Note
		want error
	}{
		{"valid", Note{Title: "a", Content: "b"}, nil},
		{"empty title", Note{Title: "", Content: "b"}, ErrEmptyTitle},
		{"blank title", Note{Title: "  \t", Content: "b"}, ErrEmptyTitle},
		{"empty content", Note{Title: "a", Content: ""}, ErrEmptyContent},
		{"blank content", Note{Title: "a", Content: "\n\n "}, ErrEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.note.Validate(), tt.want)
		})
	}
}

func TestNewNoteTrims(t *testing.T) {
	n := NewNote("  Groceries ", "milk\neggs\n\n")
	assert.Equal(t, Note{Title: "Groceries", Content: "milk\neggs"}, n)
}

func TestRepositoryAppendGet(t *testing.T) {
	repo := NewNoteRepository()

	assert.Equal(t, 0, repo.Append(Note{Title: "one", Content: "1"}))
	assert.Equal(t, 1, repo.Append(Note{Title: "two", Content: "2"}))
	assert.Equal(t, 2, repo.Len())

	n, err := repo.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "two", n.Title)

	_, err = repo.Get(2)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	_, err = repo.Get(-1)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	assert.Equal(t, []string{"one", "two"}, repo.Titles())
}

func TestRepositoryListIsCopy(t *testing.T) {
	repo := NewNoteRepository()
	src := []Note{{Title: "a", Content: "1"}}
	repo.Replace(src)
	src[0].Title = "changed"

	list := repo.List()
	list[0].Title = "mutated"

	n, err := repo.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", n.Title)
}
