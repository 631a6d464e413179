package storage

import (
	"context"
	"fmt"

	"mirror-notes/internal/config"
	"mirror-notes/internal/models"
)

// Store persists the whole note list. Every Save replaces what was stored before.
type Store interface {
	Load(ctx context.Context) ([]models.Note, error)
	Save(ctx context.Context, notes []models.Note) error
	Close() error
}

// Open builds the store selected by cfg.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendJSON, "":
		return NewJSONFileStore(cfg.NotesFile), nil
	case config.BackendBolt:
		return OpenBoltStore(cfg.NotesFile)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
