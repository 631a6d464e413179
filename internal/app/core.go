package app

import (
	"fmt"

	"mirror-notes/internal/config"
	"mirror-notes/internal/llm"
	"mirror-notes/internal/logger"
	"mirror-notes/internal/models"
	"mirror-notes/internal/services"
	"mirror-notes/internal/storage"
)

// Core is the UI-independent part of the application, shared by the window and
// the command line.
type Core struct {
	Config    *config.Config
	Logger    logger.Logger
	Store     storage.Store
	Notes     *services.NoteService
	Assistant *services.AssistantService
	Importer  *services.ImportService
}

func NewCore(cfg *config.Config, log logger.Logger) (*Core, error) {
	store, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	notes := services.NewNoteService(store, models.NewNoteRepository(), log)

	return &Core{
		Config:    cfg,
		Logger:    log,
		Store:     store,
		Notes:     notes,
		Assistant: services.NewAssistantService(notes, client, log),
		Importer:  services.NewImportService(notes, log),
	}, nil
}

// ClientForKey builds a client like the configured one but with apiKey.
func (c *Core) ClientForKey(apiKey string) (llm.Client, error) {
	cfg := c.Config.LLM
	cfg.APIKey = apiKey
	return llm.NewClient(cfg)
}

func (c *Core) Close() error {
	return c.Store.Close()
}
