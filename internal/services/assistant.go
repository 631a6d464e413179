package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mirror-notes/internal/llm"
	"mirror-notes/internal/logger"
	"mirror-notes/internal/prompt"
)

var ErrEmptyQuestion = errors.New("prompt is required")

// AssistantService forwards questions, with note context, to the remote model.
type AssistantService struct {
	notes  *NoteService
	logger logger.Logger

	mu     sync.RWMutex
	client llm.Client
}

func NewAssistantService(notes *NoteService, client llm.Client, log logger.Logger) *AssistantService {
	return &AssistantService{
		notes:  notes,
		client: client,
		logger: log,
	}
}

// SetClient swaps the remote client, e.g. once an API key has been entered.
func (as *AssistantService) SetClient(client llm.Client) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.client = client
}

// Ask builds the prompt from all titles plus the note currently being edited.
func (as *AssistantService) Ask(ctx context.Context, question, currentTitle, currentContent string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	as.mu.RLock()
	client := as.client
	as.mu.RUnlock()
	if client == nil {
		return "", llm.ErrMissingAPIKey
	}

	full := prompt.Build(as.notes.Titles(), currentTitle, strings.TrimSpace(currentContent), question)

	requestID := uuid.NewString()
	start := time.Now()
	as.logger.Debug("AssistantService", "sending question", map[string]interface{}{
		"request_id": requestID,
		"prompt_len": len(full),
	})

	answer, err := client.Complete(ctx, full)
	if err != nil {
		as.logger.Error("AssistantService", err, map[string]interface{}{
			"request_id": requestID,
		})
		return "", err
	}

	as.logger.Info("AssistantService", "answer received", map[string]interface{}{
		"request_id":  requestID,
		"duration_ms": time.Since(start).Milliseconds(),
		"answer_len":  len(answer),
	})
	return answer, nil
}
