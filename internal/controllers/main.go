package controllers

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"mirror-notes/internal/llm"
	"mirror-notes/internal/logger"
	"mirror-notes/internal/models"
	"mirror-notes/internal/services"
	"mirror-notes/internal/views"

	"fyne.io/fyne/v2"
)

const (
	inputErrorTitle      = "Input Error"
	missingFieldsMessage = "Both title and content are required!"
	missingPromptMessage = "Prompt is required!"
)

// ClientFactory builds a remote client for a freshly entered API key.
type ClientFactory func(apiKey string) (llm.Client, error)

// MainController connects the window to the note and assistant services.
type MainController struct {
	noteService      *services.NoteService
	assistantService *services.AssistantService
	logger           logger.Logger

	mainView *views.MainView

	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup
}

// NewMainController creates a new main controller
func NewMainController(
	noteService *services.NoteService,
	assistantService *services.AssistantService,
	log logger.Logger,
) *MainController {
	ctx, cancel := context.WithCancel(context.Background())

	return &MainController{
		noteService:      noteService,
		assistantService: assistantService,
		logger:           log,
		ctx:              ctx,
		cancel:           cancel,
	}
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.mainView = view
	mc.setupViewEventHandlers()
}

func (mc *MainController) setupViewEventHandlers() {
	mc.mainView.SetSaveNoteHandler(mc.SaveNote)
	mc.mainView.SetSelectNoteHandler(mc.SelectNote)
	mc.mainView.SetAskHandler(mc.Ask)
}

// LoadNotes reads the stored list into the window. A missing file shows an empty list.
func (mc *MainController) LoadNotes() error {
	if err := mc.noteService.Load(mc.ctx); err != nil {
		mc.handleError("Loading notes failed", err)
		return err
	}
	mc.refreshNotes()
	mc.mainView.UpdateStatus("Ready")
	return nil
}

// SaveNote appends the note in the editor. Missing fields only produce a warning.
func (mc *MainController) SaveNote() {
	title, content := mc.mainView.NoteFields()

	_, err := mc.noteService.Save(mc.ctx, title, content)
	switch {
	case errors.Is(err, models.ErrEmptyTitle), errors.Is(err, models.ErrEmptyContent):
		mc.mainView.ShowWarning(inputErrorTitle, missingFieldsMessage)
		return
	case err != nil:
		mc.handleError("Saving note failed", err)
		return
	}

	mc.mainView.ClearNoteFields()
	mc.refreshNotes()
	mc.mainView.UpdateStatus("Note saved")
}

// SelectNote fills the editor with the stored note at index.
func (mc *MainController) SelectNote(index int) {
	note, err := mc.noteService.Select(index)
	if err != nil {
		mc.logger.Warning("MainController", "selected note missing", map[string]interface{}{
			"index": index,
		})
		return
	}
	mc.mainView.SetNoteFields(note.Title, note.Content)
}

// Ask sends the question off the UI goroutine and shows the answer when it arrives.
func (mc *MainController) Ask() {
	question := mc.mainView.Question()
	if strings.TrimSpace(question) == "" {
		mc.mainView.ShowWarning(inputErrorTitle, missingPromptMessage)
		return
	}
	if mc.mainView.AskInProgress() {
		return
	}

	title, content := mc.mainView.NoteFields()
	mc.mainView.SetAskInProgress(true)
	mc.mainView.UpdateStatus("Waiting for answer...")

	mc.pending.Add(1)
	go func() {
		defer mc.pending.Done()

		answer, err := mc.assistantService.Ask(mc.ctx, question, title, content)

		fyne.Do(func() {
			mc.mainView.SetAskInProgress(false)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				mc.handleError("Question failed", err)
				return
			}
			mc.mainView.SetResponse(answer)
			mc.mainView.UpdateStatus("Answer received")
		})
	}()
}

// ReloadNotes re-reads the store after an outside change. Safe to call from any goroutine.
func (mc *MainController) ReloadNotes() {
	if err := mc.noteService.Reload(mc.ctx); err != nil {
		mc.logger.Error("MainController", err, map[string]interface{}{
			"operation": "reload",
		})
		return
	}
	fyne.Do(func() {
		// our own saves come back through the watcher; leave the selection alone
		if slices.Equal(mc.noteService.Titles(), mc.mainView.NoteTitles()) {
			return
		}
		mc.mainView.UpdateStatus("Notes reloaded")
		mc.refreshNotes()
	})
}

// RequestAPIKey prompts for a key and installs a client built from it.
func (mc *MainController) RequestAPIKey(provider string, factory ClientFactory) {
	mc.mainView.PromptAPIKey(provider, func(key string) {
		client, err := factory(key)
		if err != nil {
			mc.handleError("API key rejected", err)
			return
		}
		mc.assistantService.SetClient(client)
		mc.mainView.UpdateStatus("API key set")
	})
}

func (mc *MainController) refreshNotes() {
	mc.mainView.SetNoteTitles(mc.noteService.Titles())
}

func (mc *MainController) handleError(operation string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{
		"operation": operation,
	})
	mc.mainView.UpdateStatus(fmt.Sprintf("%s: %v", operation, err))
	mc.mainView.ShowError(fmt.Errorf("%s: %w", operation, err))
}

// Shutdown cancels in-flight questions and waits for them to return.
func (mc *MainController) Shutdown() {
	mc.cancel()
	mc.pending.Wait()
}
