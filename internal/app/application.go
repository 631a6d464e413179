package app

import (
	"mirror-notes/internal/config"
	"mirror-notes/internal/controllers"
	"mirror-notes/internal/logger"
	"mirror-notes/internal/shutdown"
	"mirror-notes/internal/storage"
	"mirror-notes/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName     = "Mirror Notes"
	AppID       = "com.mirrornotes.desktop"
	AppVersion  = "1.0.0"
	WindowTitle = "Notes App with GPT-4"
)

// Application is the desktop window plus everything it drives.
type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	core       *Core
	view       *views.MainView
	controller *controllers.MainController
	shutdown   *shutdown.Manager
	logger     logger.Logger
}

func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	return newApplication(app.NewWithID(AppID), cfg, log)
}

func newApplication(fyneApp fyne.App, cfg *config.Config, log logger.Logger) (*Application, error) {
	core, err := NewCore(cfg, log)
	if err != nil {
		return nil, err
	}

	window := fyneApp.NewWindow(WindowTitle)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()
	window.SetMaster()

	view := views.NewMainView(window)
	view.SetModelInfo(cfg.LLM.Provider, cfg.LLM.Model)

	controller := controllers.NewMainController(core.Notes, core.Assistant, log)
	controller.SetMainView(view)

	a := &Application{
		fyneApp:    fyneApp,
		window:     window,
		core:       core,
		view:       view,
		controller: controller,
		shutdown:   shutdown.NewManager(log),
		logger:     log,
	}

	a.shutdown.Register("store", shutdown.Func(func() {
		if err := core.Close(); err != nil {
			log.Error("Application", err, map[string]interface{}{"step": "store"})
		}
	}))
	a.shutdown.Register("controller", controller)

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version":    AppVersion,
		"notes_file": cfg.NotesFile,
		"backend":    cfg.Storage.Backend,
		"provider":   cfg.LLM.Provider,
		"model":      cfg.LLM.Model,
	})
	return a, nil
}

// Start loads notes, starts the file watcher and asks for a missing API key.
func (a *Application) Start() error {
	cfg := a.core.Config

	if err := a.controller.LoadNotes(); err != nil {
		return err
	}

	if cfg.Storage.Watch && cfg.Storage.Backend == config.BackendJSON {
		watcher, err := storage.NewWatcher(cfg.NotesFile, storage.DefaultDebounce, a.controller.ReloadNotes, a.logger)
		if err != nil {
			a.logger.Warning("Application", "notes file watcher disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			a.shutdown.Register("watcher", watcher)
		}
	}

	if cfg.LLM.APIKey == "" {
		a.controller.RequestAPIKey(cfg.LLM.Provider, a.core.ClientForKey)
	}
	return nil
}

// Run shows the window and blocks until it is closed.
func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.shutdown.Shutdown()
		a.window.Close()
	})

	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.view.Show()
	if err := a.Start(); err != nil {
		a.logger.Error("Application", err, map[string]interface{}{"step": "start"})
	}

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}
