package views

import (
	"errors"

	"mirror-notes/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const AskLabel = "Ask GPT-4"

// MainView is the single application window: notes on the left, questions on the right.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	editor        *components.NoteEditor
	noteList      *components.NoteList
	askPanel      *components.AskPanel
	statusBar     *components.StatusBar

	// Event handlers - connected to controller
	saveNoteHandler   func()
	selectNoteHandler func(int)
	askHandler        func()
}

// NewMainView creates a new main view
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.editor = components.NewNoteEditor()
	mv.noteList = components.NewNoteList()
	mv.askPanel = components.NewAskPanel(AskLabel)
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	left := container.NewBorder(mv.editor.GetContainer(), nil, nil, nil, mv.noteList.GetContainer())
	right := container.NewBorder(mv.askPanel.GetContainer(), nil, nil, nil)

	split := container.NewHSplit(left, right)
	split.Offset = 0.5

	mv.mainContainer = container.NewBorder(
		nil,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		split,
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupEventHandlers() {
	mv.editor.SetSaveHandler(func() {
		if mv.saveNoteHandler != nil {
			mv.saveNoteHandler()
		}
	})

	mv.noteList.SetSelectHandler(func(index int) {
		if mv.selectNoteHandler != nil {
			mv.selectNoteHandler(index)
		}
	})

	mv.askPanel.SetAskHandler(func() {
		if mv.askHandler != nil {
			mv.askHandler()
		}
	})
}

// Event handler setters - called by controller

func (mv *MainView) SetSaveNoteHandler(handler func()) {
	mv.saveNoteHandler = handler
}

func (mv *MainView) SetSelectNoteHandler(handler func(int)) {
	mv.selectNoteHandler = handler
}

func (mv *MainView) SetAskHandler(handler func()) {
	mv.askHandler = handler
}

// UI accessors and updates - called by controller on the UI goroutine

func (mv *MainView) NoteFields() (title, content string) {
	return mv.editor.Fields()
}

func (mv *MainView) SetNoteFields(title, content string) {
	mv.editor.SetFields(title, content)
}

func (mv *MainView) ClearNoteFields() {
	mv.editor.Clear()
}

func (mv *MainView) SetNoteTitles(titles []string) {
	mv.noteList.SetTitles(titles)
	mv.statusBar.SetNoteCount(len(titles))
}

func (mv *MainView) NoteTitles() []string {
	return mv.noteList.Titles()
}

func (mv *MainView) SelectNote(index int) {
	mv.noteList.Select(index)
}

func (mv *MainView) SelectedNote() int {
	return mv.noteList.Selected()
}

func (mv *MainView) Question() string {
	return mv.askPanel.Question()
}

func (mv *MainView) SetQuestion(text string) {
	mv.askPanel.SetQuestion(text)
}

func (mv *MainView) SetResponse(text string) {
	mv.askPanel.SetResponse(text)
}

func (mv *MainView) Response() string {
	return mv.askPanel.Response()
}

func (mv *MainView) SetAskInProgress(busy bool) {
	mv.askPanel.SetBusy(busy)
}

func (mv *MainView) AskInProgress() bool {
	return mv.askPanel.Busy()
}

func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

func (mv *MainView) Status() string {
	return mv.statusBar.GetStatus()
}

func (mv *MainView) SetModelInfo(provider, model string) {
	mv.statusBar.SetModel(provider, model)
}

// Dialogs

// ShowWarning shows message next to the theme's warning icon.
func (mv *MainView) ShowWarning(title, message string) {
	dialog.NewCustom(title, "OK", warningContent(message), mv.window).Show()
}

func warningContent(message string) *fyne.Container {
	return container.NewHBox(widget.NewIcon(theme.WarningIcon()), widget.NewLabel(message))
}

func (mv *MainView) ShowError(err error) {
	dialog.ShowError(err, mv.window)
}

// PromptAPIKey asks for a key in a password field. onKey is only called with a
// non-empty key.
func (mv *MainView) PromptAPIKey(provider string, onKey func(string)) {
	entry := widget.NewPasswordEntry()
	entry.Validator = func(s string) error {
		if s == "" {
			return errors.New("key is required")
		}
		return nil
	}

	label := "Enter your OpenAI API Key:"
	if provider == "gemini" {
		label = "Enter your Gemini API Key:"
	}

	form := dialog.NewForm("API Key", "OK", "Cancel",
		[]*widget.FormItem{widget.NewFormItem(label, entry)},
		func(ok bool) {
			if ok && entry.Text != "" {
				onKey(entry.Text)
			}
		},
		mv.window,
	)
	form.Resize(fyne.NewSize(420, 160))
	form.Show()
}

// Show displays the main window
func (mv *MainView) Show() {
	mv.window.Show()
}
