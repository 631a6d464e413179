package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays application status and information
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	noteInfo    *widget.Label
	modelInfo   *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

// createComponents initializes status bar components
func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.noteInfo = widget.NewLabel("No notes yet")
	sb.modelInfo = widget.NewLabel("Model: --")
}

// buildLayout constructs the status bar layout
func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.noteInfo,
		widget.NewSeparator(),
		sb.modelInfo,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetNoteCount(n int) {
	switch n {
	case 0:
		sb.noteInfo.SetText("No notes yet")
	case 1:
		sb.noteInfo.SetText("1 note")
	default:
		sb.noteInfo.SetText(fmt.Sprintf("%d notes", n))
	}
}

func (sb *StatusBar) GetNoteInfo() string {
	return sb.noteInfo.Text
}

func (sb *StatusBar) SetModel(provider, model string) {
	sb.modelInfo.SetText(fmt.Sprintf("Model: %s/%s", provider, model))
}

// Reset resets the status bar to initial state
func (sb *StatusBar) Reset() {
	sb.statusLabel.SetText("Ready")
	sb.noteInfo.SetText("No notes yet")
	sb.modelInfo.SetText("Model: --")
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
