package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// AskPanel is the question entry, the response area and the ask button.
type AskPanel struct {
	container     *fyne.Container
	questionEntry *widget.Entry
	responseEntry *widget.Entry
	askButton     *widget.Button
	progress      *widget.ProgressBarInfinite

	askHandler func()
}

// NewAskPanel creates a new ask panel component
func NewAskPanel(label string) *AskPanel {
	ap := &AskPanel{}
	ap.createComponents(label)
	ap.buildLayout(label)
	return ap
}

func (ap *AskPanel) createComponents(label string) {
	ap.questionEntry = widget.NewEntry()
	ap.questionEntry.SetPlaceHolder("Ask about your notes")
	ap.questionEntry.OnSubmitted = func(string) {
		ap.fire()
	}

	ap.responseEntry = widget.NewMultiLineEntry()
	ap.responseEntry.Wrapping = fyne.TextWrapWord
	ap.responseEntry.SetMinRowsVisible(20)

	ap.askButton = widget.NewButton(label, ap.fire)
	ap.askButton.Importance = widget.HighImportance

	ap.progress = widget.NewProgressBarInfinite()
	ap.progress.Stop()
	ap.progress.Hide()
}

func (ap *AskPanel) buildLayout(label string) {
	ap.container = container.NewVBox(
		widget.NewLabel(label),
		ap.questionEntry,
		widget.NewLabel(label+" Response"),
		ap.responseEntry,
		ap.askButton,
		ap.progress,
	)
}

func (ap *AskPanel) fire() {
	if ap.askHandler != nil && !ap.askButton.Disabled() {
		ap.askHandler()
	}
}

func (ap *AskPanel) SetAskHandler(handler func()) {
	ap.askHandler = handler
}

func (ap *AskPanel) Question() string {
	return ap.questionEntry.Text
}

func (ap *AskPanel) SetQuestion(text string) {
	ap.questionEntry.SetText(text)
}

func (ap *AskPanel) SetResponse(text string) {
	ap.responseEntry.SetText(text)
}

func (ap *AskPanel) Response() string {
	return ap.responseEntry.Text
}

// SetBusy disables asking while a request is in flight.
func (ap *AskPanel) SetBusy(busy bool) {
	if busy {
		ap.askButton.Disable()
		ap.progress.Show()
		ap.progress.Start()
		return
	}
	ap.progress.Stop()
	ap.progress.Hide()
	ap.askButton.Enable()
}

func (ap *AskPanel) Busy() bool {
	return ap.askButton.Disabled()
}

func (ap *AskPanel) GetContainer() *fyne.Container {
	return ap.container
}
