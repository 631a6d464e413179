package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// NoteEditor holds the title and content fields and the save button.
type NoteEditor struct {
	container    *fyne.Container
	titleEntry   *widget.Entry
	contentEntry *widget.Entry
	saveButton   *widget.Button

	saveHandler func()
}

// NewNoteEditor creates a new note editor component
func NewNoteEditor() *NoteEditor {
	ne := &NoteEditor{}
	ne.createComponents()
	ne.buildLayout()
	return ne
}

func (ne *NoteEditor) createComponents() {
	ne.titleEntry = widget.NewEntry()
	ne.titleEntry.SetPlaceHolder("Title")

	ne.contentEntry = widget.NewMultiLineEntry()
	ne.contentEntry.Wrapping = fyne.TextWrapWord
	ne.contentEntry.SetMinRowsVisible(20)

	ne.saveButton = widget.NewButton("Save Note", func() {
		if ne.saveHandler != nil {
			ne.saveHandler()
		}
	})
	ne.saveButton.Importance = widget.HighImportance
}

func (ne *NoteEditor) buildLayout() {
	ne.container = container.NewVBox(
		widget.NewLabel("Note Title"),
		ne.titleEntry,
		widget.NewLabel("Note Content"),
		ne.contentEntry,
		ne.saveButton,
	)
}

func (ne *NoteEditor) SetSaveHandler(handler func()) {
	ne.saveHandler = handler
}

// Fields returns the raw text of both fields.
func (ne *NoteEditor) Fields() (title, content string) {
	return ne.titleEntry.Text, ne.contentEntry.Text
}

func (ne *NoteEditor) SetFields(title, content string) {
	ne.titleEntry.SetText(title)
	ne.contentEntry.SetText(content)
}

func (ne *NoteEditor) Clear() {
	ne.SetFields("", "")
}

func (ne *NoteEditor) GetContainer() *fyne.Container {
	return ne.container
}
