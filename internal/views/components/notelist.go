package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// NoteList shows saved note titles in list order.
type NoteList struct {
	container *fyne.Container
	list      *widget.List
	titles    []string
	selected  int

	selectHandler func(int)
}

// NewNoteList creates a new note list component
func NewNoteList() *NoteList {
	nl := &NoteList{selected: -1}
	nl.createComponents()
	nl.buildLayout()
	return nl
}

func (nl *NoteList) createComponents() {
	nl.list = widget.NewList(
		func() int {
			return len(nl.titles)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < len(nl.titles) {
				item.(*widget.Label).SetText(nl.titles[id])
			}
		},
	)

	nl.list.OnSelected = func(id widget.ListItemID) {
		nl.selected = id
		if nl.selectHandler != nil {
			nl.selectHandler(id)
		}
	}
	nl.list.OnUnselected = func(widget.ListItemID) {
		nl.selected = -1
	}
}

func (nl *NoteList) buildLayout() {
	// the list needs a border container to expand vertically
	nl.container = container.NewBorder(
		widget.NewLabel("Saved Notes"),
		nil, nil, nil,
		nl.list,
	)
}

func (nl *NoteList) SetSelectHandler(handler func(int)) {
	nl.selectHandler = handler
}

// SetTitles replaces the displayed titles and clears the selection.
func (nl *NoteList) SetTitles(titles []string) {
	nl.titles = append([]string(nil), titles...)
	nl.list.UnselectAll()
	nl.selected = -1
	nl.list.Refresh()
}

func (nl *NoteList) Titles() []string {
	return append([]string(nil), nl.titles...)
}

func (nl *NoteList) Select(index int) {
	nl.list.Select(index)
}

// Selected returns the selected row, or -1 when nothing is selected.
func (nl *NoteList) Selected() int {
	return nl.selected
}

func (nl *NoteList) GetContainer() *fyne.Container {
	return nl.container
}
