package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SearchPanel holds the address search controls and the address label
type SearchPanel struct {
	container    *fyne.Container
	queryEntry   *widget.Entry
	postalCheck  *widget.Check
	searchButton *widget.Button
	resetButton  *widget.Button
	addressLabel *widget.Label

	searchHandler func(query string, wantPostalCode bool)
	resetHandler  func()
}

// NewSearchPanel creates the search controls
func NewSearchPanel() *SearchPanel {
	sp := &SearchPanel{}
	sp.createComponents()
	sp.buildLayout()
	return sp
}

func (sp *SearchPanel) createComponents() {
	sp.queryEntry = widget.NewEntry()
	sp.queryEntry.SetPlaceHolder("Search address")
	sp.queryEntry.OnSubmitted = func(string) { sp.submit() }

	sp.postalCheck = widget.NewCheck("Postal code", nil)

	sp.searchButton = widget.NewButton("Search", sp.submit)
	sp.searchButton.Importance = widget.HighImportance

	sp.resetButton = widget.NewButton("Reset", func() {
		if sp.resetHandler != nil {
			sp.resetHandler()
		}
	})

	sp.addressLabel = widget.NewLabel("")
	sp.addressLabel.Wrapping = fyne.TextWrapWord
}

func (sp *SearchPanel) buildLayout() {
	actions := container.NewHBox(sp.postalCheck, sp.searchButton, sp.resetButton)
	sp.container = container.NewVBox(
		container.NewBorder(nil, nil, nil, actions, sp.queryEntry),
		sp.addressLabel,
	)
}

func (sp *SearchPanel) submit() {
	if sp.searchHandler != nil {
		sp.searchHandler(sp.queryEntry.Text, sp.postalCheck.Checked)
	}
}

// SetSearchHandler sets the callback for search requests
func (sp *SearchPanel) SetSearchHandler(handler func(query string, wantPostalCode bool)) {
	sp.searchHandler = handler
}

// SetResetHandler sets the callback for the reset button
func (sp *SearchPanel) SetResetHandler(handler func()) {
	sp.resetHandler = handler
}

// SetAddress updates the address label
func (sp *SearchPanel) SetAddress(text string) {
	fyne.Do(func() {
		sp.addressLabel.SetText(text)
	})
}

// Clear empties the query field
func (sp *SearchPanel) Clear() {
	fyne.Do(func() {
		sp.queryEntry.SetText("")
	})
}

// GetContainer returns the panel container
func (sp *SearchPanel) GetContainer() *fyne.Container {
	return sp.container
}
