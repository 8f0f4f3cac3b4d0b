package views

import (
	"image"

	"static-map-viewer/internal/models"
	"static-map-viewer/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// MainView is the map viewer window content
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	mapDisplay    *components.MapDisplay
	modeSelector  *components.ModeSelector
	searchPanel   *components.SearchPanel
	statusBar     *components.StatusBar

	// Event handlers - connected to controller
	keyHandler func(fyne.KeyName) bool
}

// NewMainView creates the view and installs it as the window content
func NewMainView(window fyne.Window, imagePath string) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents(imagePath)
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents(imagePath string) {
	mv.mapDisplay = components.NewMapDisplay(models.MapWidth, models.MapHeight)
	mv.modeSelector = components.NewModeSelector()
	mv.searchPanel = components.NewSearchPanel()
	mv.statusBar = components.NewStatusBar(imagePath)
}

func (mv *MainView) buildLayout() {
	bottomArea := container.NewVBox(
		mv.searchPanel.GetContainer(),
		mv.statusBar.GetContainer(),
	)

	mv.mainContainer = container.NewBorder(
		mv.modeSelector.GetContainer(), // top
		bottomArea,                     // bottom
		nil,                            // left
		nil,                            // right
		mv.mapDisplay.GetContainer(),   // center
	)

	mv.window.SetContent(mv.mainContainer)
}

// setupEventHandlers routes window level keys to the controller
func (mv *MainView) setupEventHandlers() {
	mv.window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if mv.keyHandler != nil {
			mv.keyHandler(event.Name)
		}
	})
}

// Event handler setters - called by controller

// SetKeyHandler sets the handler for zoom and pan keys
func (mv *MainView) SetKeyHandler(handler func(fyne.KeyName) bool) {
	mv.keyHandler = handler
}

// SetRenderModeHandler sets the handler for the mode buttons
func (mv *MainView) SetRenderModeHandler(handler func(models.RenderMode)) {
	mv.modeSelector.SetChangeHandler(handler)
}

// SetSearchHandler sets the handler for search requests
func (mv *MainView) SetSearchHandler(handler func(query string, wantPostalCode bool)) {
	mv.searchPanel.SetSearchHandler(handler)
}

// SetResetHandler sets the handler for the reset button
func (mv *MainView) SetResetHandler(handler func()) {
	mv.searchPanel.SetResetHandler(handler)
}

// UI update methods - called by controller

// SetMapImage shows a freshly fetched map
func (mv *MainView) SetMapImage(img image.Image) {
	mv.mapDisplay.SetImage(img)
}

// SetAddress updates the address label
func (mv *MainView) SetAddress(text string) {
	mv.searchPanel.SetAddress(text)
}

// ClearSearch empties the search field
func (mv *MainView) ClearSearch() {
	mv.searchPanel.Clear()
}

// SetRenderMode highlights the active mode button
func (mv *MainView) SetRenderMode(mode models.RenderMode) {
	mv.modeSelector.SetActive(mode)
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		dialog.ShowError(err, mv.window)
	})
}

// ShowConfirm displays a confirmation dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

// Show displays the window
func (mv *MainView) Show() {
	mv.window.Show()
}

// GetContainer returns the main container
func (mv *MainView) GetContainer() *fyne.Container {
	return mv.mainContainer
}
