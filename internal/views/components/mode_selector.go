package components

import (
	"static-map-viewer/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ModeSelector holds one toggle button per render mode
type ModeSelector struct {
	container *fyne.Container
	buttons   map[models.RenderMode]*widget.Button

	changeHandler func(models.RenderMode)
}

// NewModeSelector creates the render mode buttons
func NewModeSelector() *ModeSelector {
	ms := &ModeSelector{
		buttons: make(map[models.RenderMode]*widget.Button, len(models.RenderModes)),
	}

	objects := make([]fyne.CanvasObject, 0, len(models.RenderModes))
	for _, mode := range models.RenderModes {
		mode := mode
		button := widget.NewButton(mode.Label(), func() {
			if ms.changeHandler != nil {
				ms.changeHandler(mode)
			}
		})
		if mode == models.Schema {
			button.Importance = widget.HighImportance
		}
		ms.buttons[mode] = button
		objects = append(objects, button)
	}

	ms.container = container.NewGridWithColumns(len(objects), objects...)
	return ms
}

// SetChangeHandler sets the callback for mode button taps
func (ms *ModeSelector) SetChangeHandler(handler func(models.RenderMode)) {
	ms.changeHandler = handler
}

// SetActive highlights the button of the current mode
func (ms *ModeSelector) SetActive(active models.RenderMode) {
	fyne.Do(func() {
		for mode, button := range ms.buttons {
			if mode == active {
				button.Importance = widget.HighImportance
			} else {
				button.Importance = widget.MediumImportance
			}
			button.Refresh()
		}
	})
}

// GetContainer returns the selector container
func (ms *ModeSelector) GetContainer() *fyne.Container {
	return ms.container
}
