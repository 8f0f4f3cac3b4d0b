package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// MapDisplay shows the static map at its native size
type MapDisplay struct {
	container   *fyne.Container
	mapImage    *canvas.Image
	placeholder image.Image
	hasMap      bool
}

// NewMapDisplay creates a map area of the given pixel size
func NewMapDisplay(width, height int) *MapDisplay {
	display := &MapDisplay{}
	display.placeholder = createPlaceholderImage(width, height)

	display.mapImage = canvas.NewImageFromImage(display.placeholder)
	display.mapImage.FillMode = canvas.ImageFillOriginal
	display.mapImage.ScaleMode = canvas.ImageScaleFastest
	display.mapImage.SetMinSize(fyne.NewSize(float32(width), float32(height)))

	background := canvas.NewRectangle(color.RGBA{R: 252, G: 252, B: 252, A: 255})
	display.container = container.NewStack(background, display.mapImage)
	return display
}

func createPlaceholderImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	lightGray := color.RGBA{R: 240, G: 240, B: 240, A: 255}
	borderColor := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				img.Set(x, y, borderColor)
				continue
			}
			img.Set(x, y, lightGray)
		}
	}

	return img
}

// SetImage replaces the displayed map. A nil image restores the placeholder.
func (md *MapDisplay) SetImage(img image.Image) {
	fyne.Do(func() {
		if img != nil {
			md.mapImage.Image = img
			md.hasMap = true
		} else {
			md.mapImage.Image = md.placeholder
			md.hasMap = false
		}
		md.mapImage.Refresh()
	})
}

// HasMap returns true once a fetched map is shown
func (md *MapDisplay) HasMap() bool {
	return md.hasMap
}

// GetContainer returns the map container
func (md *MapDisplay) GetContainer() *fyne.Container {
	return md.container
}
