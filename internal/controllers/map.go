package controllers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"static-map-viewer/internal/logger"
	"static-map-viewer/internal/models"
	"static-map-viewer/internal/services"

	"fyne.io/fyne/v2"
)

// MapFetcher renders a map request to an image.
type MapFetcher interface {
	Fetch(ctx context.Context, req models.MapRequest) (image.Image, error)
}

// Geocoder resolves addresses and coordinates.
type Geocoder interface {
	Forward(ctx context.Context, query string) (models.Coordinate, error)
	Reverse(ctx context.Context, coord models.Coordinate, includePostalCode bool) (models.GeocodeResult, error)
}

// MapView is the part of the UI the controller drives.
type MapView interface {
	SetMapImage(img image.Image)
	SetAddress(text string)
	ClearSearch()
	SetRenderMode(mode models.RenderMode)
	UpdateStatus(status string)
	ShowError(title string, err error)
}

// ErrClosed is returned by Render after Shutdown.
var ErrClosed = errors.New("controller is shut down")

// MapController owns the view state. Every user action mutates the state
// and then renders it; the fetch always sees the state as mutated.
type MapController struct {
	fetcher  MapFetcher
	geocoder Geocoder
	view     MapView
	logger   logger.Logger

	mu      sync.Mutex
	state   *models.ViewState
	address string
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewMapController creates a controller in the startup state.
func NewMapController(fetcher MapFetcher, geocoder Geocoder, log logger.Logger) *MapController {
	ctx, cancel := context.WithCancel(context.Background())
	return &MapController{
		fetcher:  fetcher,
		geocoder: geocoder,
		logger:   log,
		state:    models.NewViewState(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetMapView connects the view and routes its events to the controller.
func (mc *MapController) SetMapView(view MapView) {
	mc.view = view
	if binder, ok := view.(EventBinder); ok {
		binder.SetKeyHandler(mc.HandleKey)
		binder.SetRenderModeHandler(mc.SetRenderMode)
		binder.SetSearchHandler(func(query string, wantPostalCode bool) {
			_ = mc.Search(query, wantPostalCode)
		})
		binder.SetResetHandler(mc.Reset)
	}
}

// EventBinder is implemented by views that emit user events.
type EventBinder interface {
	SetKeyHandler(handler func(fyne.KeyName) bool)
	SetRenderModeHandler(handler func(models.RenderMode))
	SetSearchHandler(handler func(query string, wantPostalCode bool))
	SetResetHandler(handler func())
}

// State returns a copy of the current view state.
func (mc *MapController) State() models.ViewState {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.state.Snapshot()
}

// Address returns the address label text.
func (mc *MapController) Address() string {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.address
}

// HandleKey dispatches a keyboard event. It reports whether the key is bound.
func (mc *MapController) HandleKey(key fyne.KeyName) bool {
	switch key {
	case fyne.KeyPageUp:
		mc.ZoomIn()
	case fyne.KeyPageDown:
		mc.ZoomOut()
	case fyne.KeyUp:
		mc.Pan(models.Up)
	case fyne.KeyDown:
		mc.Pan(models.Down)
	case fyne.KeyLeft:
		mc.Pan(models.Left)
	case fyne.KeyRight:
		mc.Pan(models.Right)
	default:
		return false
	}
	return true
}

// ZoomIn zooms in one level and renders.
func (mc *MapController) ZoomIn() {
	mc.mutate("zoom in", func(s *models.ViewState) bool { return s.ZoomIn() })
	_ = mc.Render()
}

// ZoomOut zooms out one level and renders.
func (mc *MapController) ZoomOut() {
	mc.mutate("zoom out", func(s *models.ViewState) bool { return s.ZoomOut() })
	_ = mc.Render()
}

// Pan moves the center one pan step and renders.
func (mc *MapController) Pan(d models.Direction) {
	mc.mutate("pan "+d.String(), func(s *models.ViewState) bool { return s.Pan(d) })
	_ = mc.Render()
}

// SetRenderMode switches the tile style and renders.
func (mc *MapController) SetRenderMode(mode models.RenderMode) {
	mc.mutate("render mode "+mode.Code(), func(s *models.ViewState) bool { return s.SetMode(mode) })
	if mc.view != nil {
		mc.view.SetRenderMode(mode)
	}
	_ = mc.Render()
}

// Search geocodes query, centers the map on the first match with a marker
// and shows its address. Blank queries are ignored. A failed reverse lookup
// keeps the new center and marker.
func (mc *MapController) Search(query string, wantPostalCode bool) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	coord, err := mc.geocoder.Forward(mc.ctx, query)
	if err != nil {
		mc.reportSearchError(query, err)
		return err
	}

	mc.mutate("search", func(s *models.ViewState) bool {
		s.PlaceMarker(coord)
		return true
	})

	result, err := mc.geocoder.Reverse(mc.ctx, coord, wantPostalCode)
	if err != nil {
		mc.reportSearchError(query, err)
		_ = mc.Render()
		return err
	}

	label := result.Label()
	mc.mu.Lock()
	mc.address = label
	mc.mu.Unlock()
	if mc.view != nil {
		mc.view.SetAddress(label)
	}

	mc.logger.Info("MapController", "search resolved", map[string]interface{}{
		"query":      query,
		"coordinate": coord.String(),
		"address":    label,
	})

	return mc.Render()
}

// Reset restores the default center, removes the marker and clears the
// search inputs.
func (mc *MapController) Reset() {
	mc.mutate("reset", func(s *models.ViewState) bool {
		s.Reset()
		return true
	})

	mc.mu.Lock()
	mc.address = ""
	mc.mu.Unlock()

	if mc.view != nil {
		mc.view.SetAddress("")
		mc.view.ClearSearch()
	}
	_ = mc.Render()
}

// Render fetches the map for the current state and displays it. On failure
// the previously displayed image stays in place.
func (mc *MapController) Render() error {
	mc.mu.Lock()
	if mc.closed {
		mc.mu.Unlock()
		return ErrClosed
	}
	req := models.NewMapRequest(mc.state.Snapshot())
	mc.mu.Unlock()

	img, err := mc.fetcher.Fetch(mc.ctx, req)
	if err != nil {
		mc.logger.Error("MapController", err, map[string]interface{}{
			"operation": "render",
			"zoom":      req.Zoom,
			"center":    req.Center.String(),
			"mode":      req.Mode.Code(),
		})
		mc.handleError("Map update failed", err)
		return err
	}

	if mc.view != nil {
		mc.view.SetMapImage(img)
		mc.view.UpdateStatus(describe(req))
	}
	return nil
}

// Shutdown stops further renders and cancels any request in flight.
func (mc *MapController) Shutdown() {
	mc.mu.Lock()
	if mc.closed {
		mc.mu.Unlock()
		return
	}
	mc.closed = true
	mc.mu.Unlock()

	mc.cancel()
	mc.logger.Info("MapController", "shutdown complete", nil)
}

func (mc *MapController) mutate(action string, fn func(*models.ViewState) bool) {
	mc.mu.Lock()
	changed := fn(mc.state)
	snapshot := mc.state.Snapshot()
	mc.mu.Unlock()

	mc.logger.Debug("MapController", action, map[string]interface{}{
		"changed":  changed,
		"zoom":     snapshot.Zoom,
		"center":   snapshot.Center.String(),
		"pan_step": snapshot.PanStep,
		"mode":     snapshot.Mode.Code(),
	})
}

func (mc *MapController) reportSearchError(query string, err error) {
	mc.logger.Error("MapController", err, map[string]interface{}{
		"operation": "search",
		"query":     query,
	})

	if services.IsNotFound(err) {
		mc.handleError("Address not found", fmt.Errorf("nothing found for %q", query))
		return
	}
	mc.handleError("Search failed", err)
}

// handleError reports err in the status bar and an error dialog.
func (mc *MapController) handleError(title string, err error) {
	if mc.view == nil {
		return
	}
	mc.view.UpdateStatus(title)
	mc.view.ShowError(title, err)
}

func describe(req models.MapRequest) string {
	status := fmt.Sprintf("Zoom %d | %.6f, %.6f | %s", req.Zoom, req.Center.Longitude, req.Center.Latitude, req.Mode.Label())
	if req.Marker != nil {
		status += " | marker"
	}
	return status
}
