package models

import (
	"fmt"
	"strconv"
)

const (
	MinZoom = 0
	MaxZoom = 17

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	DefaultZoom    = 5
	DefaultPanStep = 20.0

	// StandardPinStyle is the static map code for the red pin used by search markers.
	StandardPinStyle = "pm2rdm"
)

// DefaultCenter is the map center shown at startup and after a reset.
var DefaultCenter = Coordinate{Longitude: 37.977751, Latitude: 55.757718}

// Coordinate is a point in degrees.
type Coordinate struct {
	Longitude float64
	Latitude  float64
}

// String renders the coordinate in the "lon,lat" form both remote APIs expect.
func (c Coordinate) String() string {
	return formatDegrees(c.Longitude) + "," + formatDegrees(c.Latitude)
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderMode selects the map tile style.
type RenderMode int

const (
	Schema RenderMode = iota
	Satellite
	Hybrid
)

// RenderModes lists the modes in the order their controls are shown.
var RenderModes = []RenderMode{Schema, Satellite, Hybrid}

// Code returns the static map layer token for the mode.
func (m RenderMode) Code() string {
	switch m {
	case Satellite:
		return "sat"
	case Hybrid:
		return "sat,skl"
	default:
		return "map"
	}
}

// Label returns the caption used on the mode controls.
func (m RenderMode) Label() string {
	switch m {
	case Satellite:
		return "Satellite"
	case Hybrid:
		return "Hybrid"
	default:
		return "Schema"
	}
}

func (m RenderMode) String() string {
	return m.Label()
}

// Marker is a pin drawn on the map.
type Marker struct {
	Position Coordinate
	Style    string
}

// String renders the marker as "lon,lat,style".
func (m Marker) String() string {
	return m.Position.String() + "," + m.Style
}

// Direction is a keyboard pan direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ViewState is everything the map request depends on. It is mutated in
// place by the controller and never persisted.
type ViewState struct {
	Center  Coordinate
	Zoom    int
	Mode    RenderMode
	PanStep float64
	Marker  *Marker
}

// NewViewState returns the startup state.
func NewViewState() *ViewState {
	return &ViewState{
		Center:  DefaultCenter,
		Zoom:    DefaultZoom,
		Mode:    Schema,
		PanStep: DefaultPanStep,
	}
}

// ZoomIn increments the zoom level and halves the pan step. It reports
// false at MaxZoom.
func (s *ViewState) ZoomIn() bool {
	if s.Zoom >= MaxZoom {
		return false
	}
	s.Zoom++
	s.PanStep /= 2
	return true
}

// ZoomOut decrements the zoom level and doubles the pan step. It reports
// false at MinZoom.
func (s *ViewState) ZoomOut() bool {
	if s.Zoom <= MinZoom {
		return false
	}
	s.Zoom--
	s.PanStep *= 2
	return true
}

// Pan moves the center by one pan step. A latitude move that would leave
// [-90,90] is refused. A longitude move past ±180 snaps to the opposite
// bound exactly; the overflow is dropped.
func (s *ViewState) Pan(d Direction) bool {
	switch d {
	case Up:
		next := s.Center.Latitude + s.PanStep
		if next > MaxLatitude {
			return false
		}
		s.Center.Latitude = next
	case Down:
		next := s.Center.Latitude - s.PanStep
		if next < MinLatitude {
			return false
		}
		s.Center.Latitude = next
	case Right:
		next := s.Center.Longitude + s.PanStep
		if next > MaxLongitude {
			next = MinLongitude
		}
		s.Center.Longitude = next
	case Left:
		next := s.Center.Longitude - s.PanStep
		if next < MinLongitude {
			next = MaxLongitude
		}
		s.Center.Longitude = next
	default:
		return false
	}
	return true
}

// SetMode switches the render mode.
func (s *ViewState) SetMode(mode RenderMode) bool {
	if s.Mode == mode {
		return false
	}
	s.Mode = mode
	return true
}

// PlaceMarker centers the map on c and drops a standard pin there.
func (s *ViewState) PlaceMarker(c Coordinate) {
	s.Center = c
	s.Marker = &Marker{Position: c, Style: StandardPinStyle}
}

// Reset restores the default center and removes the marker. Zoom, pan step
// and mode are kept.
func (s *ViewState) Reset() {
	s.Center = DefaultCenter
	s.Marker = nil
}

// Snapshot returns a copy that shares nothing with s.
func (s *ViewState) Snapshot() ViewState {
	out := *s
	if s.Marker != nil {
		m := *s.Marker
		out.Marker = &m
	}
	return out
}
