package models

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	MapWidth  = 650
	MapHeight = 450
)

// MapRequest describes one static map image.
type MapRequest struct {
	Center Coordinate
	Zoom   int
	Mode   RenderMode
	Width  int
	Height int
	Marker *Marker
}

// NewMapRequest captures the state at the moment of the request.
func NewMapRequest(s ViewState) MapRequest {
	req := MapRequest{
		Center: s.Center,
		Zoom:   s.Zoom,
		Mode:   s.Mode,
		Width:  MapWidth,
		Height: MapHeight,
	}
	if s.Marker != nil {
		m := *s.Marker
		req.Marker = &m
	}
	return req
}

// Size renders the canvas size as "W,H".
func (r MapRequest) Size() string {
	return fmt.Sprintf("%d,%d", r.Width, r.Height)
}

// Query encodes the request as static map query parameters.
func (r MapRequest) Query() url.Values {
	q := url.Values{}
	q.Set("z", strconv.Itoa(r.Zoom))
	q.Set("ll", r.Center.String())
	q.Set("l", r.Mode.Code())
	q.Set("size", r.Size())
	if r.Marker != nil {
		q.Set("pt", r.Marker.String())
	}
	return q
}
