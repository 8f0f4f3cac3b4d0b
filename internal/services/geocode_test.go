package services

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"static-map-viewer/internal/logger"
	"static-map-viewer/internal/models"
)

const redSquare = "Russia, Moscow, Red Square"

type geocodeFixture struct {
	svc  *GeocodeService
	hits atomic.Int32
}

func newGeocodeFixture(t *testing.T, responses map[string]string) *geocodeFixture {
	t.Helper()
	f := &geocodeFixture{}

	srv := newServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		q := r.URL.Query()
		if q.Get("apikey") != "test-key" || q.Get("format") != "json" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		body, ok := responses[q.Get("geocode")]
		if !ok {
			body = yandexCollection()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))

	cfg := testConfig(t, srv.URL)
	f.svc = NewGeocodeService(cfg, NewHTTPClient(cfg.RequestTimeout, logger.Nop()), logger.Nop())
	return f
}

func redSquareResponses() map[string]string {
	return map[string]string{
		"Red Square":    yandexCollection(yandexFeature("37.621 55.754", redSquare, "")),
		"37.621,55.754": yandexCollection(yandexFeature("37.621 55.754", redSquare, ""), yandexFeature("0 0", "elsewhere", "")),
		redSquare:       yandexCollection(yandexFeature("37.621 55.754", redSquare, "109012")),
	}
}

func TestForward(t *testing.T) {
	f := newGeocodeFixture(t, redSquareResponses())

	coord, err := f.svc.Forward(context.Background(), "Red Square")
	require.NoError(t, err)
	assert.Equal(t, models.Coordinate{Longitude: 37.621, Latitude: 55.754}, coord)
	assert.Equal(t, int32(1), f.hits.Load())
}

func TestForwardNotFound(t *testing.T) {
	f := newGeocodeFixture(t, redSquareResponses())

	_, err := f.svc.Forward(context.Background(), "Atlantis")
	require.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestReverseWithoutPostalCode(t *testing.T) {
	f := newGeocodeFixture(t, redSquareResponses())

	res, err := f.svc.Reverse(context.Background(), models.Coordinate{Longitude: 37.621, Latitude: 55.754}, false)
	require.NoError(t, err)
	assert.Equal(t, redSquare, res.FormattedAddress)
	assert.Empty(t, res.PostalCode)
	assert.Equal(t, "Russia, Moscow, Red Square", res.Label())
	assert.Equal(t, int32(1), f.hits.Load())
}

func TestReverseWithPostalCode(t *testing.T) {
	f := newGeocodeFixture(t, redSquareResponses())

	res, err := f.svc.Reverse(context.Background(), models.Coordinate{Longitude: 37.621, Latitude: 55.754}, true)
	require.NoError(t, err)
	assert.Equal(t, "109012", res.PostalCode)
	assert.Equal(t, "Russia, Moscow, Red Square, 109012", res.Label())
	assert.Equal(t, int32(2), f.hits.Load(), "postal code lookup geocodes the formatted address")
}

func TestReverseMissingPostalCode(t *testing.T) {
	responses := redSquareResponses()
	responses[redSquare] = yandexCollection(yandexFeature("37.621 55.754", redSquare, ""))
	f := newGeocodeFixture(t, responses)

	_, err := f.svc.Reverse(context.Background(), models.Coordinate{Longitude: 37.621, Latitude: 55.754}, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGeocodeMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html></html>"},
		{"no collection", `{"response":{}}`},
		{"bad position", yandexCollection(yandexFeature("37.621", redSquare, ""))},
		{"non numeric position", yandexCollection(yandexFeature("east north", redSquare, ""))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGeocodeFixture(t, map[string]string{"q": tt.body})

			_, err := f.svc.Forward(context.Background(), "q")
			require.ErrorIs(t, err, ErrMalformedResponse)
			assert.True(t, IsNotFound(err))
		})
	}
}

func TestGeocodeHTTPError(t *testing.T) {
	f := newGeocodeFixture(t, redSquareResponses())
	f.svc.apiKey = "wrong"

	_, err := f.svc.Forward(context.Background(), "Red Square")
	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.NotContains(t, statusErr.URL, "wrong")
}

func TestGeocodeNetworkFailure(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	client := &http.Client{Transport: &flakyTransport{failures: -1, next: http.DefaultTransport}}
	svc := NewGeocodeService(cfg, client, logger.Nop())

	_, err := svc.Forward(context.Background(), "Red Square")
	assert.ErrorIs(t, err, ErrNetworkFailure)
}
