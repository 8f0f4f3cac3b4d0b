package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"static-map-viewer/internal/config"
	"static-map-viewer/internal/logger"
	"static-map-viewer/internal/models"
)

const (
	geocodeFormat = "json"

	featureMembersPath = "response.GeoObjectCollection.featureMember"
	positionPath       = "GeoObject.Point.pos"
	addressTextPath    = "GeoObject.metaDataProperty.GeocoderMetaData.text"
	postalCodePath     = "GeoObject.metaDataProperty.GeocoderMetaData.Address.postal_code"
)

// GeocodeService resolves addresses to coordinates and back.
type GeocodeService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  logger.Logger
}

// NewGeocodeService creates a geocoder client from cfg.
func NewGeocodeService(cfg *config.Config, client *http.Client, log logger.Logger) *GeocodeService {
	return &GeocodeService{
		client:  client,
		baseURL: cfg.GeocodeURL,
		apiKey:  cfg.APIKey,
		logger:  log,
	}
}

// Forward returns the coordinate of the first feature matching query.
func (g *GeocodeService) Forward(ctx context.Context, query string) (models.Coordinate, error) {
	feature, err := g.firstFeature(ctx, query)
	if err != nil {
		return models.Coordinate{}, err
	}

	coord, err := parsePosition(feature.Get(positionPath).String())
	if err != nil {
		return models.Coordinate{}, err
	}

	g.logger.Debug("Geocode", "forward geocode resolved", map[string]interface{}{
		"query":      query,
		"coordinate": coord.String(),
	})
	return coord, nil
}

// Reverse returns the formatted address at coord. With includePostalCode
// the formatted address is geocoded again and the postal code of that
// result is attached.
func (g *GeocodeService) Reverse(ctx context.Context, coord models.Coordinate, includePostalCode bool) (models.GeocodeResult, error) {
	feature, err := g.firstFeature(ctx, coord.String())
	if err != nil {
		return models.GeocodeResult{}, err
	}

	text := feature.Get(addressTextPath)
	if !text.Exists() || text.String() == "" {
		return models.GeocodeResult{}, fmt.Errorf("%w: feature has no address text", ErrMalformedResponse)
	}

	result := models.GeocodeResult{
		Coordinate:       coord,
		FormattedAddress: text.String(),
	}

	if includePostalCode {
		postal, err := g.postalCode(ctx, result.FormattedAddress)
		if err != nil {
			return models.GeocodeResult{}, err
		}
		result.PostalCode = postal
	}

	g.logger.Debug("Geocode", "reverse geocode resolved", map[string]interface{}{
		"coordinate":  coord.String(),
		"address":     result.FormattedAddress,
		"postal_code": result.PostalCode,
	})
	return result, nil
}

func (g *GeocodeService) postalCode(ctx context.Context, address string) (string, error) {
	feature, err := g.firstFeature(ctx, address)
	if err != nil {
		return "", err
	}

	postal := feature.Get(postalCodePath).String()
	if postal == "" {
		return "", fmt.Errorf("postal code for %q: %w", address, ErrNotFound)
	}
	return postal, nil
}

func (g *GeocodeService) firstFeature(ctx context.Context, query string) (gjson.Result, error) {
	body, err := g.request(ctx, query)
	if err != nil {
		return gjson.Result{}, err
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}

	members := gjson.GetBytes(body, featureMembersPath)
	if !members.IsArray() {
		return gjson.Result{}, fmt.Errorf("%w: missing feature collection", ErrMalformedResponse)
	}

	// Only the first match is consulted.
	first := members.Get("0")
	if !first.Exists() {
		return gjson.Result{}, fmt.Errorf("geocode %q: %w", query, ErrNotFound)
	}
	return first, nil
}

func (g *GeocodeService) request(ctx context.Context, query string) ([]byte, error) {
	params := url.Values{}
	params.Set("apikey", g.apiKey)
	params.Set("geocode", query)
	params.Set("format", geocodeFormat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: geocode request: %w", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, URL: RedactURL(req.URL)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read geocode response: %w", ErrNetworkFailure, err)
	}
	return body, nil
}

// parsePosition parses a "lon lat" position string.
func parsePosition(pos string) (models.Coordinate, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return models.Coordinate{}, fmt.Errorf("%w: position %q", ErrMalformedResponse, pos)
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: longitude %q", ErrMalformedResponse, parts[0])
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: latitude %q", ErrMalformedResponse, parts[1])
	}

	return models.Coordinate{Longitude: lon, Latitude: lat}, nil
}
