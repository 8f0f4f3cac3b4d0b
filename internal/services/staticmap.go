package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"static-map-viewer/internal/config"
	"static-map-viewer/internal/logger"
	"static-map-viewer/internal/models"
)

// StaticMapService fetches rendered map images.
type StaticMapService struct {
	client    *http.Client
	baseURL   string
	imagePath string
	retry     config.RetryConfig
	logger    logger.Logger
}

// NewStaticMapService creates a static map fetcher from cfg.
func NewStaticMapService(cfg *config.Config, client *http.Client, log logger.Logger) *StaticMapService {
	return &StaticMapService{
		client:    client,
		baseURL:   cfg.StaticMapURL,
		imagePath: cfg.ImagePath,
		retry:     cfg.Retry,
		logger:    log,
	}
}

// Fetch downloads the image for req, stores it at the configured image path
// and returns it decoded. Connection-level failures are retried with
// exponential backoff; HTTP error statuses are returned immediately.
func (s *StaticMapService) Fetch(ctx context.Context, req models.MapRequest) (image.Image, error) {
	reqURL := s.baseURL + "?" + req.Query().Encode()
	start := time.Now()

	var body []byte
	attempts := 0
	operation := func() error {
		attempts++
		data, err := s.get(ctx, reqURL)
		if err != nil {
			return err
		}
		body = data
		return nil
	}

	notify := func(err error, wait time.Duration) {
		s.logger.Warning("StaticMap", "fetch failed, retrying", map[string]interface{}{
			"attempt": attempts,
			"wait_ms": wait.Milliseconds(),
			"error":   err.Error(),
		})
	}

	if err := backoff.RetryNotify(operation, s.newBackOff(ctx), notify); err != nil {
		var statusErr *HTTPStatusError
		switch {
		case errors.As(err, &statusErr):
			return nil, err
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			return nil, fmt.Errorf("%w: gave up after %d attempts: %w", ErrNetworkFailure, attempts, err)
		}
	}

	img, format, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: decode map image: %w", ErrMalformedResponse, err)
	}

	if err := os.WriteFile(s.imagePath, body, 0o644); err != nil {
		return nil, fmt.Errorf("write map image: %w", err)
	}

	bounds := img.Bounds()
	s.logger.Debug("StaticMap", "map image fetched", map[string]interface{}{
		"zoom":        req.Zoom,
		"center":      req.Center.String(),
		"mode":        req.Mode.Code(),
		"format":      format,
		"width":       bounds.Dx(),
		"height":      bounds.Dy(),
		"attempts":    attempts,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return img, nil
}

// ImagePath returns where the last fetched image is written.
func (s *StaticMapService) ImagePath() string {
	return s.imagePath
}

func (s *StaticMapService) newBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.retry.InitialInterval
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = s.retry.MaxElapsed

	return backoff.WithContext(backoff.WithMaxRetries(exp, s.retry.MaxRetries), ctx)
}

func (s *StaticMapService) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, backoff.Permanent(&HTTPStatusError{StatusCode: resp.StatusCode, URL: RedactURL(req.URL)})
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read map image: %w", err)
	}
	return data, nil
}
