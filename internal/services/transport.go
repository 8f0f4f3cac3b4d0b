package services

import (
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"static-map-viewer/internal/logger"
)

const redacted = "REDACTED"

// LoggingRoundTripper logs every outbound request with a request id. The
// apikey query parameter never reaches the log.
type LoggingRoundTripper struct {
	Proxied http.RoundTripper
	Logger  logger.Logger
}

func (lrt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()
	start := time.Now()

	lrt.Logger.Debug("HTTP", "request", map[string]interface{}{
		"request_id": requestID,
		"method":     req.Method,
		"url":        RedactURL(req.URL),
	})

	res, err := lrt.Proxied.RoundTrip(req)
	if err != nil {
		lrt.Logger.Warning("HTTP", "request failed", map[string]interface{}{
			"request_id":  requestID,
			"duration_ms": time.Since(start).Milliseconds(),
			"error":       err.Error(),
		})
		return res, err
	}

	lrt.Logger.Debug("HTTP", "response", map[string]interface{}{
		"request_id":     requestID,
		"status":         res.StatusCode,
		"content_type":   res.Header.Get("Content-Type"),
		"content_length": res.ContentLength,
		"duration_ms":    time.Since(start).Milliseconds(),
	})

	return res, nil
}

// NewHTTPClient returns a client whose transport logs through log.
func NewHTTPClient(timeout time.Duration, log logger.Logger) *http.Client {
	return &http.Client{
		Transport: LoggingRoundTripper{Proxied: http.DefaultTransport, Logger: log},
		Timeout:   timeout,
	}
}

// RedactURL renders u with the apikey parameter masked.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	if !q.Has("apikey") {
		return u.String()
	}
	q.Set("apikey", redacted)
	masked := *u
	masked.RawQuery = q.Encode()
	return masked.String()
}
