package services

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when a geocode query produced no results.
	ErrNotFound = errors.New("not found")
	// ErrMalformedResponse is returned when a remote document does not have
	// the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNetworkFailure is returned when a request could not be completed at
	// the connection level, after any retries.
	ErrNetworkFailure = errors.New("network failure")
)

// HTTPStatusError reports a non-2xx response. It is never retried.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP status %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err should be presented to the user as "not
// found". Malformed documents are treated the same way.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrMalformedResponse)
}
