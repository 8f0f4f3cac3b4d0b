package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"static-map-viewer/internal/config"
)

// yandexFeature renders one featureMember entry.
func yandexFeature(pos, text, postal string) string {
	address := ""
	if postal != "" {
		address = fmt.Sprintf(`,"Address":{"postal_code":%q,"formatted":%q}`, postal, text)
	}
	return fmt.Sprintf(`{"GeoObject":{"metaDataProperty":{"GeocoderMetaData":{"kind":"street","text":%q%s}},"Point":{"pos":%q}}}`,
		text, address, pos)
}

func yandexCollection(features ...string) string {
	members := ""
	for i, f := range features {
		if i > 0 {
			members += ","
		}
		members += f
	}
	return `{"response":{"GeoObjectCollection":{"metaDataProperty":{},"featureMember":[` + members + `]}}}`
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{
		APIKey:         "test-key",
		StaticMapURL:   serverURL + "/static",
		GeocodeURL:     serverURL + "/geocode",
		ImagePath:      t.TempDir() + "/map.png",
		RequestTimeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxRetries:      3,
			InitialInterval: time.Millisecond,
			MaxElapsed:      5 * time.Second,
		},
	}
}

// flakyTransport fails the first failures round trips with a connection error.
type flakyTransport struct {
	failures int32
	calls    atomic.Int32
	next     http.RoundTripper
}

var errConnRefused = errors.New("dial tcp: connection refused")

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	n := f.calls.Add(1)
	if f.failures < 0 || n <= f.failures {
		return nil, errConnRefused
	}
	return f.next.RoundTrip(req)
}

func newServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}
