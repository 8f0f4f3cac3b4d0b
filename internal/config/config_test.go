package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"API_KEY", "MAPVIEWER_API_KEY", "MAPVIEWER_IMAGE_PATH", "MAPVIEWER_RETRY_MAX"} {
		t.Setenv(name, "")
	}
}

func TestLoadMissingKey(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), ".env"))
	require.ErrorIs(t, err, ErrConfigMissing)
	assert.Nil(t, cfg)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_KEY=file-key\nIMAGE_PATH=/tmp/out.png\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "/tmp/out.png", cfg.ImagePath)
	assert.Equal(t, DefaultStaticMapURL, cfg.StaticMapURL)
	assert.Equal(t, DefaultGeocodeURL, cfg.GeocodeURL)
	assert.Equal(t, uint64(5), cfg.Retry.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.InitialInterval)
	assert.Equal(t, 30*time.Second, cfg.Retry.MaxElapsed)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "bare-key")
	t.Setenv("MAPVIEWER_RETRY_MAX", "2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "bare-key", cfg.APIKey)
	assert.Equal(t, uint64(2), cfg.Retry.MaxRetries)

	t.Setenv("MAPVIEWER_API_KEY", "prefixed-key")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "prefixed-key", cfg.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		APIKey:         "key",
		StaticMapURL:   DefaultStaticMapURL,
		GeocodeURL:     DefaultGeocodeURL,
		ImagePath:      DefaultImagePath,
		RequestTimeout: time.Second,
		Retry:          RetryConfig{MaxRetries: 1, InitialInterval: time.Millisecond, MaxElapsed: time.Second},
	}
	require.NoError(t, cfg.Validate())

	cfg.RequestTimeout = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigMissing)
	assert.Contains(t, err.Error(), "request_timeout")
}
