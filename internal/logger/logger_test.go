package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestZerologAdapterFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Error("StaticMap", errors.New("dial failed"), map[string]interface{}{"attempt": 3})

	line := buf.String()
	assert.Equal(t, "error", gjson.Get(line, "level").String())
	assert.Equal(t, "StaticMap", gjson.Get(line, "component").String())
	assert.Equal(t, "dial failed", gjson.Get(line, "error").String())
	assert.Equal(t, int64(3), gjson.Get(line, "attempt").Int())
}

func TestZerologAdapterLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("Controller", "hidden", nil)
	log.Info("Controller", "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Warning("Controller", "shown", nil)
	assert.Contains(t, buf.String(), "shown")
}
