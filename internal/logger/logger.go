package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger provides component-tagged structured logging
type Logger interface {
	Info(component string, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
	Warning(component string, message string, fields map[string]interface{})
	Debug(component string, message string, fields map[string]interface{})
}

// New builds the application logger. Console output is the default, JSON
// output is selected for log shipping.
func New(level string, jsonOutput bool) *ZerologAdapter {
	lvl := ParseLevel(level)
	if jsonOutput {
		return NewZerolog(os.Stdout, lvl)
	}
	return NewConsoleLogger(lvl)
}

// Nop returns a logger that discards everything.
func Nop() *ZerologAdapter {
	return NewZerolog(io.Discard, zerolog.Disabled)
}

// ParseLevel maps a level name to a zerolog level, falling back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "":
		return zerolog.InfoLevel
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
