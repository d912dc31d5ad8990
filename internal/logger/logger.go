// Package logger wraps zerolog for the cutout CLI and library.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	Output io.Writer
	// NoColor disables ANSI colours in console output
	NoColor bool
}

// New creates a zerolog.Logger writing to cfg.Output (stderr by default).
// Every logger carries a fresh run id.
func New(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	var zl zerolog.Logger
	if strings.EqualFold(cfg.Format, "json") {
		zl = zerolog.New(output)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.TimeOnly,
			NoColor:    cfg.NoColor,
		})
	}

	return zl.Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("run", uuid.NewString()).
		Logger()
}

// Nop returns a logger that discards everything
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
