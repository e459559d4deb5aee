// Package logging constructs the application logger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a zerolog logger at the given level. Format "text" selects
// pretty console output for interactive use; anything else emits JSON.
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	if format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
