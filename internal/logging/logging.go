// Package logging builds the CLI logger.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// New creates a console logger writing to w. Verbose lowers the level to
// debug so per-stage timings show up.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: w}

	return zerolog.New(writer).With().Timestamp().Logger().Level(level)
}
