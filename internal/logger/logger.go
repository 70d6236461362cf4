package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Local runs get a human readable console
// writer, every other environment logs JSON lines.
func New(env string) zerolog.Logger {
	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel

	if env == "local" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "booking-api").
		Logger()
}

// Nop is used by tests and by components created without a logger.
func Nop() zerolog.Logger {
	return zerolog.New(io.Discard)
}
