package memguard

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the bootstrap logger used for setup, zone
// registration and config events. Fault-path output never goes
// through here; see rawio.go.
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Str("component", "memguard").
		Logger()
}
