// Package logging provides structured logging setup for rent-ledger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initializes the global zerolog logger.
// Dev mode uses a human-readable console writer at debug level; otherwise
// JSON lines at the given level (info when level is empty or unknown).
func Setup(devMode bool, level string) {
	log.Logger = New(os.Stdout, devMode)
	SetLevel(level)
	if devMode {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// New builds a logger writing to w.
func New(w io.Writer, devMode bool) zerolog.Logger {
	if devMode {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetLevel sets the global log level.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
