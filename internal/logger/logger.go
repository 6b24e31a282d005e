// Package logger holds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats accepted by Setup.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Log is the global logger instance.
var Log zerolog.Logger

func init() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	Log = newLogger(os.Stdout, FormatConsole)
}

// Setup rebuilds Log for the given format and level. A nil w means stdout.
func Setup(w io.Writer, format, level string) {
	if w == nil {
		w = os.Stdout
	}
	Log = newLogger(w, format)
	SetLevel(level)
}

func newLogger(w io.Writer, format string) zerolog.Logger {
	if strings.EqualFold(format, FormatJSON) {
		return zerolog.New(w).
			With().
			Timestamp().
			Str("service", "money-manager").
			Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Caller().
		Logger()
}

// SetLevel sets the global log level. Empty or unknown levels mean info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Log.With().Str("component", name).Logger()
}
