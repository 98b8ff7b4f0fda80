// Package logging configures the per-session debug logger. Hook invocations
// are short-lived and run behind the agent's UI, so logs go to a session
// file under the temp directory instead of stderr, and only when running
// inside Zellij where someone set the integration up on purpose.
package logging

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// SessionLogger returns a logger appending to /tmp/rufio-<session>.txt when
// running inside Zellij, and a disabled logger otherwise.
func SessionLogger(sessionID string) zerolog.Logger {
	if os.Getenv("ZELLIJ_PANE_ID") == "" {
		return zerolog.Nop()
	}
	return FileLogger(filepath.Join(os.TempDir(), "rufio-"+sessionID+".txt"))
}

// FileLogger returns a logger appending human-readable lines to the file at
// path. Falls back to a disabled logger when the file cannot be opened; a
// broken debug log must never fail the hook.
func FileLogger(path string) zerolog.Logger {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop()
	}

	writer := zerolog.ConsoleWriter{
		Out:        file,
		TimeFormat: "15:04:05.000",
		NoColor:    true,
	}
	return zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
