// Package debug provides the structured debug logger for treenav.
//
// Logging is off unless TREENAV_DEBUG is set or a log file is configured.
// Records never go to stdout, which belongs to the terminal UI:
//
//	TREENAV_DEBUG=1 treenav browse tree.yaml 2>debug.log
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvVar enables debug logging to stderr when set to a truthy value.
const EnvVar = "TREENAV_DEBUG"

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Enabled reports whether TREENAV_DEBUG asks for logging.
func Enabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvVar))) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

// New returns a debug-level text logger writing to w.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return discard
}

// Open builds the logger for a run. A non-empty path wins over the
// environment; the returned close func must be called on exit.
func Open(path string) (*slog.Logger, func() error, error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("debug: opening %s: %w", path, err)
		}
		return New(f), f.Close, nil
	}
	if Enabled() {
		return New(os.Stderr), func() error { return nil }, nil
	}
	return discard, func() error { return nil }, nil
}
