// Package logging builds the slog loggers used across clifford4d.
//
// Only the command line entry point constructs loggers with New. Components
// take a *slog.Logger and pass it through OrDefault, so a nil logger falls
// back to slog.Default().
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config configures New. A zero Config writes Info+ text logs to stderr.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string

	// JSON switches the handler from text to JSON lines.
	JSON bool

	// Writer overrides the destination (default os.Stderr).
	Writer io.Writer
}

// ParseLevel maps a level name to slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New returns a logger for cfg. An unknown level is reported as an error and
// the logger falls back to info.
func New(cfg Config) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("service", "clifford4d"), err
}

// OrDefault returns l, or slog.Default() when l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
