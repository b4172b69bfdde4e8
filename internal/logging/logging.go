// Package logging builds the slog loggers the CLI hands to the simulator and
// estimator. Level comes from RCSAID_LOG_LEVEL (DEBUG, INFO, WARN, ERROR) and
// format from RCSAID_LOG_FORMAT (json or text).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	LevelEnv  = "RCSAID_LOG_LEVEL"
	FormatEnv = "RCSAID_LOG_FORMAT"
)

// New returns a logger writing to w, configured from the environment.
func New(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: LevelFromEnv()}

	var h slog.Handler
	if strings.EqualFold(os.Getenv(FormatEnv), "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With("app", "rcsaid")
}

// Setup installs a stderr logger as the process default and returns it.
func Setup() *slog.Logger {
	l := New(os.Stderr)
	slog.SetDefault(l)
	return l
}

// Discard drops everything. Tests and benchmarks use it.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

// ParseLevel defaults to WARN so the estimator's transition logs stay out of
// the way of CLI output.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
