package observability

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Instrument installs the process-wide slog handler. Records are enriched
// with trace correlation attributes when a trace context is present.
func Instrument(level slog.Level, logFormat string) error {
	handler, err := newStdoutHandler(level, logFormat)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(newTraceContextHandler(handler)))

	return nil
}

// newStdoutHandler creates the base handler for the requested format.
func newStdoutHandler(level slog.Level, logFormat string) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch strings.ToLower(logFormat) {
	case "json":
		return slog.NewJSONHandler(os.Stdout, opts), nil
	case "text":
		return slog.NewTextHandler(os.Stdout, opts), nil
	case "pretty":
		return tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q (expected: json, text, pretty)", logFormat)
	}
}
