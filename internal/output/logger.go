/*
PURPOSE:
  Provides a structured logger for Bench Merge.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - One diagnostic line per skipped file and per missing metric.

  Implementation-discovered:
  - Needs Debug/Info/Warn levels and a machine-readable mode for CI logs.

ARCHITECTURE INTEGRATION:
  - Used everywhere.
  - Configured by: internal/cli (persistent --log-level / --log-json flags).

ERROR HANDLING:
  - Configure rejects unknown level names.

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).

USAGE:
  output.Logger.Info("message", "key", "value")

SELF-HEALING INSTRUCTIONS:
  - Ensure Go 1.21+ is used.

RELATED FILES:
  - All.

MAINTENANCE:
  - None.
*/

package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// Configure replaces Logger with a handler writing to w at the named level.
func Configure(w io.Writer, level string, json bool) error {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "", "info":
		lvl = slog.LevelInfo
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		SetLogger(slog.New(slog.NewJSONHandler(w, opts)))
	} else {
		SetLogger(slog.New(slog.NewTextHandler(w, opts)))
	}
	return nil
}
