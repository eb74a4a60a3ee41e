package gnargscli

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogging configures the global slog default logger, ported
// field-for-field from config.SetupLogging. All log output goes to
// os.Stderr so stdout stays clean for `gnargs eval`/`explain` output.
func SetupLogging(level slog.Level, format string) {
	SetupLoggingWithWriter(level, format, os.Stderr)
}

// SetupLoggingWithWriter is the writer-parameterized variant used by tests,
// ported field-for-field from config.SetupLoggingWithWriter.
func SetupLoggingWithWriter(level slog.Level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ResolveLogLevel mirrors config.ResolveLogLevel, with GNARGS_DEBUG=1 taking
// the place of HARVX_DEBUG=1 as the highest-priority escape hatch.
func ResolveLogLevel(verbose, quiet bool) slog.Level {
	if os.Getenv("GNARGS_DEBUG") == "1" {
		return slog.LevelDebug
	}
	if verbose {
		return slog.LevelDebug
	}
	if quiet {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ResolveLogFormat mirrors config.ResolveLogFormat.
func ResolveLogFormat() string {
	if strings.EqualFold(os.Getenv("GNARGS_LOG_FORMAT"), "json") {
		return "json"
	}
	return "text"
}

// NewLogger mirrors config.NewLogger.
func NewLogger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
