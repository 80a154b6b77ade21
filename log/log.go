package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	charmlog "charm.land/log/v2"
)

// Handler is the handler type returned by this package.
type Handler = slog.Handler

// Level is a log severity name.
type Level string

const (
	// LevelError logs errors only.
	LevelError Level = "error"
	// LevelWarn logs warnings and errors.
	LevelWarn Level = "warn"
	// LevelInfo logs informational messages and above.
	LevelInfo Level = "info"
	// LevelDebug logs everything, including dropped lines and reconciliation
	// details.
	LevelDebug Level = "debug"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format.
	FormatLogfmt Format = "logfmt"
	// FormatText outputs human readable, styled logs.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

var (
	allLevels  = []Level{LevelError, LevelWarn, LevelInfo, LevelDebug}
	allFormats = []Format{FormatJSON, FormatLogfmt, FormatText}
)

// NewHandlerFromStrings creates a [Handler] by strings.
func NewHandlerFromStrings(w io.Writer, level, format string) (Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	f, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, f), nil
}

// NewHandler creates a [Handler] with the specified level and format. Unknown
// formats fall back to [FormatText].
func NewHandler(w io.Writer, lvl Level, f Format) Handler {
	switch f {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl.Slog(),
		})

	case FormatLogfmt:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl.Slog(),
		})
	}

	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           lvl.charm(),
		ReportTimestamp: true,
	})
}

// ParseLevel parses a log level string, ignoring case. "warning" is accepted
// as an alias of [LevelWarn].
func ParseLevel(level string) (Level, error) {
	lvl := Level(strings.ToLower(level))
	if lvl == "warning" {
		return LevelWarn, nil
	}

	if slices.Contains(allLevels, lvl) {
		return lvl, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
}

// ParseFormat parses a log format string, ignoring case.
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains(allFormats, f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
}

// GetAllLevelStrings returns all level names, most severe first.
func GetAllLevelStrings() []string {
	out := make([]string, 0, len(allLevels))
	for _, l := range allLevels {
		out = append(out, string(l))
	}

	return out
}

// GetAllFormatStrings returns all format names.
func GetAllFormatStrings() []string {
	out := make([]string, 0, len(allFormats))
	for _, f := range allFormats {
		out = append(out, string(f))
	}

	return out
}

// Slog returns the matching [slog.Level]. Unknown levels map to
// [slog.LevelInfo].
func (l Level) Slog() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

func (l Level) charm() charmlog.Level {
	switch l {
	case LevelError:
		return charmlog.ErrorLevel
	case LevelWarn:
		return charmlog.WarnLevel
	case LevelDebug:
		return charmlog.DebugLevel
	}

	return charmlog.InfoLevel
}
