package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a wrapper around a slog.logger, which keeps track of prefixes such that prefixes can be added in a
// hierarchical manner.
type Logger struct {
	*slog.Logger

	prefixes []string
}

// Default logger is simply at INFO level, writing text to stderr.
func Default() *Logger {
	return NewLogger("info", FormatText, os.Stderr)
}

// Create a new logger without a prefix
func NewLogger(rawLogLevel string, format Format, writer io.Writer) *Logger {
	return NewLoggerWithPrefixes(rawLogLevel, format, writer, []string{})
}

// Create a new logger with a set of prefixes.
func NewLoggerWithPrefixes(rawLogLevel string, format Format, writer io.Writer, prefixes []string) *Logger {
	slogger, levelOk := newLoggerWithLogLevel(rawLogLevel, format, writer)
	logger := newLoggerWithSlogger(slogger, prefixes)
	if !levelOk {
		logger.Warn("unable to parse a log level, defaulting to info", "log_level", rawLogLevel)
	}
	return logger
}

func newLoggerWithSlogger(slogger *slog.Logger, prefixes []string) *Logger {
	// Set the prefix key to always be the prefix
	prefix := strings.Join(prefixes, "")
	prefixedSlogger := slogger.With(prefixKey, prefix)

	return &Logger{
		Logger:   prefixedSlogger,
		prefixes: prefixes,
	}
}

// Add an additional prefix to the logger
func (l *Logger) ApplyPrefix(prefix string) *Logger {
	prefixes := make([]string, 0, len(l.prefixes)+1)
	prefixes = append(prefixes, l.prefixes...)
	prefixes = append(prefixes, prefix)

	return newLoggerWithSlogger(l.Logger, prefixes)
}

// Add a value to the logger
func (l *Logger) With(args ...any) *Logger {
	slogger := l.Logger.With(args...)
	return newLoggerWithSlogger(slogger, l.prefixes)
}

// Prefix key is the "magic" key that makes this all work. Any value sent to this key is a prefix,
// and is consumed by the prefix handler rather than emitted as an attribute.
const prefixKey = "_prefixKey"

func newLoggerWithLogLevel(rawLogLevel string, format Format, writer io.Writer) (*slog.Logger, bool) {
	loggingLevel, ok := ParseLogLevel(rawLogLevel)
	lvl := new(slog.LevelVar)
	lvl.Set(loggingLevel)

	options := &slog.HandlerOptions{
		Level: lvl,
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, options)
	default:
		handler = slog.NewTextHandler(writer, options)
	}

	return slog.New(newPrefixHandler(handler)), ok
}
