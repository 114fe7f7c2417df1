package log

import (
	"fmt"
	"log/slog"
	"strings"
)

// Format is the output encoding of log lines.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseLogLevel parses a textual level. Unknown input yields INFO and false.
func ParseLogLevel(input string) (slog.Level, bool) {
	sanitized := strings.ToLower(strings.TrimSpace(input))

	switch sanitized {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func ParseFormat(input string) (Format, error) {
	sanitized := Format(strings.ToLower(strings.TrimSpace(input)))

	switch sanitized {
	case FormatText, FormatJSON:
		return sanitized, nil
	default:
		return "", fmt.Errorf("unknown log format: %q (expected one of: text, json)", input)
	}
}
